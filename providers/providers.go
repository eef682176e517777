// Package providers registers every supported provider factory.
// Import it for the side effect of making all providers available via
// provider.New():
//
//	import _ "github.com/puntorigen/junior/providers"
package providers

import (
	_ "github.com/puntorigen/junior/anthropic"
	_ "github.com/puntorigen/junior/gemini"
	_ "github.com/puntorigen/junior/groq"
	_ "github.com/puntorigen/junior/ollama"
	_ "github.com/puntorigen/junior/openai"
)
