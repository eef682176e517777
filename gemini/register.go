package gemini

import "github.com/puntorigen/junior/provider"

func init() {
	provider.Register(provider.Gemini, func(cfg provider.Config) (provider.Client, error) {
		return NewClient(cfg)
	})
}
