package openai

import (
	"github.com/puntorigen/junior/provider"
)

func init() {
	provider.Register(provider.OpenAI, func(cfg provider.Config) (provider.Client, error) {
		cfg.Provider = provider.OpenAI
		return NewClient(provider.OpenAI, cfg)
	})
}
