package anthropic

import "github.com/puntorigen/junior/provider"

func init() {
	provider.Register(provider.Anthropic, func(cfg provider.Config) (provider.Client, error) {
		return NewClient(cfg)
	})
}
