// Package junior routes prompts to large-language-model providers and
// validates their responses against caller-supplied output schemas.
//
// Each subpackage can be used independently:
//
//   - brain: provider selection, dispatch, and structured-output coercion
//   - provider: the Client interface, typed provider names, and the factory registry
//   - model: the capability catalogue (context windows, categories, limits, fallbacks)
//   - tokens: token estimation and per-model usage tracking
//   - schema: JSON schema generation and response coercion
//   - parser: payload extraction from raw model text
//   - settings: TOML settings with credential expansion and hot reload
//   - docker: lifecycle of the local model runtime container
//
// # Quick Start
//
//	import (
//		"github.com/puntorigen/junior/brain"
//		"github.com/puntorigen/junior/model"
//		"github.com/puntorigen/junior/settings"
//		_ "github.com/puntorigen/junior/providers"
//	)
//
//	s, _ := settings.Load("junior.toml")
//	catalog, _ := model.LoadCatalog(s.Catalog)
//	b, _ := brain.New(ctx, s, catalog)
//
//	var out struct {
//		Summary string `json:"summary"`
//	}
//	res := b.Prompt(ctx, brain.Query{Prompt: "Summarize ...", Output: &out})
//	if res.OK() {
//		fmt.Println(out.Summary)
//	}
package junior
