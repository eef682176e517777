// Package model defines the capability catalogue: one ModelConfig record per
// configured provider/model pair, describing what the model is expert at,
// how large its context window is, and what to do when its quota runs out.
//
// The catalogue is loaded once at startup and immutable thereafter. Its
// iteration order is the order of the source file, which makes selection
// tie-breaks deterministic.
//
//	catalog, err := model.LoadCatalog("models.yaml")
//	cfg, ok := catalog.Get("openai/gpt-4o")
package model
