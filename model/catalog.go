package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the ordered set of configured models. Order follows the source
// file and drives the selector's deterministic tie-break.
type Catalog struct {
	configs []Config
	index   map[string]int
}

// NewCatalog validates the records and builds a catalogue preserving their
// order. A Fallback, if present, must reference another record's identifier.
func NewCatalog(configs []Config) (*Catalog, error) {
	index := make(map[string]int, len(configs))
	for i, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if _, dup := index[cfg.Identifier]; dup {
			return nil, fmt.Errorf("model config %q: duplicate identifier", cfg.Identifier)
		}
		index[cfg.Identifier] = i
	}

	for _, cfg := range configs {
		if cfg.Fallback == "" {
			continue
		}
		if cfg.Fallback == cfg.Identifier {
			return nil, fmt.Errorf("model config %q: fallback references itself", cfg.Identifier)
		}
		if _, ok := index[cfg.Fallback]; !ok {
			return nil, fmt.Errorf("model config %q: fallback %q is not configured", cfg.Identifier, cfg.Fallback)
		}
	}

	c := &Catalog{
		configs: make([]Config, len(configs)),
		index:   index,
	}
	copy(c.configs, configs)
	return c, nil
}

// LoadCatalog reads a YAML catalogue file: a sequence of model records.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML model list and builds a catalogue.
func ParseCatalog(data []byte) (*Catalog, error) {
	var configs []Config
	if err := yaml.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewCatalog(configs)
}

// Get returns the record for an identifier.
func (c *Catalog) Get(identifier string) (Config, bool) {
	i, ok := c.index[identifier]
	if !ok {
		return Config{}, false
	}
	return c.configs[i], true
}

// All returns the records in catalogue order. The slice is a copy.
func (c *Catalog) All() []Config {
	out := make([]Config, len(c.configs))
	copy(out, c.configs)
	return out
}

// Len returns the number of configured models.
func (c *Catalog) Len() int {
	return len(c.configs)
}

// HasLocal reports whether any record is marked local.
func (c *Catalog) HasLocal() bool {
	for _, cfg := range c.configs {
		if cfg.Local {
			return true
		}
	}
	return false
}
