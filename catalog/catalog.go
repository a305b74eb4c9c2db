// Package catalog maps event categories to their ingestion endpoints and
// optional payload schemas.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownKind is returned when a kind has no definition.
var ErrUnknownKind = errors.New("catalog: unknown event kind")

// Catalog is the concurrency-safe registry of event category definitions.
type Catalog struct {
	mu   sync.RWMutex
	defs map[Kind]Definition
}

// New creates a catalog preloaded with Defaults.
func New() *Catalog {
	c := &Catalog{defs: make(map[Kind]Definition)}
	for _, d := range Defaults() {
		c.defs[d.Kind] = d
	}
	return c
}

// Get returns the definition for kind.
func (c *Catalog) Get(kind Kind) (Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d, ok := c.defs[kind]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return d, nil
}

// Register adds or replaces a definition. The path must start with "/"
// and the schema, when present, must be valid JSON.
func (c *Catalog) Register(def Definition) error {
	if def.Kind == "" {
		return errors.New("catalog: kind is required")
	}
	if !strings.HasPrefix(def.Path, "/") {
		return fmt.Errorf("catalog: path %q must start with /", def.Path)
	}
	if len(def.Schema) > 0 && !json.Valid(def.Schema) {
		return fmt.Errorf("catalog: schema for %s is not valid JSON", def.Kind)
	}

	c.mu.Lock()
	c.defs[def.Kind] = def
	c.mu.Unlock()
	return nil
}

// SetSchema attaches a JSON Schema to an existing kind.
func (c *Catalog) SetSchema(kind Kind, schema json.RawMessage) error {
	def, err := c.Get(kind)
	if err != nil {
		return err
	}
	def.Schema = schema
	return c.Register(def)
}

// List returns all definitions sorted by kind.
func (c *Catalog) List() []Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Definition, 0, len(c.defs))
	for _, d := range c.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}
