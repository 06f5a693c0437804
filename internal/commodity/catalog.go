// Package commodity holds the named parameter presets offered by the analyzer.
package commodity

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/newthinker/stagger/internal/core"
	"github.com/newthinker/stagger/internal/strategy"
)

// Commodity is a named preset of strategy parameters.
type Commodity struct {
	Key      string          `json:"key"`
	Name     string          `json:"name"`
	Unit     string          `json:"unit,omitempty"`
	Defaults strategy.Params `json:"defaults"`
}

// Catalog manages commodity presets
type Catalog struct {
	mu         sync.RWMutex
	items      map[string]Commodity
	defaultKey string
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{items: make(map[string]Commodity)}
}

// Normalize folds a user-supplied key: "Crude Oil", "crude-oil" and "CRUDE_OIL" are the same.
func Normalize(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(key)
}

// Register adds or replaces a commodity. The first registered commodity becomes the default.
func (c *Catalog) Register(cm Commodity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cm.Key = Normalize(cm.Key)
	if cm.Name == "" {
		cm.Name = cm.Key
	}
	c.items[cm.Key] = cm
	if c.defaultKey == "" {
		c.defaultKey = cm.Key
	}
}

// Get retrieves a commodity by key
func (c *Catalog) Get(key string) (Commodity, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cm, ok := c.items[Normalize(key)]
	if !ok {
		return Commodity{}, core.WrapError(core.ErrCommodityNotFound, fmt.Errorf("unknown commodity %q", key))
	}
	return cm, nil
}

// List returns all commodities sorted by key
func (c *Catalog) List() []Commodity {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Commodity, 0, len(c.items))
	for _, cm := range c.items {
		result = append(result, cm)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result
}

// Default returns the default commodity. ok is false for an empty catalog.
func (c *Catalog) Default() (Commodity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cm, ok := c.items[c.defaultKey]
	return cm, ok
}

// SetDefault changes the default commodity.
func (c *Catalog) SetDefault(key string) error {
	cm, err := c.Get(key)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaultKey = cm.Key
	return nil
}

// Resolve picks the commodity for key (the default when key is empty) and
// overlays over on its preset parameters.
func (c *Catalog) Resolve(key string, over strategy.Params) (Commodity, strategy.Params, error) {
	var cm Commodity
	if strings.TrimSpace(key) == "" {
		d, ok := c.Default()
		if !ok {
			return Commodity{}, over, nil
		}
		cm = d
	} else {
		var err error
		if cm, err = c.Get(key); err != nil {
			return Commodity{}, strategy.Params{}, err
		}
	}
	return cm, cm.Defaults.Merge(over), nil
}
