package commodity

import (
	"github.com/newthinker/stagger/internal/config"
)

// FromConfig returns the built-in catalog with the configured presets applied.
// A configured key that matches a built-in overlays its params; a new key is
// registered as is. The configured default commodity must exist.
func FromConfig(cfg *config.Config) (*Catalog, error) {
	c := Builtin()

	for key, cc := range cfg.Commodities {
		cm, err := c.Get(key)
		if err != nil {
			c.Register(Commodity{
				Key:      key,
				Name:     cc.Name,
				Unit:     cc.Unit,
				Defaults: cc.Params,
			})
			continue
		}
		if cc.Name != "" {
			cm.Name = cc.Name
		}
		if cc.Unit != "" {
			cm.Unit = cc.Unit
		}
		cm.Defaults = cm.Defaults.Merge(cc.Params)
		c.Register(cm)
	}

	if cfg.DefaultCommodity != "" {
		if err := c.SetDefault(cfg.DefaultCommodity); err != nil {
			return nil, err
		}
	}
	return c, nil
}
