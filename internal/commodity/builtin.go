package commodity

import "github.com/newthinker/stagger/internal/strategy"

// Built-in preset keys.
const (
	Silver   = "silver"
	Gold     = "gold"
	CrudeOil = "crude_oil"
)

// Builtin returns a catalog with the silver, gold and crude oil presets.
// Silver is the default.
func Builtin() *Catalog {
	c := NewCatalog()
	c.Register(Commodity{
		Key:  Silver,
		Name: "Silver",
		Unit: "INR/kg",
		Defaults: preset(strategy.Input{
			CurrentPrice:               110000,
			MinPrice:                   70000,
			BuyInterval:                2000,
			SellInterval:               2000,
			MarginPerLot:               16000,
			LotSize:                    1,
			ATR:                        1000,
			AverageTradingDaysPerMonth: 20,
			TrendBias:                  strategy.TrendNeutral,
			UseSIP:                     true,
		}),
	})
	c.Register(Commodity{
		Key:  Gold,
		Name: "Gold",
		Unit: "INR/10g",
		Defaults: preset(strategy.Input{
			CurrentPrice:               72000,
			MinPrice:                   62000,
			BuyInterval:                1000,
			SellInterval:               1000,
			MarginPerLot:               36000,
			LotSize:                    1,
			ATR:                        600,
			AverageTradingDaysPerMonth: 20,
			TrendBias:                  strategy.TrendNeutral,
			UseSIP:                     true,
		}),
	})
	c.Register(Commodity{
		Key:  CrudeOil,
		Name: "Crude Oil",
		Unit: "INR/bbl",
		Defaults: preset(strategy.Input{
			CurrentPrice:               6500,
			MinPrice:                   5000,
			BuyInterval:                100,
			SellInterval:               100,
			MarginPerLot:               65000,
			LotSize:                    100,
			ATR:                        120,
			AverageTradingDaysPerMonth: 21,
			TrendBias:                  strategy.TrendNeutral,
			UseSIP:                     true,
		}),
	})
	return c
}

func preset(in strategy.Input) strategy.Params {
	return strategy.ParamsFromInput(in)
}
