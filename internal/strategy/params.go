package strategy

import (
	"strings"

	"github.com/newthinker/stagger/internal/core"
)

// Defaults applied when a caller omits an optional field.
const (
	DefaultLotSize                    = 1.0
	DefaultATR                        = 1000.0
	DefaultAverageTradingDaysPerMonth = 20.0
	DefaultTrendBias                  = TrendNeutral
	DefaultUseSIP                     = true
)

// Params is the flat, partially filled parameter mapping supplied by callers.
// Nil fields are missing; Input resolves them to defaults or rejects them.
type Params struct {
	CurrentPrice               *float64 `json:"currentPrice,omitempty" mapstructure:"current_price"`
	MinPrice                   *float64 `json:"minPrice,omitempty" mapstructure:"min_price"`
	BuyInterval                *float64 `json:"buyInterval,omitempty" mapstructure:"buy_interval"`
	SellInterval               *float64 `json:"sellInterval,omitempty" mapstructure:"sell_interval"`
	MarginPerLot               *float64 `json:"marginPerLot,omitempty" mapstructure:"margin_per_lot"`
	LotSize                    *float64 `json:"lotSize,omitempty" mapstructure:"lot_size"`
	ATR                        *float64 `json:"atr,omitempty" mapstructure:"atr"`
	AverageTradingDaysPerMonth *float64 `json:"averageTradingDaysPerMonth,omitempty" mapstructure:"average_trading_days_per_month"`
	TrendBias                  *string  `json:"trendBias,omitempty" mapstructure:"trend_bias"`
	UseSIP                     *bool    `json:"useSip,omitempty" mapstructure:"use_sip"`
}

// Input resolves p into an Input. Missing required fields are all reported in
// one ValidationError; present fields are then checked by Input.Validate.
func (p Params) Input() (Input, error) {
	v := &core.ValidationError{}
	required := []struct {
		name  string
		value *float64
	}{
		{"currentPrice", p.CurrentPrice},
		{"minPrice", p.MinPrice},
		{"buyInterval", p.BuyInterval},
		{"sellInterval", p.SellInterval},
		{"marginPerLot", p.MarginPerLot},
	}
	for _, f := range required {
		if f.value == nil {
			v.Add(f.name, nil, "is required")
		}
	}
	if v.HasErrors() {
		return Input{}, v
	}

	in := Input{
		CurrentPrice:               *p.CurrentPrice,
		MinPrice:                   *p.MinPrice,
		BuyInterval:                *p.BuyInterval,
		SellInterval:               *p.SellInterval,
		MarginPerLot:               *p.MarginPerLot,
		LotSize:                    floatOr(p.LotSize, DefaultLotSize),
		ATR:                        floatOr(p.ATR, DefaultATR),
		AverageTradingDaysPerMonth: floatOr(p.AverageTradingDaysPerMonth, DefaultAverageTradingDaysPerMonth),
		TrendBias:                  DefaultTrendBias,
		UseSIP:                     DefaultUseSIP,
	}
	if p.TrendBias != nil && *p.TrendBias != "" {
		in.TrendBias = TrendBias(strings.ToLower(strings.TrimSpace(*p.TrendBias)))
	}
	if p.UseSIP != nil {
		in.UseSIP = *p.UseSIP
	}

	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// Merge returns p with every non-nil field of over applied on top.
func (p Params) Merge(over Params) Params {
	out := p
	if over.CurrentPrice != nil {
		out.CurrentPrice = over.CurrentPrice
	}
	if over.MinPrice != nil {
		out.MinPrice = over.MinPrice
	}
	if over.BuyInterval != nil {
		out.BuyInterval = over.BuyInterval
	}
	if over.SellInterval != nil {
		out.SellInterval = over.SellInterval
	}
	if over.MarginPerLot != nil {
		out.MarginPerLot = over.MarginPerLot
	}
	if over.LotSize != nil {
		out.LotSize = over.LotSize
	}
	if over.ATR != nil {
		out.ATR = over.ATR
	}
	if over.AverageTradingDaysPerMonth != nil {
		out.AverageTradingDaysPerMonth = over.AverageTradingDaysPerMonth
	}
	if over.TrendBias != nil {
		out.TrendBias = over.TrendBias
	}
	if over.UseSIP != nil {
		out.UseSIP = over.UseSIP
	}
	return out
}

// ParamsFromInput converts a resolved Input back into fully populated Params.
func ParamsFromInput(in Input) Params {
	bias := string(in.TrendBias)
	useSIP := in.UseSIP
	return Params{
		CurrentPrice:               Float(in.CurrentPrice),
		MinPrice:                   Float(in.MinPrice),
		BuyInterval:                Float(in.BuyInterval),
		SellInterval:               Float(in.SellInterval),
		MarginPerLot:               Float(in.MarginPerLot),
		LotSize:                    Float(in.LotSize),
		ATR:                        Float(in.ATR),
		AverageTradingDaysPerMonth: Float(in.AverageTradingDaysPerMonth),
		TrendBias:                  &bias,
		UseSIP:                     &useSIP,
	}
}

// Float returns a pointer to f.
func Float(f float64) *float64 {
	return &f
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
