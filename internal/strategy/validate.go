package strategy

import (
	"fmt"
	"math"

	"github.com/newthinker/stagger/internal/core"
)

// MaxLevels bounds the ladder length so a tiny buy interval cannot blow up the payoff table.
const MaxLevels = 10000

// MaxMagnitude bounds every numeric input. With at most MaxLevels+1 positions
// no product or sum in a report can leave the float64 range.
const MaxMagnitude = 1e15

// Validate checks every field of in and reports all violations at once.
func (in Input) Validate() error {
	v := &core.ValidationError{}

	positive := []struct {
		name  string
		value float64
	}{
		{"currentPrice", in.CurrentPrice},
		{"minPrice", in.MinPrice},
		{"buyInterval", in.BuyInterval},
		{"sellInterval", in.SellInterval},
		{"marginPerLot", in.MarginPerLot},
		{"lotSize", in.LotSize},
	}
	for _, f := range positive {
		switch {
		case !finite(f.value):
			v.Add(f.name, fmt.Sprint(f.value), "must be a finite number")
		case f.value <= 0:
			v.Add(f.name, f.value, "must be greater than zero")
		case f.value > MaxMagnitude:
			v.Add(f.name, f.value, tooLarge)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"atr", in.ATR},
		{"averageTradingDaysPerMonth", in.AverageTradingDaysPerMonth},
	}
	for _, f := range nonNegative {
		switch {
		case !finite(f.value):
			v.Add(f.name, fmt.Sprint(f.value), "must be a finite number")
		case f.value < 0:
			v.Add(f.name, f.value, "must not be negative")
		case f.value > MaxMagnitude:
			v.Add(f.name, f.value, tooLarge)
		}
	}

	if in.TrendBias != "" && !in.TrendBias.Valid() {
		v.Add("trendBias", string(in.TrendBias), "must be one of neutral, bullish, bearish")
	}

	if v.HasErrors() {
		return v
	}

	if levels := (in.CurrentPrice - in.MinPrice) / in.BuyInterval; levels > MaxLevels {
		v.Add("buyInterval", in.BuyInterval,
			fmt.Sprintf("yields %.0f buy levels, more than the limit of %d", math.Floor(levels), MaxLevels))
	}

	return v.Err()
}

var tooLarge = fmt.Sprintf("must not exceed %g", MaxMagnitude)

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
