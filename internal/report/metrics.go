// Package report renders strategy reports for people: metric cards, the
// monthly forecast block and the payoff table, as text, CSV or JSON.
package report

import (
	"math"
	"strconv"

	"github.com/newthinker/stagger/internal/strategy"
	"github.com/shopspring/decimal"
)

// Kind says how a metric value is formatted.
type Kind string

const (
	KindCount       Kind = "count"
	KindMoney       Kind = "money"
	KindPrice       Kind = "price"
	KindPercent     Kind = "percent"
	KindProbability Kind = "probability"
)

// Metric describes one scalar of a report.
type Metric struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Kind        Kind   `json:"kind"`

	value func(*strategy.Report) string
}

// Value formats the metric for r.
func (m Metric) Value(r *strategy.Report) string {
	return m.value(r)
}

// Metrics lists the report scalars in display order.
var Metrics = []Metric{
	{Key: "totalPositions", Label: "Total Positions", Kind: KindCount,
		Description: "Total lots to be purchased based on drop intervals.",
		value:       func(r *strategy.Report) string { return strconv.Itoa(r.TotalPositions) }},
	{Key: "totalMargin", Label: "Total Margin", Kind: KindMoney,
		Description: "Total margin required to hold all positions.",
		value:       func(r *strategy.Report) string { return Money(r.TotalMargin) }},
	{Key: "averageBuyPrice", Label: "Average Buy Price", Kind: KindPrice,
		Description: "Average cost per unit across all positions.",
		value:       func(r *strategy.Report) string { return Money(r.AverageBuyPrice) }},
	{Key: "maxDrawdownPerLot", Label: "Max Drawdown Per Lot", Kind: KindMoney,
		Description: "Max loss on one lot if price hits the lowest point.",
		value:       func(r *strategy.Report) string { return Money(r.MaxDrawdownPerLot) }},
	{Key: "totalMaxDrawdown", Label: "Total Max Drawdown", Kind: KindMoney,
		Description: "Worst-case loss across all lots.",
		value:       func(r *strategy.Report) string { return Money(r.TotalMaxDrawdown) }},
	{Key: "totalCapitalNeeded", Label: "Total Capital Needed", Kind: KindMoney,
		Description: "Combined margin and drawdown capital required.",
		value:       func(r *strategy.Report) string { return Money(r.TotalCapitalNeeded) }},
	{Key: "capitalWithBuffer", Label: "Capital With Buffer", Kind: KindMoney,
		Description: "Capital including the additional safety reserve.",
		value:       func(r *strategy.Report) string { return Money(r.CapitalWithBuffer) }},
	{Key: "volatilityBuffer", Label: "Volatility Buffer", Kind: KindMoney,
		Description: "Extra capital to protect against volatility (ATR-based).",
		value:       func(r *strategy.Report) string { return Money(r.VolatilityBuffer) }},
	{Key: "totalProfitOnFullCycle", Label: "Total Profit On Full Cycle", Kind: KindMoney,
		Description: "Total profit assuming all lots exit at sell intervals.",
		value:       func(r *strategy.Report) string { return Money(r.TotalProfitOnFullCycle) }},
	{Key: "estimatedAnnualReturnLow", Label: "Estimated Annual Return (Low)", Kind: KindMoney,
		Description: "Minimum projected annual return.",
		value:       func(r *strategy.Report) string { return Money(r.EstimatedAnnualReturnLow) }},
	{Key: "estimatedAnnualReturnHigh", Label: "Estimated Annual Return (High)", Kind: KindMoney,
		Description: "High-side projected annual return.",
		value:       func(r *strategy.Report) string { return Money(r.EstimatedAnnualReturnHigh) }},
	{Key: "estimatedROI", Label: "Estimated ROI", Kind: KindPercent,
		Description: "Return on investment as a percentage (low to high).",
		value: func(r *strategy.Report) string {
			return r.EstimatedROI.Low.String() + " - " + r.EstimatedROI.High.String()
		}},
	{Key: "breakevenPrice", Label: "Breakeven Price", Kind: KindPrice,
		Description: "Price at which cumulative profit is zero.",
		value:       func(r *strategy.Report) string { return Money(r.BreakevenPrice) }},
	{Key: "worstCaseLoss", Label: "Worst Case Loss", Kind: KindMoney,
		Description: "Maximum potential loss in an adverse scenario.",
		value:       func(r *strategy.Report) string { return Money(r.WorstCaseLoss) }},
	{Key: "taxAdjustedProfit", Label: "Tax Adjusted Profit", Kind: KindMoney,
		Description: "Profit after accounting for tax.",
		value:       func(r *strategy.Report) string { return Money(r.TaxAdjustedProfit) }},
	{Key: "netROI", Label: "Net ROI", Kind: KindPercent,
		Description: "Net return percentage after taxes.",
		value:       func(r *strategy.Report) string { return r.NetROI.String() }},
	{Key: "winProb", Label: "Win Probability", Kind: KindProbability,
		Description: "Assumed probability of the strategy ending in a net gain.",
		value:       func(r *strategy.Report) string { return decimal.NewFromFloat(r.WinProb).StringFixed(2) }},
}

// Lookup returns the catalog entry for key.
func Lookup(key string) (Metric, bool) {
	for _, m := range Metrics {
		if m.Key == key {
			return m, true
		}
	}
	return Metric{}, false
}

// Money formats an amount rounded to two decimals without trailing zeros.
// Non-finite amounts are printed as-is.
func Money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).Round(2).String()
}
