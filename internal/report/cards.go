package report

import (
	"strconv"

	"github.com/newthinker/stagger/internal/strategy"
)

// Card is one metric ready for display.
type Card struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Row is a label/value pair.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Cards returns one card per catalog metric, in catalog order.
func Cards(r *strategy.Report) []Card {
	cards := make([]Card, len(Metrics))
	for i, m := range Metrics {
		cards[i] = Card{
			Key:         m.Key,
			Label:       m.Label,
			Value:       m.Value(r),
			Description: m.Description,
		}
	}
	return cards
}

// MonthlyRows returns the monthly forecast as display rows.
func MonthlyRows(r *strategy.Report) []Row {
	m := r.MonthlyStats
	return []Row{
		{"Positions Entered Monthly", strconv.Itoa(m.PositionsEnteredMonthly)},
		{"Profit Booked Monthly", strconv.Itoa(m.ProfitBookedMonthly)},
		{"Running Positions Monthly", strconv.Itoa(m.RunningPositionsMonthly)},
		{"Monthly Profit", Money(m.MonthlyProfit)},
		{"Average Trading Days Per Month", Money(m.AverageTradingDaysPerMonth)},
		{"Trend Bias", string(m.TrendBias)},
	}
}
