package strategy

import (
	"fmt"
	"math"
)

const (
	// highReturnMultiplier is how many full cycles the optimistic annual band assumes.
	highReturnMultiplier = 3
	// taxKeep is the share of profit left after the flat 15% tax assumption.
	taxKeep = 0.85
	// winProbability is a fixed assumption, not an estimate.
	winProbability = 0.7
)

// Analyze sizes a staggered-buy ladder from in and projects its payoff.
//
// Analyze is pure: identical inputs give identical reports, and nothing is
// shared between calls. Invalid input returns a *core.ValidationError and no
// report. When currentPrice is below minPrice there is no buy level at all and
// Analyze returns a zero report carrying a NO_BUY_LEVELS warning.
func Analyze(in Input) (*Report, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	bias := in.TrendBias
	if bias == "" {
		bias = TrendNeutral
	}

	levelsF := math.Floor((in.CurrentPrice - in.MinPrice) / in.BuyInterval)
	if levelsF < 0 {
		return zeroReport(in, bias), nil
	}
	levels := int(levelsF)
	positions := levels + 1
	n := float64(positions)

	totalMargin := n * in.MarginPerLot
	lowestEntry := in.CurrentPrice - float64(levels)*in.BuyInterval
	averageBuyPrice := (in.CurrentPrice + lowestEntry) / 2
	maxDrawdownPerLot := averageBuyPrice - in.MinPrice
	totalMaxDrawdown := maxDrawdownPerLot * n * in.LotSize

	volatilityBuffer := in.ATR * n
	totalCapitalNeeded := totalMargin + totalMaxDrawdown
	capitalWithBuffer := totalCapitalNeeded + volatilityBuffer

	// Level i earns i*profitPerLot on exit, so a full cycle earns the triangular number.
	profitPerLot := in.SellInterval
	cycleUnits := positions * (positions - 1) / 2
	totalProfit := float64(cycleUnits) * profitPerLot * in.LotSize
	annualLow := totalProfit
	annualHigh := totalProfit * highReturnMultiplier
	taxAdjusted := totalProfit * taxKeep

	r := &Report{
		TotalPositions:            positions,
		TotalMargin:               totalMargin,
		AverageBuyPrice:           averageBuyPrice,
		MaxDrawdownPerLot:         maxDrawdownPerLot,
		TotalMaxDrawdown:          totalMaxDrawdown,
		TotalCapitalNeeded:        totalCapitalNeeded,
		CapitalWithBuffer:         capitalWithBuffer,
		VolatilityBuffer:          volatilityBuffer,
		TotalProfitOnFullCycle:    totalProfit,
		EstimatedAnnualReturnLow:  annualLow,
		EstimatedAnnualReturnHigh: annualHigh,
		EstimatedROI: ROI{
			Low:  PercentOf(annualLow, totalCapitalNeeded),
			High: PercentOf(annualHigh, totalCapitalNeeded),
		},
		BreakevenPrice:         in.CurrentPrice,
		WorstCaseLoss:          totalMaxDrawdown,
		TaxAdjustedProfit:      taxAdjusted,
		NetROI:                 PercentOf(taxAdjusted, totalCapitalNeeded),
		WinProb:                winProbability,
		UseSIP:                 in.UseSIP,
		PayoffTable:            make([]PayoffRow, 0, positions),
		VolatilityBufferSeries: make([]BufferPoint, 0, positions),
	}

	for i := 0; i <= levels; i++ {
		entry := in.CurrentPrice - float64(i)*in.BuyInterval
		r.PayoffTable = append(r.PayoffTable, PayoffRow{
			Level:                i,
			EntryPrice:           entry,
			Cost:                 in.MarginPerLot,
			Drawdown:             entry - in.MinPrice,
			ReturnIfSoldAtTarget: in.SellInterval * float64(i) * in.LotSize,
		})
		r.VolatilityBufferSeries = append(r.VolatilityBufferSeries, BufferPoint{
			Position: i + 1,
			Buffer:   in.ATR * float64(i+1),
		})
	}

	r.MonthlyStats = monthly(in, bias, positions, profitPerLot)

	if totalCapitalNeeded == 0 {
		r.Warnings = append(r.Warnings, Warning{
			Code:    WarnZeroCapital,
			Message: "total capital needed is zero, ROI is undefined",
		})
	}

	return r, nil
}

func monthly(in Input, bias TrendBias, positions int, profitPerLot float64) MonthlyStats {
	// Clamp before converting: atrMoves can exceed the int range, or be +Inf,
	// when the buy interval is tiny.
	atrMoves := in.AverageTradingDaysPerMonth * in.ATR / in.BuyInterval
	entered := int(math.Min(math.Floor(atrMoves*bias.Multiplier()), float64(positions)))
	booked := entered / 2

	return MonthlyStats{
		PositionsEnteredMonthly:    entered,
		ProfitBookedMonthly:        booked,
		RunningPositionsMonthly:    entered - booked,
		MonthlyProfit:              float64(booked) * profitPerLot * in.LotSize,
		AverageTradingDaysPerMonth: in.AverageTradingDaysPerMonth,
		TrendBias:                  bias,
	}
}

// zeroReport is returned when the ladder has no level to buy at.
func zeroReport(in Input, bias TrendBias) *Report {
	return &Report{
		EstimatedROI:           ROI{},
		NetROI:                 Percent{},
		UseSIP:                 in.UseSIP,
		PayoffTable:            []PayoffRow{},
		VolatilityBufferSeries: []BufferPoint{},
		MonthlyStats: MonthlyStats{
			AverageTradingDaysPerMonth: in.AverageTradingDaysPerMonth,
			TrendBias:                  bias,
		},
		Warnings: []Warning{
			{
				Code: WarnNoBuyLevels,
				Message: fmt.Sprintf("current price %v is below minimum price %v, no buy level can be placed",
					in.CurrentPrice, in.MinPrice),
			},
			{
				Code:    WarnZeroCapital,
				Message: "total capital needed is zero, ROI is undefined",
			},
		},
	}
}
