package strategy

// TrendBias tilts the monthly entry projection.
type TrendBias string

const (
	TrendNeutral TrendBias = "neutral"
	TrendBullish TrendBias = "bullish"
	TrendBearish TrendBias = "bearish"
)

// Valid reports whether b is one of the known biases.
func (b TrendBias) Valid() bool {
	switch b {
	case TrendNeutral, TrendBullish, TrendBearish:
		return true
	}
	return false
}

// Multiplier returns the factor applied to monthly ATR moves.
func (b TrendBias) Multiplier() float64 {
	switch b {
	case TrendBullish:
		return 1.3
	case TrendBearish:
		return 0.7
	default:
		return 1
	}
}

// Input is a fully resolved parameter snapshot for one analysis.
type Input struct {
	CurrentPrice               float64
	MinPrice                   float64
	BuyInterval                float64
	SellInterval               float64
	MarginPerLot               float64
	LotSize                    float64
	ATR                        float64
	AverageTradingDaysPerMonth float64
	TrendBias                  TrendBias
	UseSIP                     bool
}

// Report is the result of one analysis. A Report is never mutated after Analyze returns it.
type Report struct {
	TotalPositions            int     `json:"totalPositions"`
	TotalMargin               float64 `json:"totalMargin"`
	AverageBuyPrice           float64 `json:"averageBuyPrice"`
	MaxDrawdownPerLot         float64 `json:"maxDrawdownPerLot"`
	TotalMaxDrawdown          float64 `json:"totalMaxDrawdown"`
	TotalCapitalNeeded        float64 `json:"totalCapitalNeeded"`
	CapitalWithBuffer         float64 `json:"capitalWithBuffer"`
	VolatilityBuffer          float64 `json:"volatilityBuffer"`
	TotalProfitOnFullCycle    float64 `json:"totalProfitOnFullCycle"`
	EstimatedAnnualReturnLow  float64 `json:"estimatedAnnualReturnLow"`
	EstimatedAnnualReturnHigh float64 `json:"estimatedAnnualReturnHigh"`
	EstimatedROI              ROI     `json:"estimatedROI"`
	BreakevenPrice            float64 `json:"breakevenPrice"`
	WorstCaseLoss             float64 `json:"worstCaseLoss"`
	TaxAdjustedProfit         float64 `json:"taxAdjustedProfit"`
	NetROI                    Percent `json:"netROI"`
	WinProb                   float64 `json:"winProb"`
	UseSIP                    bool    `json:"useSip"`

	PayoffTable            []PayoffRow   `json:"payoffTable"`
	VolatilityBufferSeries []BufferPoint `json:"volatilityBufferSeries"`
	MonthlyStats           MonthlyStats  `json:"monthlyStats"`
	Warnings               []Warning     `json:"warnings,omitempty"`
}

// ROI is the low/high return band as a share of required capital.
type ROI struct {
	Low  Percent `json:"low"`
	High Percent `json:"high"`
}

// PayoffRow is one rung of the buy ladder.
type PayoffRow struct {
	Level                int     `json:"level"`
	EntryPrice           float64 `json:"entryPrice"`
	Cost                 float64 `json:"cost"`
	Drawdown             float64 `json:"drawdown"`
	ReturnIfSoldAtTarget float64 `json:"returnIfSoldAtTarget"`
}

// BufferPoint is the cumulative ATR buffer once Position lots are open.
type BufferPoint struct {
	Position int     `json:"position"`
	Buffer   float64 `json:"buffer"`
}

// MonthlyStats projects one month of ladder activity.
type MonthlyStats struct {
	PositionsEnteredMonthly    int       `json:"positionsEnteredMonthly"`
	ProfitBookedMonthly        int       `json:"profitBookedMonthly"`
	RunningPositionsMonthly    int       `json:"runningPositionsMonthly"`
	MonthlyProfit              float64   `json:"monthlyProfit"`
	AverageTradingDaysPerMonth float64   `json:"averageTradingDaysPerMonth"`
	TrendBias                  TrendBias `json:"trendBias"`
}

// Warning codes for inputs that produce a degenerate but well-defined report.
const (
	WarnNoBuyLevels = "NO_BUY_LEVELS"
	WarnZeroCapital = "ZERO_CAPITAL"
)

// Warning flags a degenerate input. It never aborts the analysis.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HasWarning reports whether the report carries a warning with the given code.
func (r *Report) HasWarning(code string) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
