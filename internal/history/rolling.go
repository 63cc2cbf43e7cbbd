package history

import (
	"math"

	"github.com/shopspring/decimal"
)

// RollingStats summarizes the distribution of rolling-window CAGRs for one
// asset class. When the dataset is shorter than the requested window the
// stats fall back to simple annual returns and RollingCAGRs is empty.
type RollingStats struct {
	Mean         decimal.Decimal   `json:"mean"`
	Std          decimal.Decimal   `json:"std"`
	Min          decimal.Decimal   `json:"min"`
	Max          decimal.Decimal   `json:"max"`
	RollingCAGRs []decimal.Decimal `json:"rolling_cagrs"`
}

// RollingStatistics computes the CAGR of every consecutive periodYears-long
// window of the return series and summarizes the resulting distribution.
// For N annual returns and a period p there are N-p+1 windows.
func RollingStatistics(returns []decimal.Decimal, periodYears int) RollingStats {
	if len(returns) == 0 {
		return RollingStats{RollingCAGRs: []decimal.Decimal{}}
	}
	if len(returns) < periodYears {
		stats := summarize(returns)
		stats.RollingCAGRs = []decimal.Decimal{}
		return stats
	}

	one := decimal.NewFromInt(1)
	cagrs := make([]decimal.Decimal, 0, len(returns)-periodYears+1)
	for i := 0; i+periodYears <= len(returns); i++ {
		cumulative := one
		for _, r := range returns[i : i+periodYears] {
			cumulative = cumulative.Mul(one.Add(r))
		}
		cagrs = append(cagrs, annualize(cumulative, periodYears))
	}

	stats := summarize(cagrs)
	stats.RollingCAGRs = cagrs
	return stats
}

// annualize converts a cumulative growth factor into a CAGR. The fractional
// root has no exact decimal form, so this goes through float64.
func annualize(cumulative decimal.Decimal, years int) decimal.Decimal {
	f, _ := cumulative.Float64()
	if f <= 0 {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromFloat(math.Pow(f, 1.0/float64(years)) - 1)
}

// summarize computes mean, population std dev, min and max.
func summarize(values []decimal.Decimal) RollingStats {
	sum := decimal.Zero
	min := values[0]
	max := values[0]
	for _, v := range values {
		sum = sum.Add(v)
		if v.LessThan(min) {
			min = v
		}
		if v.GreaterThan(max) {
			max = v
		}
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(values))))

	var sumSq float64
	meanF, _ := mean.Float64()
	for _, v := range values {
		f, _ := v.Float64()
		d := f - meanF
		sumSq += d * d
	}
	std := decimal.NewFromFloat(math.Sqrt(sumSq / float64(len(values))))

	return RollingStats{Mean: mean, Std: std, Min: min, Max: max}
}

// StandardPeriod rounds a projection horizon up to the nearest standard
// investment period. Longer windows have historically shown a narrower range
// of outcomes, so the summary statistics shown next to a projection use the
// window closest to its length.
func StandardPeriod(projectionYears int) int {
	switch {
	case projectionYears <= 10:
		return 10
	case projectionYears <= 15:
		return 15
	case projectionYears <= 20:
		return 20
	case projectionYears <= 25:
		return 25
	default:
		return 30
	}
}

// PeriodAdjustedReturns carries the full rolling statistics for each asset
// class at the standard period matching a projection horizon.
type PeriodAdjustedReturns struct {
	ProjectionYears int          `json:"projection_years"`
	PeriodUsed      int          `json:"period_used"`
	Stocks          RollingStats `json:"stocks"`
	Bonds           RollingStats `json:"bonds"`
	Cash            RollingStats `json:"cash"`
}

// PeriodAdjusted computes rolling statistics for stocks, bonds and cash over
// the standard period nearest projectionYears.
func (s *Series) PeriodAdjusted(projectionYears int) PeriodAdjustedReturns {
	period := StandardPeriod(projectionYears)
	return PeriodAdjustedReturns{
		ProjectionYears: projectionYears,
		PeriodUsed:      period,
		Stocks:          RollingStatistics(s.stocks, period),
		Bonds:           RollingStatistics(s.bonds, period),
		Cash:            RollingStatistics(s.cash, period),
	}
}

// CAGRRange is a rounded percent view of a rolling CAGR distribution.
type CAGRRange struct {
	HistoricalMeanCAGR decimal.Decimal `json:"historical_mean_cagr"`
	HistoricalMinCAGR  decimal.Decimal `json:"historical_min_cagr"`
	HistoricalMaxCAGR  decimal.Decimal `json:"historical_max_cagr"`
}

// CAGRMean is the cash view; the min/max spread for cash is not meaningful
// to report next to a projection.
type CAGRMean struct {
	HistoricalMeanCAGR decimal.Decimal `json:"historical_mean_cagr"`
}

// PeriodStatistics is the compact summary embedded in simulation results:
// historical CAGR ranges in percent, rounded to two decimal places.
type PeriodStatistics struct {
	PeriodUsed int       `json:"period_used"`
	Stocks     CAGRRange `json:"stocks"`
	Bonds      CAGRRange `json:"bonds"`
	Cash       CAGRMean  `json:"cash"`
}

// PeriodSummary builds the compact percent summary for a projection horizon.
func (s *Series) PeriodSummary(projectionYears int) PeriodStatistics {
	adj := s.PeriodAdjusted(projectionYears)
	return PeriodStatistics{
		PeriodUsed: adj.PeriodUsed,
		Stocks: CAGRRange{
			HistoricalMeanCAGR: toPercent(adj.Stocks.Mean),
			HistoricalMinCAGR:  toPercent(adj.Stocks.Min),
			HistoricalMaxCAGR:  toPercent(adj.Stocks.Max),
		},
		Bonds: CAGRRange{
			HistoricalMeanCAGR: toPercent(adj.Bonds.Mean),
			HistoricalMinCAGR:  toPercent(adj.Bonds.Min),
			HistoricalMaxCAGR:  toPercent(adj.Bonds.Max),
		},
		Cash: CAGRMean{
			HistoricalMeanCAGR: toPercent(adj.Cash.Mean),
		},
	}
}

func toPercent(d decimal.Decimal) decimal.Decimal {
	return d.Mul(decimal.NewFromInt(100)).Round(2)
}
