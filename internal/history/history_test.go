package history

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesDataset(t *testing.T) {
	s := Default()

	t.Run("tables are aligned", func(t *testing.T) {
		n := s.Len()
		require.Positive(t, n)
		assert.Equal(t, n, len(s.bonds))
		assert.Equal(t, n, len(s.cash))
		assert.Equal(t, n, len(s.inflation))
	})

	t.Run("known endpoint values", func(t *testing.T) {
		n := s.Len()
		assert.True(t, s.StockReturn(0).Equal(decimal.NewFromFloat(0.4381)))
		assert.True(t, s.StockReturn(n-1).Equal(decimal.NewFromFloat(0.2659)))
		assert.True(t, s.BondReturn(0).Equal(decimal.NewFromFloat(0.0084)))
		assert.True(t, s.CashReturn(n-1).Equal(decimal.NewFromFloat(0.0524)))
		assert.True(t, s.Inflation(0).Equal(decimal.NewFromFloat(-0.0097)))
		assert.True(t, s.Inflation(n-1).Equal(decimal.NewFromFloat(0.0340)))
	})

	t.Run("returns are plausible annual figures", func(t *testing.T) {
		negOne := decimal.NewFromInt(-1)
		one := decimal.NewFromInt(1)
		for i := 0; i < s.Len(); i++ {
			assert.True(t, s.StockReturn(i).GreaterThan(negOne))
			assert.True(t, s.StockReturn(i).LessThan(one))
			assert.True(t, s.BondReturn(i).GreaterThan(negOne))
			assert.True(t, s.CashReturn(i).GreaterThanOrEqual(decimal.Zero))
		}
	})

	t.Run("accessor copies are independent", func(t *testing.T) {
		got := s.StockReturns()
		got[0] = decimal.NewFromInt(99)
		assert.True(t, s.StockReturn(0).Equal(decimal.NewFromFloat(0.4381)))
	})
}

func TestRollingStatistics(t *testing.T) {
	t.Run("constant returns give constant CAGR", func(t *testing.T) {
		returns := make([]decimal.Decimal, 20)
		for i := range returns {
			returns[i] = decimal.NewFromFloat(0.07)
		}
		stats := RollingStatistics(returns, 10)
		require.Len(t, stats.RollingCAGRs, 11)
		mean, _ := stats.Mean.Float64()
		assert.InDelta(t, 0.07, mean, 1e-9)
		std, _ := stats.Std.Float64()
		assert.InDelta(t, 0, std, 1e-9)
	})

	t.Run("window count is N minus p plus one", func(t *testing.T) {
		s := Default()
		stats := RollingStatistics(s.StockReturns(), 30)
		assert.Len(t, stats.RollingCAGRs, s.Len()-30+1)
	})

	t.Run("longer windows narrow the range", func(t *testing.T) {
		s := Default()
		short := RollingStatistics(s.StockReturns(), 10)
		long := RollingStatistics(s.StockReturns(), 30)
		shortSpread := short.Max.Sub(short.Min)
		longSpread := long.Max.Sub(long.Min)
		assert.True(t, longSpread.LessThan(shortSpread),
			"30y spread %s should be narrower than 10y spread %s", longSpread, shortSpread)
	})

	t.Run("period longer than data falls back to annual stats", func(t *testing.T) {
		returns := []decimal.Decimal{
			decimal.NewFromFloat(0.10),
			decimal.NewFromFloat(-0.10),
		}
		stats := RollingStatistics(returns, 5)
		assert.Empty(t, stats.RollingCAGRs)
		assert.True(t, stats.Mean.IsZero())
		assert.True(t, stats.Min.Equal(decimal.NewFromFloat(-0.10)))
		assert.True(t, stats.Max.Equal(decimal.NewFromFloat(0.10)))
	})
}

func TestStandardPeriod(t *testing.T) {
	tests := []struct {
		years int
		want  int
	}{
		{1, 10},
		{10, 10},
		{11, 15},
		{15, 15},
		{18, 20},
		{25, 25},
		{26, 30},
		{50, 30},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, StandardPeriod(tc.years), "years=%d", tc.years)
	}
}

func TestPeriodSummary(t *testing.T) {
	s := Default()
	summary := s.PeriodSummary(30)

	assert.Equal(t, 30, summary.PeriodUsed)
	// Percent values rounded to 2dp; a 30-year stock CAGR mean in single digits.
	assert.True(t, summary.Stocks.HistoricalMeanCAGR.GreaterThan(decimal.NewFromInt(5)))
	assert.True(t, summary.Stocks.HistoricalMeanCAGR.LessThan(decimal.NewFromInt(15)))
	assert.True(t, summary.Stocks.HistoricalMinCAGR.LessThan(summary.Stocks.HistoricalMeanCAGR))
	assert.True(t, summary.Stocks.HistoricalMaxCAGR.GreaterThan(summary.Stocks.HistoricalMeanCAGR))
	assert.Equal(t, int32(-2), summary.Stocks.HistoricalMeanCAGR.Exponent(),
		"percent values should be rounded to two decimal places")
}
