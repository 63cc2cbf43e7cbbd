package withdrawal

import (
	"testing"

	"github.com/moneyflow/projection/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ctxWith(initial, current float64, cumInflation float64, remaining int) Context {
	return Context{
		YearIndex:           0,
		RemainingYears:      remaining,
		CumulativeInflation: decimal.NewFromFloat(cumInflation),
		InitialNetWorth:     decimal.NewFromFloat(initial),
		CurrentNetWorth:     decimal.NewFromFloat(current),
	}
}

func TestFixedSWR(t *testing.T) {
	t.Run("rate of initial portfolio", func(t *testing.T) {
		p := NewFixedSWR(domain.WithdrawalConfig{Rate: decimal.NewFromFloat(0.04)})
		got := p.Amount(ctxWith(1000000, 800000, 1.0, 30))
		assert.True(t, got.Equal(decimal.NewFromInt(40000)), "expected 40000, got %s", got)
	})

	t.Run("inflation adjusted", func(t *testing.T) {
		p := NewFixedSWR(domain.WithdrawalConfig{Rate: decimal.NewFromFloat(0.04)})
		got := p.Amount(ctxWith(1000000, 800000, 1.03, 29))
		assert.True(t, got.Equal(decimal.NewFromInt(41200)), "expected 41200, got %s", got)
	})

	t.Run("fixed annual amount overrides rate", func(t *testing.T) {
		amt := decimal.NewFromInt(50000)
		p := NewFixedSWR(domain.WithdrawalConfig{Rate: decimal.NewFromFloat(0.04), AnnualAmount: &amt})
		got := p.Amount(ctxWith(1000000, 800000, 1.0, 30))
		assert.True(t, got.Equal(decimal.NewFromInt(50000)), "expected 50000, got %s", got)
	})

	t.Run("ignores market performance", func(t *testing.T) {
		p := NewFixedSWR(domain.WithdrawalConfig{Rate: decimal.NewFromFloat(0.04)})
		up := p.Amount(ctxWith(1000000, 2000000, 1.0, 30))
		down := p.Amount(ctxWith(1000000, 100000, 1.0, 30))
		assert.True(t, up.Equal(down))
	})
}

func TestVariablePct(t *testing.T) {
	p := NewVariablePct(domain.WithdrawalConfig{})

	t.Run("amortizes over remaining years", func(t *testing.T) {
		got := p.Amount(ctxWith(1000000, 500000, 1.0, 10))
		assert.True(t, got.Equal(decimal.NewFromInt(50000)), "expected 50000, got %s", got)
	})

	t.Run("final year withdraws full balance", func(t *testing.T) {
		got := p.Amount(ctxWith(1000000, 120000, 1.0, 1))
		assert.True(t, got.Equal(decimal.NewFromInt(120000)))
	})

	t.Run("remaining years clamped at one", func(t *testing.T) {
		got := p.Amount(ctxWith(1000000, 120000, 1.0, 0))
		assert.True(t, got.Equal(decimal.NewFromInt(120000)))
	})

	t.Run("never negative", func(t *testing.T) {
		got := p.Amount(ctxWith(1000000, -50000, 1.0, 5))
		assert.True(t, got.IsZero())
	})
}

func TestGuardrails(t *testing.T) {
	cfg := domain.WithdrawalConfig{
		Rate:                decimal.NewFromFloat(0.04),
		UpperGuardrail:      decimal.NewFromFloat(0.05),
		LowerGuardrail:      decimal.NewFromFloat(0.03),
		GuardrailAdjustment: decimal.NewFromFloat(0.10),
	}
	p := NewGuardrails(cfg)

	t.Run("within guardrails keeps baseline", func(t *testing.T) {
		// 40000 / 1000000 = 4%, inside [3%, 5%].
		got := p.Amount(ctxWith(1000000, 1000000, 1.0, 30))
		assert.True(t, got.Equal(decimal.NewFromInt(40000)), "expected 40000, got %s", got)
	})

	t.Run("portfolio shrank, spending cut", func(t *testing.T) {
		// 40000 / 600000 = 6.67% > 5% upper guardrail.
		got := p.Amount(ctxWith(1000000, 600000, 1.0, 30))
		assert.True(t, got.Equal(decimal.NewFromInt(36000)), "expected 36000, got %s", got)
	})

	t.Run("portfolio grew, spending raised", func(t *testing.T) {
		// 40000 / 2000000 = 2% < 3% lower guardrail.
		got := p.Amount(ctxWith(1000000, 2000000, 1.0, 30))
		assert.True(t, got.Equal(decimal.NewFromInt(44000)), "expected 44000, got %s", got)
	})

	t.Run("non-positive portfolio treated as zero rate", func(t *testing.T) {
		got := p.Amount(ctxWith(1000000, 0, 1.0, 30))
		assert.True(t, got.Equal(decimal.NewFromInt(44000)))
	})
}

func TestFloorCeiling(t *testing.T) {
	t.Run("percentage of current portfolio", func(t *testing.T) {
		p := NewFloorCeiling(domain.WithdrawalConfig{Rate: decimal.NewFromFloat(0.04)})
		got := p.Amount(ctxWith(1000000, 1500000, 1.0, 30))
		assert.True(t, got.Equal(decimal.NewFromInt(60000)), "expected 60000, got %s", got)
	})

	t.Run("ceiling caps withdrawal", func(t *testing.T) {
		p := NewFloorCeiling(domain.WithdrawalConfig{
			Rate:    decimal.NewFromFloat(0.04),
			Ceiling: decimal.NewFromInt(50000),
		})
		got := p.Amount(ctxWith(1000000, 2000000, 1.0, 30))
		assert.True(t, got.Equal(decimal.NewFromInt(50000)))
	})

	t.Run("floor supports withdrawal in a downturn", func(t *testing.T) {
		p := NewFloorCeiling(domain.WithdrawalConfig{
			Rate:  decimal.NewFromFloat(0.04),
			Floor: decimal.NewFromInt(30000),
		})
		got := p.Amount(ctxWith(1000000, 400000, 1.0, 30))
		assert.True(t, got.Equal(decimal.NewFromInt(30000)))
	})

	t.Run("bounds are inflation adjusted", func(t *testing.T) {
		p := NewFloorCeiling(domain.WithdrawalConfig{
			Rate:    decimal.NewFromFloat(0.04),
			Ceiling: decimal.NewFromInt(50000),
		})
		got := p.Amount(ctxWith(1000000, 2000000, 1.10, 30))
		assert.True(t, got.Equal(decimal.NewFromInt(55000)), "expected 55000, got %s", got)
	})

	t.Run("zero ceiling means unbounded", func(t *testing.T) {
		p := NewFloorCeiling(domain.WithdrawalConfig{Rate: decimal.NewFromFloat(0.04)})
		got := p.Amount(ctxWith(1000000, 10000000, 1.0, 30))
		assert.True(t, got.Equal(decimal.NewFromInt(400000)))
	})
}

func TestNewPolicy(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{domain.WithdrawFixedSWR, domain.WithdrawFixedSWR},
		{domain.WithdrawVariablePct, domain.WithdrawVariablePct},
		{domain.WithdrawGuardrails, domain.WithdrawGuardrails},
		{domain.WithdrawFloorCeiling, domain.WithdrawFloorCeiling},
		{"", domain.WithdrawFixedSWR},
	}
	for _, tc := range tests {
		t.Run("method "+tc.method, func(t *testing.T) {
			p, err := NewPolicy(domain.WithdrawalConfig{Method: tc.method, Rate: decimal.NewFromFloat(0.04)})
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.Name())
		})
	}

	t.Run("unknown method rejected", func(t *testing.T) {
		_, err := NewPolicy(domain.WithdrawalConfig{Method: "yolo"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown withdrawal method")
	})
}
