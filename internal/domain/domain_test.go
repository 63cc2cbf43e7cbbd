package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTaxBucketFor(t *testing.T) {
	assert.Equal(t, TaxFree, TaxBucketFor("roth_ira"))
	assert.Equal(t, TaxFree, TaxBucketFor("hsa"))
	assert.Equal(t, TaxDeferred, TaxBucketFor("401k"))
	assert.Equal(t, PartiallyTaxable, TaxBucketFor("after_tax_401k"))
	assert.Equal(t, Taxable, TaxBucketFor("brokerage"))
	assert.Equal(t, Taxable, TaxBucketFor("something_new"))
}

func TestAllocationNormalize(t *testing.T) {
	t.Run("already normalized", func(t *testing.T) {
		a := Allocation{
			StocksPct: decimal.NewFromInt(60),
			BondsPct:  decimal.NewFromInt(30),
			CashPct:   decimal.NewFromInt(10),
		}
		n := a.Normalize()
		assert.True(t, n.StocksPct.Equal(decimal.NewFromInt(60)))
		assert.True(t, n.BondsPct.Equal(decimal.NewFromInt(30)))
		assert.True(t, n.CashPct.Equal(decimal.NewFromInt(10)))
	})

	t.Run("skewed input is rescaled", func(t *testing.T) {
		a := Allocation{
			StocksPct: decimal.NewFromInt(50),
			BondsPct:  decimal.NewFromInt(50),
			CashPct:   decimal.NewFromInt(100),
		}
		n := a.Normalize()
		assert.True(t, n.StocksPct.Equal(decimal.NewFromInt(25)), n.StocksPct.String())
		assert.True(t, n.CashPct.Equal(decimal.NewFromInt(50)), n.CashPct.String())
	})

	t.Run("zero sum defaults to cash", func(t *testing.T) {
		n := Allocation{}.Normalize()
		assert.True(t, n.CashPct.Equal(decimal.NewFromInt(100)))
		assert.True(t, n.StocksPct.IsZero())
	})
}

func TestAllocationWeights(t *testing.T) {
	a := Allocation{
		StocksPct: decimal.NewFromInt(80),
		BondsPct:  decimal.NewFromInt(15),
		CashPct:   decimal.NewFromInt(5),
	}
	stocks, bonds, cash := a.Weights()
	assert.True(t, stocks.Equal(decimal.NewFromFloat(0.8)))
	assert.True(t, bonds.Equal(decimal.NewFromFloat(0.15)))
	assert.True(t, cash.Equal(decimal.NewFromFloat(0.05)))
	assert.True(t, stocks.Add(bonds).Add(cash).Equal(decimal.NewFromInt(1)))
}

func TestNetWorth(t *testing.T) {
	accounts := []AccountSnapshot{
		{IsAsset: true, CurrentBalance: decimal.NewFromInt(100000)},
		{IsAsset: true, CurrentBalance: decimal.NewFromInt(50000)},
		{IsAsset: false, CurrentBalance: decimal.NewFromInt(200000)},
	}
	assert.True(t, NetWorth(accounts).Equal(decimal.NewFromInt(-50000)))
	assert.True(t, NetWorth(nil).IsZero())
}

func TestFIREPlanInput(t *testing.T) {
	input := FIREPlanInput{
		CurrentAge:            35,
		LifeExpectancy:        90,
		SocialSecurityMonthly: decimal.NewFromInt(1500),
		PensionMonthly:        decimal.NewFromInt(500),
	}
	assert.Equal(t, 55, input.Horizon())
	assert.True(t, input.OtherAnnualIncome().Equal(decimal.NewFromInt(24000)))
}

func TestDefaultSimulationConfig(t *testing.T) {
	cfg := DefaultSimulationConfig()
	assert.Equal(t, 30, cfg.Years)
	assert.Equal(t, 1000, cfg.NumSimulations)
	assert.True(t, cfg.IncludeInflation)
	assert.False(t, cfg.IncludeWithdrawals)
	assert.Equal(t, WithdrawFixedSWR, cfg.Withdrawal.Method)
	assert.Contains(t, WithdrawalMethods, cfg.Withdrawal.Method)
}
