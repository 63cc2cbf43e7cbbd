package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/moneyflow/projection/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
accounts:
  - id: 1
    name: Brokerage
    account_type: brokerage
    is_asset: true
    current_balance: 50000
    monthly_contribution: 500
    allocation:
      stocks_pct: 80
      bonds_pct: 15
      cash_pct: 5
  - id: 2
    name: Roth IRA
    account_type: roth_ira
    is_asset: true
    current_balance: 30000
    monthly_contribution: 200
    allocation:
      stocks_pct: 100
  - id: 3
    name: Mortgage
    account_type: loan
    is_asset: false
    current_balance: 200000
    monthly_contribution: 1500
    interest_rate: 5.5
simulation:
  years: 25
  num_simulations: 2000
  include_inflation: true
  show_todays_dollars: true
  include_withdrawals: false
  withdrawal:
    method: fixed_swr
    rate: 0.04
fire:
  current_age: 35
  target_retirement_age: 50
  life_expectancy: 90
  annual_expenses: 60000
  retirement_expenses: 48000
  social_security_monthly: 1500
  social_security_start_age: 67
  fire_type: regular
  withdrawal_rate: 0.04
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	parser := NewInputParser()

	t.Run("valid configuration", func(t *testing.T) {
		cfg, err := parser.LoadFromFile(writeConfig(t, validYAML))
		require.NoError(t, err)

		require.Len(t, cfg.Accounts, 3)
		assert.Equal(t, int64(1), cfg.Accounts[0].ID)
		assert.Equal(t, "Brokerage", cfg.Accounts[0].Name)
		assert.True(t, cfg.Accounts[0].Allocation.StocksPct.Equal(decimal.NewFromInt(80)))
		assert.False(t, cfg.Accounts[2].IsAsset)
		assert.True(t, cfg.Accounts[2].InterestRate.Equal(decimal.NewFromFloat(5.5)))

		assert.Equal(t, 25, cfg.Simulation.Years)
		assert.Equal(t, 2000, cfg.Simulation.NumSimulations)
		assert.Equal(t, domain.WithdrawFixedSWR, cfg.Simulation.Withdrawal.Method)

		require.NotNil(t, cfg.FIRE)
		assert.Equal(t, domain.FIRERegular, cfg.FIRE.FIREType)
		assert.True(t, cfg.FIRE.SocialSecurityMonthly.Equal(decimal.NewFromInt(1500)))
		assert.Equal(t, 55, cfg.FIRE.Horizon())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := parser.LoadFromFile("/does/not/exist.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := parser.LoadFromFile(writeConfig(t, "accounts: [\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse YAML")
	})

	t.Run("defaults applied", func(t *testing.T) {
		cfg, err := parser.LoadFromFile(writeConfig(t, `
accounts:
  - id: 1
    name: Savings
    account_type: savings
    is_asset: true
    current_balance: 10000
simulation:
  years: 10
`))
		require.NoError(t, err)
		assert.Equal(t, 1000, cfg.Simulation.NumSimulations)
		assert.Equal(t, domain.WithdrawFixedSWR, cfg.Simulation.Withdrawal.Method)
		assert.True(t, cfg.Simulation.Withdrawal.Rate.Equal(decimal.NewFromFloat(0.04)))
	})

	t.Run("omitted years defaults to the standard horizon", func(t *testing.T) {
		cfg, err := parser.LoadFromFile(writeConfig(t, `
accounts:
  - id: 1
    name: Savings
    account_type: savings
    is_asset: true
    current_balance: 10000
`))
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.Simulation.Years)
		assert.Equal(t, 1000, cfg.Simulation.NumSimulations)
	})
}

func TestValidateConfiguration(t *testing.T) {
	parser := NewInputParser()

	base := func() *domain.Configuration {
		return &domain.Configuration{
			Accounts: []domain.AccountSnapshot{{
				ID: 1, Name: "Brokerage", AccountType: "brokerage", IsAsset: true,
				CurrentBalance: decimal.NewFromInt(1000),
			}},
			Simulation: domain.DefaultSimulationConfig(),
		}
	}

	t.Run("accepts the base configuration", func(t *testing.T) {
		assert.NoError(t, parser.ValidateConfiguration(base()))
	})

	t.Run("no accounts", func(t *testing.T) {
		cfg := base()
		cfg.Accounts = nil
		err := parser.ValidateConfiguration(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one account")
	})

	t.Run("duplicate account ids", func(t *testing.T) {
		cfg := base()
		cfg.Accounts = append(cfg.Accounts, cfg.Accounts[0])
		err := parser.ValidateConfiguration(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate account id")
	})

	t.Run("negative balance", func(t *testing.T) {
		cfg := base()
		cfg.Accounts[0].CurrentBalance = decimal.NewFromInt(-5)
		require.Error(t, parser.ValidateConfiguration(cfg))
	})

	t.Run("skewed allocation is not an error", func(t *testing.T) {
		cfg := base()
		cfg.Accounts[0].Allocation = domain.Allocation{
			StocksPct: decimal.NewFromInt(50),
			BondsPct:  decimal.NewFromInt(50),
			CashPct:   decimal.NewFromInt(50),
		}
		assert.NoError(t, parser.ValidateConfiguration(cfg))
	})

	t.Run("negative allocation component", func(t *testing.T) {
		cfg := base()
		cfg.Accounts[0].Allocation.BondsPct = decimal.NewFromInt(-10)
		require.Error(t, parser.ValidateConfiguration(cfg))
	})

	t.Run("negative years", func(t *testing.T) {
		cfg := base()
		cfg.Simulation.Years = -1
		require.Error(t, parser.ValidateConfiguration(cfg))
	})

	t.Run("zero years is a valid degenerate run", func(t *testing.T) {
		cfg := base()
		cfg.Simulation.Years = 0
		assert.NoError(t, parser.ValidateConfiguration(cfg))
	})

	t.Run("zero simulations", func(t *testing.T) {
		cfg := base()
		cfg.Simulation.NumSimulations = 0
		require.Error(t, parser.ValidateConfiguration(cfg))
	})

	t.Run("unknown withdrawal method", func(t *testing.T) {
		cfg := base()
		cfg.Simulation.Withdrawal.Method = "yolo"
		err := parser.ValidateConfiguration(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "withdrawal method")
	})

	t.Run("inverted guardrails", func(t *testing.T) {
		cfg := base()
		cfg.Simulation.Withdrawal.Method = domain.WithdrawGuardrails
		cfg.Simulation.Withdrawal.LowerGuardrail = decimal.NewFromFloat(0.06)
		cfg.Simulation.Withdrawal.UpperGuardrail = decimal.NewFromFloat(0.05)
		require.Error(t, parser.ValidateConfiguration(cfg))
	})

	t.Run("floor above ceiling", func(t *testing.T) {
		cfg := base()
		cfg.Simulation.Withdrawal.Method = domain.WithdrawFloorCeiling
		cfg.Simulation.Withdrawal.Floor = decimal.NewFromInt(50000)
		cfg.Simulation.Withdrawal.Ceiling = decimal.NewFromInt(40000)
		require.Error(t, parser.ValidateConfiguration(cfg))
	})

	t.Run("unknown fire type", func(t *testing.T) {
		cfg := base()
		cfg.FIRE = &domain.FIREPlanInput{
			CurrentAge: 30, LifeExpectancy: 85, TargetRetirementAge: 50,
			FIREType:       "turbo",
			WithdrawalRate: decimal.NewFromFloat(0.04),
		}
		err := parser.ValidateConfiguration(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fire type")
	})

	t.Run("life expectancy below current age", func(t *testing.T) {
		cfg := base()
		cfg.FIRE = &domain.FIREPlanInput{
			CurrentAge: 60, LifeExpectancy: 55, TargetRetirementAge: 62,
			FIREType:       domain.FIRERegular,
			WithdrawalRate: decimal.NewFromFloat(0.04),
		}
		require.Error(t, parser.ValidateConfiguration(cfg))
	})
}
