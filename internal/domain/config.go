package domain

import (
	"github.com/shopspring/decimal"
)

// Withdrawal method identifiers. These are wire-level names shared with the
// API layer; the factory in internal/withdrawal maps them to strategies.
const (
	WithdrawFixedSWR     = "fixed_swr"
	WithdrawVariablePct  = "variable_pct"
	WithdrawGuardrails   = "guardrails"
	WithdrawFloorCeiling = "floor_ceiling"
)

// WithdrawalMethods lists every supported withdrawal method name.
var WithdrawalMethods = []string{
	WithdrawFixedSWR,
	WithdrawVariablePct,
	WithdrawGuardrails,
	WithdrawFloorCeiling,
}

// WithdrawalConfig holds the parameters for the configured withdrawal
// strategy. Rates are decimals (0.04 = 4%), dollar amounts are nominal
// first-year dollars.
type WithdrawalConfig struct {
	Method string `json:"method" yaml:"method"`

	// Rate is the base withdrawal rate used when AnnualAmount is not set.
	Rate decimal.Decimal `json:"rate" yaml:"rate"`

	// AnnualAmount, when non-nil, overrides Rate with a fixed first-year
	// dollar amount.
	AnnualAmount *decimal.Decimal `json:"annual_amount,omitempty" yaml:"annual_amount,omitempty"`

	// Guyton-Klinger guardrail parameters.
	UpperGuardrail      decimal.Decimal `json:"upper_guardrail" yaml:"upper_guardrail"`
	LowerGuardrail      decimal.Decimal `json:"lower_guardrail" yaml:"lower_guardrail"`
	GuardrailAdjustment decimal.Decimal `json:"guardrail_adjustment" yaml:"guardrail_adjustment"`

	// Floor/ceiling parameters, in first-year dollars. A ceiling of zero
	// means unbounded.
	Floor   decimal.Decimal `json:"floor" yaml:"floor"`
	Ceiling decimal.Decimal `json:"ceiling" yaml:"ceiling"`
}

// SimulationConfig is the immutable per-run configuration for the portfolio
// simulator.
type SimulationConfig struct {
	Years              int              `json:"years" yaml:"years"`
	NumSimulations     int              `json:"num_simulations" yaml:"num_simulations"`
	IncludeInflation   bool             `json:"include_inflation" yaml:"include_inflation"`
	ShowTodaysDollars  bool             `json:"show_todays_dollars" yaml:"show_todays_dollars"`
	IncludeWithdrawals bool             `json:"include_withdrawals" yaml:"include_withdrawals"`
	Withdrawal         WithdrawalConfig `json:"withdrawal" yaml:"withdrawal"`
}

// DefaultSimulationConfig returns the baseline configuration: a 30-year,
// 1000-trial accumulation run in today's dollars.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Years:             30,
		NumSimulations:    1000,
		IncludeInflation:  true,
		ShowTodaysDollars: true,
		Withdrawal: WithdrawalConfig{
			Method:              WithdrawFixedSWR,
			Rate:                decimal.NewFromFloat(0.04),
			UpperGuardrail:      decimal.NewFromFloat(0.05),
			LowerGuardrail:      decimal.NewFromFloat(0.03),
			GuardrailAdjustment: decimal.NewFromFloat(0.10),
		},
	}
}

// FIRE plan type identifiers.
const (
	FIRERegular = "regular"
	FIRELean    = "lean"
	FIREFat     = "fat"
	FIRECoast   = "coast"
	FIREBarista = "barista"
)

// FIRETypes lists every supported FIRE plan type.
var FIRETypes = []string{FIRERegular, FIRELean, FIREFat, FIRECoast, FIREBarista}

// FIREPlanInput carries the life-plan parameters for the FI planner. Ages are
// whole years; monthly amounts are today's dollars.
type FIREPlanInput struct {
	CurrentAge          int             `json:"current_age" yaml:"current_age"`
	TargetRetirementAge int             `json:"target_retirement_age" yaml:"target_retirement_age"`
	LifeExpectancy      int             `json:"life_expectancy" yaml:"life_expectancy"`
	AnnualExpenses      decimal.Decimal `json:"annual_expenses" yaml:"annual_expenses"`
	RetirementExpenses  decimal.Decimal `json:"retirement_expenses" yaml:"retirement_expenses"`

	SocialSecurityMonthly  decimal.Decimal `json:"social_security_monthly" yaml:"social_security_monthly"`
	SocialSecurityStartAge int             `json:"social_security_start_age" yaml:"social_security_start_age"`
	PensionMonthly         decimal.Decimal `json:"pension_monthly" yaml:"pension_monthly"`
	PensionStartAge        int             `json:"pension_start_age" yaml:"pension_start_age"`

	InflationRate  decimal.Decimal `json:"inflation_rate" yaml:"inflation_rate"`
	FIREType       string          `json:"fire_type" yaml:"fire_type"`
	WithdrawalRate decimal.Decimal `json:"withdrawal_rate" yaml:"withdrawal_rate"`
}

// Horizon is the number of simulated years for the FIRE plan.
func (f FIREPlanInput) Horizon() int {
	return f.LifeExpectancy - f.CurrentAge
}

// OtherAnnualIncome is the inflation-naive annual income from Social Security
// and pension benefits.
func (f FIREPlanInput) OtherAnnualIncome() decimal.Decimal {
	twelve := decimal.NewFromInt(12)
	return f.SocialSecurityMonthly.Mul(twelve).Add(f.PensionMonthly.Mul(twelve))
}

// Configuration is the root input document: the account snapshots to project,
// the simulation parameters, and the optional FIRE plan inputs.
type Configuration struct {
	Accounts   []AccountSnapshot `json:"accounts" yaml:"accounts"`
	Simulation SimulationConfig  `json:"simulation" yaml:"simulation"`
	FIRE       *FIREPlanInput    `json:"fire,omitempty" yaml:"fire,omitempty"`
}
