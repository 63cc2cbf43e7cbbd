package config

import (
	"fmt"
	"os"

	"github.com/moneyflow/projection/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a projection configuration from a YAML file, applies
// defaults for omitted simulation parameters and validates the result.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.applyDefaults(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// applyDefaults fills omitted simulation parameters with the standard run
// settings. YAML cannot distinguish an omitted years from an explicit zero,
// so both get the standard horizon; zero-year degenerate runs remain
// available through the engine API.
func (ip *InputParser) applyDefaults(config *domain.Configuration) {
	defaults := domain.DefaultSimulationConfig()
	if config.Simulation.Years == 0 {
		config.Simulation.Years = defaults.Years
	}
	if config.Simulation.NumSimulations == 0 {
		config.Simulation.NumSimulations = defaults.NumSimulations
	}
	if config.Simulation.Withdrawal.Method == "" {
		config.Simulation.Withdrawal.Method = defaults.Withdrawal.Method
	}
	if config.Simulation.Withdrawal.Rate.IsZero() && config.Simulation.Withdrawal.AnnualAmount == nil {
		config.Simulation.Withdrawal.Rate = defaults.Withdrawal.Rate
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Accounts) == 0 {
		return fmt.Errorf("at least one account is required")
	}
	seen := map[int64]bool{}
	for i, account := range config.Accounts {
		if err := ip.validateAccount(&account); err != nil {
			return fmt.Errorf("account %d (%s) validation failed: %w", i, account.Name, err)
		}
		if seen[account.ID] {
			return fmt.Errorf("duplicate account id %d", account.ID)
		}
		seen[account.ID] = true
	}

	if err := ip.validateSimulation(&config.Simulation); err != nil {
		return fmt.Errorf("simulation validation failed: %w", err)
	}

	if config.FIRE != nil {
		if err := ip.validateFIRE(config.FIRE); err != nil {
			return fmt.Errorf("fire plan validation failed: %w", err)
		}
	}

	return nil
}

// validateAccount validates a single account snapshot
func (ip *InputParser) validateAccount(account *domain.AccountSnapshot) error {
	if account.Name == "" {
		return fmt.Errorf("name is required")
	}
	if account.CurrentBalance.LessThan(decimal.Zero) {
		return fmt.Errorf("current balance cannot be negative")
	}
	if account.MonthlyContribution.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly contribution cannot be negative")
	}
	if !account.IsAsset && account.InterestRate.LessThan(decimal.Zero) {
		return fmt.Errorf("liability interest rate cannot be negative")
	}
	// Allocations that do not sum to 100 are normalized by the engine, not
	// rejected; only negative components are invalid.
	a := account.Allocation
	if a.StocksPct.LessThan(decimal.Zero) || a.BondsPct.LessThan(decimal.Zero) || a.CashPct.LessThan(decimal.Zero) {
		return fmt.Errorf("allocation percentages cannot be negative")
	}
	return nil
}

// validateSimulation validates the simulation parameters
func (ip *InputParser) validateSimulation(sim *domain.SimulationConfig) error {
	if sim.Years < 0 {
		return fmt.Errorf("years cannot be negative")
	}
	if sim.Years > 100 {
		return fmt.Errorf("years must be at most 100")
	}
	if sim.NumSimulations <= 0 {
		return fmt.Errorf("num_simulations must be positive")
	}
	if sim.NumSimulations > 100000 {
		return fmt.Errorf("num_simulations must be at most 100000")
	}
	return ip.validateWithdrawal(&sim.Withdrawal)
}

// validateWithdrawal validates the withdrawal strategy parameters
func (ip *InputParser) validateWithdrawal(w *domain.WithdrawalConfig) error {
	known := false
	for _, method := range domain.WithdrawalMethods {
		if w.Method == method {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("withdrawal method must be one of %v, got %q", domain.WithdrawalMethods, w.Method)
	}
	if w.Rate.LessThan(decimal.Zero) {
		return fmt.Errorf("withdrawal rate cannot be negative")
	}
	if w.AnnualAmount != nil && w.AnnualAmount.LessThan(decimal.Zero) {
		return fmt.Errorf("annual withdrawal amount cannot be negative")
	}
	if w.Method == domain.WithdrawGuardrails {
		if w.LowerGuardrail.GreaterThan(w.UpperGuardrail) {
			return fmt.Errorf("lower guardrail cannot exceed upper guardrail")
		}
		if w.GuardrailAdjustment.LessThan(decimal.Zero) || w.GuardrailAdjustment.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("guardrail adjustment must be in [0, 1)")
		}
	}
	if w.Method == domain.WithdrawFloorCeiling {
		if w.Floor.LessThan(decimal.Zero) || w.Ceiling.LessThan(decimal.Zero) {
			return fmt.Errorf("floor and ceiling cannot be negative")
		}
		if w.Ceiling.IsPositive() && w.Floor.GreaterThan(w.Ceiling) {
			return fmt.Errorf("floor cannot exceed ceiling")
		}
	}
	return nil
}

// validateFIRE validates the optional FIRE plan inputs
func (ip *InputParser) validateFIRE(fire *domain.FIREPlanInput) error {
	known := false
	for _, t := range domain.FIRETypes {
		if fire.FIREType == t {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("fire type must be one of %v, got %q", domain.FIRETypes, fire.FIREType)
	}
	if fire.CurrentAge <= 0 || fire.CurrentAge > 100 {
		return fmt.Errorf("current age must be between 1 and 100")
	}
	if fire.LifeExpectancy <= fire.CurrentAge {
		return fmt.Errorf("life expectancy must exceed current age")
	}
	if fire.TargetRetirementAge < fire.CurrentAge {
		return fmt.Errorf("target retirement age cannot be below current age")
	}
	if !fire.WithdrawalRate.IsPositive() {
		return fmt.Errorf("withdrawal rate must be positive")
	}
	if fire.RetirementExpenses.LessThan(decimal.Zero) {
		return fmt.Errorf("retirement expenses cannot be negative")
	}
	if fire.SocialSecurityMonthly.LessThan(decimal.Zero) || fire.PensionMonthly.LessThan(decimal.Zero) {
		return fmt.Errorf("benefit amounts cannot be negative")
	}
	return nil
}
