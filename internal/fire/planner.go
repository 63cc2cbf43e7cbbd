package fire

import (
	"context"
	"fmt"
	"math"

	"github.com/moneyflow/projection/internal/domain"
	"github.com/moneyflow/projection/internal/simulation"
	"github.com/shopspring/decimal"
)

// coastRealGrowth is the assumed real (after-inflation) growth rate used to
// discount the coast-FIRE number back from traditional retirement age.
var coastRealGrowth = decimal.NewFromFloat(0.05)

// traditionalRetirementAge anchors the coast discount horizon.
const traditionalRetirementAge = 65

// Multipliers applied to the base FI number per plan type. Lean and barista
// both assume roughly 70% of regular retirement spending; barista because
// part-time income covers the rest.
var (
	leanMultiplier    = decimal.NewFromFloat(0.7)
	fatMultiplier     = decimal.NewFromFloat(1.5)
	baristaMultiplier = decimal.NewFromFloat(0.7)
)

// Spread is a median with optimistic (p10) and pessimistic (p90) bounds.
type Spread struct {
	Median      decimal.Decimal `json:"median"`
	Optimistic  decimal.Decimal `json:"optimistic"`
	Pessimistic decimal.Decimal `json:"pessimistic"`
}

// AgeSuccess is one row of the retirement-age sensitivity table: the share
// of trials whose portfolio at that age clears the sufficiency heuristic.
type AgeSuccess struct {
	Age        int             `json:"age"`
	SuccessPct decimal.Decimal `json:"success_pct"`
}

// FIPlan is the planner's full output document.
type FIPlan struct {
	FIREType       string                     `json:"fire_type"`
	FINumber       decimal.Decimal            `json:"fi_number"`
	FINumberByType map[string]decimal.Decimal `json:"fi_number_by_type"`
	ProgressPct    decimal.Decimal            `json:"progress_pct"`

	FIProbability decimal.Decimal `json:"fi_probability"`
	SuccessRate   decimal.Decimal `json:"success_rate"`

	// YearsToFI and FIAge summarize only the trials that reached FI within
	// the horizon; both are nil when no trial did.
	YearsToFI *Spread `json:"years_to_fi,omitempty"`
	FIAge     *Spread `json:"fi_age,omitempty"`

	FinalPortfolio         simulation.PercentileLadder `json:"final_portfolio"`
	SuccessByRetirementAge []AgeSuccess                `json:"success_by_retirement_age"`

	Years          int `json:"years"`
	NumSimulations int `json:"num_simulations"`
}

// Planner runs FI-number math plus a dedicated withdrawal-triggered Monte
// Carlo run over the user's remaining lifetime.
type Planner struct {
	Sim            Simulator
	NumSimulations int
	Logger         simulation.Logger
}

// Simulator is the narrow surface the planner needs, satisfied by
// *simulation.Simulator.
type Simulator interface {
	RunTrials(ctx context.Context, accounts []domain.AccountSnapshot, cfg domain.SimulationConfig, fiThreshold *decimal.Decimal) ([]simulation.TrialPath, error)
}

// NewPlanner builds a planner over the given simulator with defaults.
func NewPlanner(sim Simulator) *Planner {
	return &Planner{Sim: sim, NumSimulations: 1000, Logger: simulation.NopLogger{}}
}

// Plan computes the FI numbers and runs the lifetime simulation.
func (p *Planner) Plan(ctx context.Context, accounts []domain.AccountSnapshot, input domain.FIREPlanInput) (*FIPlan, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	byType := fiNumbersByType(input)
	fiNumber := byType[input.FIREType]
	currentNW := domain.NetWorth(accounts)

	hundred := decimal.NewFromInt(100)
	progress := hundred
	if fiNumber.IsPositive() {
		progress = currentNW.Div(fiNumber).Mul(hundred)
	}

	horizon := input.Horizon()
	netExpenses := netRetirementExpenses(input)

	cfg := domain.DefaultSimulationConfig()
	cfg.Years = horizon
	cfg.NumSimulations = p.NumSimulations
	cfg.IncludeInflation = true
	cfg.ShowTodaysDollars = true
	cfg.IncludeWithdrawals = true
	cfg.Withdrawal = domain.WithdrawalConfig{
		Method:       domain.WithdrawFixedSWR,
		Rate:         input.WithdrawalRate,
		AnnualAmount: &netExpenses,
	}

	p.Logger.Infof("FIRE plan: type=%s fi_number=%s horizon=%d trials=%d",
		input.FIREType, fiNumber.StringFixed(0), horizon, cfg.NumSimulations)

	trials, err := p.Sim.RunTrials(ctx, accounts, cfg, &fiNumber)
	if err != nil {
		return nil, err
	}

	plan := &FIPlan{
		FIREType:       input.FIREType,
		FINumber:       fiNumber,
		FINumberByType: byType,
		ProgressPct:    progress,
		Years:          horizon,
		NumSimulations: cfg.NumSimulations,
	}

	finals := make([]decimal.Decimal, len(trials))
	reachedYears := make([]decimal.Decimal, 0, len(trials))
	successCount := 0
	for i, trial := range trials {
		finals[i] = trial.RealPath[len(trial.RealPath)-1]
		if trial.Succeeded {
			successCount++
		}
		if trial.FIYear >= 0 {
			reachedYears = append(reachedYears, decimal.NewFromInt(int64(trial.FIYear)))
		}
	}

	n := decimal.NewFromInt(int64(len(trials)))
	plan.FIProbability = decimal.NewFromInt(int64(len(reachedYears))).Div(n).Mul(hundred)
	plan.SuccessRate = decimal.NewFromInt(int64(successCount)).Div(n).Mul(hundred)
	plan.FinalPortfolio = simulation.ComputeLadder(finals)

	if len(reachedYears) > 0 {
		ladder := simulation.ComputeLadder(reachedYears)
		age := decimal.NewFromInt(int64(input.CurrentAge))
		plan.YearsToFI = &Spread{Median: ladder.P50, Optimistic: ladder.P10, Pessimistic: ladder.P90}
		plan.FIAge = &Spread{
			Median:      age.Add(ladder.P50),
			Optimistic:  age.Add(ladder.P10),
			Pessimistic: age.Add(ladder.P90),
		}
	}

	plan.SuccessByRetirementAge = successByRetirementAge(trials, input)

	return plan, nil
}

func validateInput(input domain.FIREPlanInput) error {
	known := false
	for _, t := range domain.FIRETypes {
		if input.FIREType == t {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown FIRE type %q (supported: %v)", input.FIREType, domain.FIRETypes)
	}
	if !input.WithdrawalRate.IsPositive() {
		return fmt.Errorf("withdrawal_rate must be positive, got %s", input.WithdrawalRate)
	}
	if input.LifeExpectancy <= input.CurrentAge {
		return fmt.Errorf("life_expectancy (%d) must exceed current_age (%d)", input.LifeExpectancy, input.CurrentAge)
	}
	return nil
}

// netRetirementExpenses is the annual amount the portfolio itself must
// cover: retirement spending minus Social Security and pension income,
// floored at zero.
func netRetirementExpenses(input domain.FIREPlanInput) decimal.Decimal {
	net := input.RetirementExpenses.Sub(input.OtherAnnualIncome())
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// fiNumbersByType computes the FI target for every plan type from one base:
// net expenses divided by the withdrawal rate.
func fiNumbersByType(input domain.FIREPlanInput) map[string]decimal.Decimal {
	base := netRetirementExpenses(input).Div(input.WithdrawalRate)
	return map[string]decimal.Decimal{
		domain.FIRERegular: base,
		domain.FIRELean:    base.Mul(leanMultiplier),
		domain.FIREFat:     base.Mul(fatMultiplier),
		domain.FIREBarista: base.Mul(baristaMultiplier),
		domain.FIRECoast:   coastNumber(base, input.CurrentAge),
	}
}

// coastNumber discounts the regular FI number back from age 65: the amount
// that grows to the target with no further contributions.
func coastNumber(base decimal.Decimal, currentAge int) decimal.Decimal {
	yearsToGrow := traditionalRetirementAge - currentAge
	if yearsToGrow <= 0 {
		return base
	}
	growth, _ := coastRealGrowth.Float64()
	factor := math.Pow(1+growth, float64(yearsToGrow))
	return base.Div(decimal.NewFromFloat(factor))
}

// successByRetirementAge estimates, for each candidate retirement age, the
// share of trials whose portfolio at that age clears a rough sufficiency
// bar: 60% of expenses times the years left. The 0.6 factor is a heuristic
// carried for continuity with earlier releases, not a derived criterion; it
// understates growth during retirement and overstates late-life spending.
// The table is anchored at the plan's target retirement age when it falls
// inside the horizon, stepping five years at a time.
func successByRetirementAge(trials []simulation.TrialPath, input domain.FIREPlanInput) []AgeSuccess {
	hundred := decimal.NewFromInt(100)
	sufficiency := decimal.NewFromFloat(0.6)
	var table []AgeSuccess

	start := input.CurrentAge + 5
	if input.TargetRetirementAge > input.CurrentAge && input.TargetRetirementAge < input.LifeExpectancy {
		start = input.TargetRetirementAge
	}

	for age := start; age < input.LifeExpectancy; age += 5 {
		yearIndex := age - input.CurrentAge
		remaining := decimal.NewFromInt(int64(input.LifeExpectancy - age))
		required := input.RetirementExpenses.Mul(remaining).Mul(sufficiency)

		count := 0
		for _, trial := range trials {
			if yearIndex >= len(trial.RealPath) {
				continue
			}
			if trial.RealPath[yearIndex].GreaterThan(required) {
				count++
			}
		}
		pct := decimal.Zero
		if len(trials) > 0 {
			pct = decimal.NewFromInt(int64(count)).Div(decimal.NewFromInt(int64(len(trials)))).Mul(hundred)
		}
		table = append(table, AgeSuccess{Age: age, SuccessPct: pct})
	}
	return table
}
