package simulation

import (
	"math"
	"math/rand"

	"github.com/moneyflow/projection/internal/domain"
	"github.com/moneyflow/projection/internal/withdrawal"
	"github.com/shopspring/decimal"
)

// TrialPath is the outcome of one simulated future. Paths have exactly
// years+1 entries: index 0 is the starting net worth, index y the net worth
// at the end of simulated year y. Once net worth hits zero the remaining
// entries are zero and the trial is marked failed.
type TrialPath struct {
	NominalPath []decimal.Decimal
	RealPath    []decimal.Decimal

	TotalContributions decimal.Decimal
	TotalWithdrawals   decimal.Decimal
	Succeeded          bool
	AnnualizedTWRR     decimal.Decimal

	// FinalAccountBalances holds ending asset balances keyed by account ID,
	// discounted to today's dollars when the run requests it.
	FinalAccountBalances map[int64]decimal.Decimal

	// FIYear is the first path index at which real net worth reached the FI
	// threshold, or -1 if it never did (or no threshold was set).
	FIYear int
}

// trialSpec is the immutable per-run input shared by every trial.
type trialSpec struct {
	accounts    []domain.AccountSnapshot
	cfg         domain.SimulationConfig
	policy      withdrawal.Policy
	fiThreshold *decimal.Decimal
}

// simAccount is the mutable per-trial state of one account.
type simAccount struct {
	id          int64
	isAsset     bool
	balance     decimal.Decimal
	monthly     decimal.Decimal
	stockW      decimal.Decimal
	bondW       decimal.Decimal
	cashW       decimal.Decimal
	monthlyRate decimal.Decimal
}

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// runTrial simulates one future. All randomness comes from rng, so a trial
// is fully determined by its seed regardless of scheduling.
func runTrial(rng *rand.Rand, source ReturnSource, spec trialSpec) TrialPath {
	years := spec.cfg.Years

	accounts := make([]*simAccount, 0, len(spec.accounts))
	for _, snap := range spec.accounts {
		stocks, bonds, cash := snap.Allocation.Weights()
		accounts = append(accounts, &simAccount{
			id:          snap.ID,
			isAsset:     snap.IsAsset,
			balance:     snap.CurrentBalance,
			monthly:     snap.MonthlyContribution,
			stockW:      stocks,
			bondW:       bonds,
			cashW:       cash,
			monthlyRate: snap.InterestRate.Div(decimal.NewFromInt(100)).Div(twelve),
		})
	}

	initialNW := netWorth(accounts)

	trial := TrialPath{
		NominalPath:          make([]decimal.Decimal, 0, years+1),
		RealPath:             make([]decimal.Decimal, 0, years+1),
		FinalAccountBalances: make(map[int64]decimal.Decimal),
		FIYear:               -1,
	}
	trial.NominalPath = append(trial.NominalPath, initialNW)
	trial.RealPath = append(trial.RealPath, initialNW)

	// Withdrawals start immediately in a plain decumulation run. With an FI
	// threshold the trial accumulates until real net worth first crosses it.
	withdrawing := spec.cfg.IncludeWithdrawals && spec.fiThreshold == nil
	if spec.fiThreshold != nil && initialNW.GreaterThanOrEqual(*spec.fiThreshold) {
		withdrawing = true
		trial.FIYear = 0
	}

	sampler := newBlockSampler(rng, source.Len(), years)
	cumInflation := one
	depleted := false

	for y := 1; y <= years; y++ {
		idx := sampler.next()

		if spec.cfg.IncludeInflation {
			cumInflation = cumInflation.Mul(one.Add(source.Inflation(idx)))
		}

		stockR := source.StockReturn(idx)
		bondR := source.BondReturn(idx)
		cashR := source.CashReturn(idx)

		for _, acc := range accounts {
			if acc.isAsset {
				portfolioReturn := acc.stockW.Mul(stockR).
					Add(acc.bondW.Mul(bondR)).
					Add(acc.cashW.Mul(cashR))
				acc.balance = acc.balance.Mul(one.Add(portfolioReturn))
				if !withdrawing {
					annual := acc.monthly.Mul(twelve)
					acc.balance = acc.balance.Add(annual)
					trial.TotalContributions = trial.TotalContributions.Add(annual)
				}
			} else {
				// Liabilities compound monthly and receive twelve payments.
				for m := 0; m < 12; m++ {
					acc.balance = acc.balance.Mul(one.Add(acc.monthlyRate)).Sub(acc.monthly)
					if acc.balance.IsNegative() {
						acc.balance = decimal.Zero
					}
				}
			}
		}

		nw := netWorth(accounts)

		if spec.cfg.IncludeWithdrawals && withdrawing && nw.IsPositive() {
			amount := spec.policy.Amount(withdrawal.Context{
				YearIndex:           y - 1,
				RemainingYears:      years - (y - 1),
				CumulativeInflation: cumInflation,
				InitialNetWorth:     initialNW,
				CurrentNetWorth:     nw,
			})
			distributeWithdrawal(accounts, amount)
			trial.TotalWithdrawals = trial.TotalWithdrawals.Add(amount)
			nw = netWorth(accounts)
		}

		if !nw.IsPositive() {
			depleted = true
			padZero(&trial, years-y+1)
			break
		}

		real := nw
		if spec.cfg.ShowTodaysDollars && spec.cfg.IncludeInflation {
			real = nw.Div(cumInflation)
		}
		trial.NominalPath = append(trial.NominalPath, nw)
		trial.RealPath = append(trial.RealPath, real)

		if spec.fiThreshold != nil && !withdrawing && real.GreaterThanOrEqual(*spec.fiThreshold) {
			withdrawing = true
			trial.FIYear = y
		}
	}

	trial.Succeeded = !depleted && trial.NominalPath[len(trial.NominalPath)-1].IsPositive()
	trial.AnnualizedTWRR = annualizedTWRR(initialNW, trial.NominalPath[len(trial.NominalPath)-1], trial.TotalContributions, years)

	for _, acc := range accounts {
		if !acc.isAsset {
			continue
		}
		balance := acc.balance
		if depleted {
			balance = decimal.Zero
		} else if spec.cfg.ShowTodaysDollars && spec.cfg.IncludeInflation {
			balance = balance.Div(cumInflation)
		}
		trial.FinalAccountBalances[acc.id] = balance
	}

	return trial
}

func netWorth(accounts []*simAccount) decimal.Decimal {
	nw := decimal.Zero
	for _, acc := range accounts {
		if acc.isAsset {
			nw = nw.Add(acc.balance)
		} else {
			nw = nw.Sub(acc.balance)
		}
	}
	return nw
}

// distributeWithdrawal takes the requested amount out of asset accounts in
// proportion to their balances, capped per account at its balance.
func distributeWithdrawal(accounts []*simAccount, amount decimal.Decimal) {
	totalAssets := decimal.Zero
	for _, acc := range accounts {
		if acc.isAsset {
			totalAssets = totalAssets.Add(acc.balance)
		}
	}
	if !totalAssets.IsPositive() {
		return
	}
	for _, acc := range accounts {
		if !acc.isAsset {
			continue
		}
		share := acc.balance.Div(totalAssets)
		take := amount.Mul(share)
		if take.GreaterThan(acc.balance) {
			take = acc.balance
		}
		acc.balance = acc.balance.Sub(take)
	}
}

// padZero fills the remaining path entries with zero after depletion so
// every path keeps its years+1 length.
func padZero(trial *TrialPath, remaining int) {
	for i := 0; i < remaining; i++ {
		trial.NominalPath = append(trial.NominalPath, decimal.Zero)
		trial.RealPath = append(trial.RealPath, decimal.Zero)
	}
}

// annualizedTWRR computes the time-weighted annual return implied by the
// final balance net of contributions: (1 + gain/initial)^(1/years) - 1.
// A non-positive starting value or zero horizon yields zero; a total loss
// beyond the starting value is floored at -100%.
func annualizedTWRR(initial, final, contributions decimal.Decimal, years int) decimal.Decimal {
	if !initial.IsPositive() || years == 0 {
		return decimal.Zero
	}
	gain := final.Sub(initial).Sub(contributions)
	base := one.Add(gain.Div(initial))
	f, _ := base.Float64()
	if f <= 0 {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromFloat(math.Pow(f, 1.0/float64(years)) - 1)
}
