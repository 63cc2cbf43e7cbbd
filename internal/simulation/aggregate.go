package simulation

import (
	"math"
	"sort"

	"github.com/moneyflow/projection/internal/domain"
	"github.com/moneyflow/projection/internal/history"
	"github.com/shopspring/decimal"
)

// PercentileLadder is the standard distribution summary used throughout the
// results: interpolated percentiles plus mean, population std dev, min and
// max.
type PercentileLadder struct {
	P10  decimal.Decimal `json:"p10"`
	P25  decimal.Decimal `json:"p25"`
	P50  decimal.Decimal `json:"p50"`
	P75  decimal.Decimal `json:"p75"`
	P90  decimal.Decimal `json:"p90"`
	Mean decimal.Decimal `json:"mean"`
	Std  decimal.Decimal `json:"std"`
	Min  decimal.Decimal `json:"min"`
	Max  decimal.Decimal `json:"max"`
}

// PathPercentiles holds per-year percentile bands for charting the fan of
// outcomes. All slices have years+1 entries aligned with Years.
type PathPercentiles struct {
	Years []int             `json:"years"`
	P10   []decimal.Decimal `json:"p10"`
	P25   []decimal.Decimal `json:"p25"`
	P50   []decimal.Decimal `json:"p50"`
	P75   []decimal.Decimal `json:"p75"`
	P90   []decimal.Decimal `json:"p90"`
}

// ContributionSummary reports the contribution flows behind the projection.
type ContributionSummary struct {
	TotalPerSimulation decimal.Decimal `json:"total_per_simulation"`
	AnnualRate         decimal.Decimal `json:"annual_rate"`
	InitialValue       decimal.Decimal `json:"initial_value"`
}

// FIREStatistics summarizes withdrawal outcomes when decumulation is on.
type FIREStatistics struct {
	SuccessRate            decimal.Decimal `json:"success_rate"`
	SuccessCount           int             `json:"success_count"`
	FailureCount           int             `json:"failure_count"`
	TotalWithdrawalsMean   decimal.Decimal `json:"total_withdrawals_mean"`
	TotalWithdrawalsMedian decimal.Decimal `json:"total_withdrawals_median"`
	AnnualWithdrawalAvg    decimal.Decimal `json:"annual_withdrawal_avg"`
	WithdrawalMethod       string          `json:"withdrawal_method"`
}

// TaxBucketShare is one bucket's dollar amount and share of the total.
type TaxBucketShare struct {
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// TaxBreakdown splits asset value across the four withdrawal tax buckets.
type TaxBreakdown struct {
	Total            decimal.Decimal `json:"total"`
	TaxFree          TaxBucketShare  `json:"tax_free"`
	TaxDeferred      TaxBucketShare  `json:"tax_deferred"`
	Taxable          TaxBucketShare  `json:"taxable"`
	PartiallyTaxable TaxBucketShare  `json:"partially_taxable"`
}

// TaxAnalysis compares today's tax-bucket mix with the median projected mix.
type TaxAnalysis struct {
	Current   TaxBreakdown `json:"current"`
	Projected TaxBreakdown `json:"projected"`
}

// AggregateResult is the reduction of a full trial set, shaped for the JSON
// surface consumed by charts and reports.
type AggregateResult struct {
	Years              int                        `json:"years"`
	NumSimulations     int                        `json:"num_simulations"`
	InflationAdjusted  bool                       `json:"inflation_adjusted"`

	// SuccessRate is the percentage of trials that ended with a positive net
	// worth, reported for every run, not just decumulation ones.
	SuccessRate decimal.Decimal `json:"success_rate"`
	Percentiles        PercentileLadder           `json:"percentiles"`
	PercentilesNominal PercentileLadder           `json:"percentiles_nominal"`
	TWRR               PercentileLadder           `json:"twrr"`
	Contributions      ContributionSummary        `json:"contributions"`
	PathPercentiles    PathPercentiles            `json:"path_percentiles"`
	AccountResults     map[int64]PercentileLadder `json:"account_results"`
	FIRE               *FIREStatistics            `json:"fire_statistics,omitempty"`
	PeriodStatistics   *history.PeriodStatistics  `json:"period_statistics,omitempty"`
	TaxAnalysis        TaxAnalysis                `json:"tax_analysis"`
}

// Aggregate reduces the trial set to the result document. It is a pure
// function of its inputs and never mutates the trials.
func Aggregate(trials []TrialPath, accounts []domain.AccountSnapshot, cfg domain.SimulationConfig, source ReturnSource) *AggregateResult {
	finalsReal := make([]decimal.Decimal, len(trials))
	finalsNominal := make([]decimal.Decimal, len(trials))
	twrr := make([]decimal.Decimal, len(trials))
	hundred := decimal.NewFromInt(100)
	totalContrib := decimal.Zero
	successCount := 0

	for i, trial := range trials {
		finalsReal[i] = trial.RealPath[len(trial.RealPath)-1]
		finalsNominal[i] = trial.NominalPath[len(trial.NominalPath)-1]
		twrr[i] = trial.AnnualizedTWRR.Mul(hundred)
		totalContrib = totalContrib.Add(trial.TotalContributions)
		if trial.Succeeded {
			successCount++
		}
	}

	successRate := decimal.Zero
	if len(trials) > 0 {
		successRate = decimal.NewFromInt(int64(successCount)).Div(decimal.NewFromInt(int64(len(trials)))).Mul(hundred)
	}

	annualRate := decimal.Zero
	for _, acc := range accounts {
		if acc.IsAsset {
			annualRate = annualRate.Add(acc.MonthlyContribution.Mul(decimal.NewFromInt(12)))
		}
	}

	result := &AggregateResult{
		Years:              cfg.Years,
		NumSimulations:     cfg.NumSimulations,
		InflationAdjusted:  cfg.ShowTodaysDollars,
		SuccessRate:        successRate,
		Percentiles:        ComputeLadder(finalsReal),
		PercentilesNominal: ComputeLadder(finalsNominal),
		TWRR:               ComputeLadder(twrr),
		Contributions: ContributionSummary{
			TotalPerSimulation: mean(totalContrib, len(trials)),
			AnnualRate:         annualRate,
			InitialValue:       domain.NetWorth(accounts),
		},
		PathPercentiles: pathPercentiles(trials, cfg.Years),
		AccountResults:  accountResults(trials, accounts),
	}

	if cfg.IncludeWithdrawals {
		result.FIRE = fireStatistics(trials, cfg)
	}
	if hs, ok := source.(*history.Series); ok {
		stats := hs.PeriodSummary(cfg.Years)
		result.PeriodStatistics = &stats
	}
	result.TaxAnalysis = taxAnalysis(accounts, result.AccountResults)

	return result
}

func mean(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}

// ComputeLadder summarizes a value distribution. Percentiles interpolate
// linearly between ranks at index p*(n-1), the definition numeric libraries
// use, so exact values are stable across implementations.
func ComputeLadder(values []decimal.Decimal) PercentileLadder {
	if len(values) == 0 {
		return PercentileLadder{}
	}
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	sum := decimal.Zero
	for _, v := range sorted {
		sum = sum.Add(v)
	}
	m := sum.Div(decimal.NewFromInt(int64(len(sorted))))

	meanF, _ := m.Float64()
	var sumSq float64
	for _, v := range sorted {
		f, _ := v.Float64()
		d := f - meanF
		sumSq += d * d
	}
	std := decimal.NewFromFloat(math.Sqrt(sumSq / float64(len(sorted))))

	return PercentileLadder{
		P10:  getPercentile(sorted, 0.10),
		P25:  getPercentile(sorted, 0.25),
		P50:  getPercentile(sorted, 0.50),
		P75:  getPercentile(sorted, 0.75),
		P90:  getPercentile(sorted, 0.90),
		Mean: m,
		Std:  std,
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
	}
}

// getPercentile interpolates between adjacent ranks of an already sorted
// slice.
func getPercentile(sorted []decimal.Decimal, percentile float64) decimal.Decimal {
	index := percentile * float64(len(sorted)-1)
	if index == float64(int(index)) {
		return sorted[int(index)]
	}
	lower := sorted[int(index)]
	upper := sorted[int(index)+1]
	fraction := decimal.NewFromFloat(index - float64(int(index)))
	return lower.Add(upper.Sub(lower).Mul(fraction))
}

func pathPercentiles(trials []TrialPath, years int) PathPercentiles {
	pp := PathPercentiles{
		Years: make([]int, years+1),
		P10:   make([]decimal.Decimal, years+1),
		P25:   make([]decimal.Decimal, years+1),
		P50:   make([]decimal.Decimal, years+1),
		P75:   make([]decimal.Decimal, years+1),
		P90:   make([]decimal.Decimal, years+1),
	}
	column := make([]decimal.Decimal, len(trials))
	for y := 0; y <= years; y++ {
		pp.Years[y] = y
		for i, trial := range trials {
			column[i] = trial.RealPath[y]
		}
		sorted := make([]decimal.Decimal, len(column))
		copy(sorted, column)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
		pp.P10[y] = getPercentile(sorted, 0.10)
		pp.P25[y] = getPercentile(sorted, 0.25)
		pp.P50[y] = getPercentile(sorted, 0.50)
		pp.P75[y] = getPercentile(sorted, 0.75)
		pp.P90[y] = getPercentile(sorted, 0.90)
	}
	return pp
}

func accountResults(trials []TrialPath, accounts []domain.AccountSnapshot) map[int64]PercentileLadder {
	results := make(map[int64]PercentileLadder)
	for _, acc := range accounts {
		if !acc.IsAsset {
			continue
		}
		values := make([]decimal.Decimal, 0, len(trials))
		for _, trial := range trials {
			if v, ok := trial.FinalAccountBalances[acc.ID]; ok {
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			results[acc.ID] = ComputeLadder(values)
		}
	}
	return results
}

func fireStatistics(trials []TrialPath, cfg domain.SimulationConfig) *FIREStatistics {
	hundred := decimal.NewFromInt(100)
	successCount := 0
	withdrawals := make([]decimal.Decimal, len(trials))
	sum := decimal.Zero
	for i, trial := range trials {
		if trial.Succeeded {
			successCount++
		}
		withdrawals[i] = trial.TotalWithdrawals
		sum = sum.Add(trial.TotalWithdrawals)
	}
	sort.Slice(withdrawals, func(i, j int) bool { return withdrawals[i].LessThan(withdrawals[j]) })

	successRate := decimal.Zero
	if len(trials) > 0 {
		successRate = decimal.NewFromInt(int64(successCount)).Div(decimal.NewFromInt(int64(len(trials)))).Mul(hundred)
	}
	withdrawalsMean := mean(sum, len(trials))
	annualAvg := decimal.Zero
	if cfg.Years > 0 {
		annualAvg = withdrawalsMean.Div(decimal.NewFromInt(int64(cfg.Years)))
	}

	return &FIREStatistics{
		SuccessRate:            successRate,
		SuccessCount:           successCount,
		FailureCount:           len(trials) - successCount,
		TotalWithdrawalsMean:   withdrawalsMean,
		TotalWithdrawalsMedian: getPercentile(withdrawals, 0.50),
		AnnualWithdrawalAvg:    annualAvg,
		WithdrawalMethod:       cfg.Withdrawal.Method,
	}
}

// taxAnalysis splits current balances and median projected balances across
// tax buckets. Accounts missing from the projection fall back to their
// current balance.
func taxAnalysis(accounts []domain.AccountSnapshot, projected map[int64]PercentileLadder) TaxAnalysis {
	current := map[domain.TaxBucket]decimal.Decimal{}
	future := map[domain.TaxBucket]decimal.Decimal{}

	for _, acc := range accounts {
		if !acc.IsAsset {
			continue
		}
		bucket := domain.TaxBucketFor(acc.AccountType)
		current[bucket] = current[bucket].Add(acc.CurrentBalance)

		projectedBalance := acc.CurrentBalance
		if ladder, ok := projected[acc.ID]; ok {
			projectedBalance = ladder.P50
		}
		future[bucket] = future[bucket].Add(projectedBalance)
	}

	return TaxAnalysis{
		Current:   buildBreakdown(current),
		Projected: buildBreakdown(future),
	}
}

func buildBreakdown(byBucket map[domain.TaxBucket]decimal.Decimal) TaxBreakdown {
	total := decimal.Zero
	for _, amount := range byBucket {
		total = total.Add(amount)
	}
	share := func(bucket domain.TaxBucket) TaxBucketShare {
		amount := byBucket[bucket]
		pct := decimal.Zero
		if total.IsPositive() {
			pct = amount.Div(total).Mul(decimal.NewFromInt(100))
		}
		return TaxBucketShare{Amount: amount, Percentage: pct}
	}
	return TaxBreakdown{
		Total:            total,
		TaxFree:          share(domain.TaxFree),
		TaxDeferred:      share(domain.TaxDeferred),
		Taxable:          share(domain.Taxable),
		PartiallyTaxable: share(domain.PartiallyTaxable),
	}
}
