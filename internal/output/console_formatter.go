package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/moneyflow/projection/internal/fire"
	"github.com/moneyflow/projection/internal/simulation"
)

// ConsoleFormatter renders a plain-text summary for terminal use.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) FormatSimulation(result *simulation.AggregateResult) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintln(buf, "MONTE CARLO PROJECTION")
	fmt.Fprintln(buf, strings.Repeat("=", 60))
	fmt.Fprintf(buf, "Trials: %d   Horizon: %d years", result.NumSimulations, result.Years)
	if result.InflationAdjusted {
		fmt.Fprintf(buf, "   (today's dollars)")
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Success rate: %s\n", FormatPercent(result.SuccessRate))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "FINAL NET WORTH")
	writeLadder(buf, result.Percentiles)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "ANNUALIZED RETURN (TWRR)")
	fmt.Fprintf(buf, "  Median: %s   p10: %s   p90: %s\n",
		FormatPercent(result.TWRR.P50), FormatPercent(result.TWRR.P10), FormatPercent(result.TWRR.P90))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "CONTRIBUTIONS")
	fmt.Fprintf(buf, "  Starting value:    %s\n", FormatCurrency(result.Contributions.InitialValue))
	fmt.Fprintf(buf, "  Annual rate:       %s\n", FormatCurrency(result.Contributions.AnnualRate))
	fmt.Fprintf(buf, "  Total contributed: %s\n", FormatCurrency(result.Contributions.TotalPerSimulation))
	fmt.Fprintln(buf)

	if result.FIRE != nil {
		fmt.Fprintln(buf, "WITHDRAWALS")
		fmt.Fprintf(buf, "  Method:        %s\n", result.FIRE.WithdrawalMethod)
		fmt.Fprintf(buf, "  Success rate:  %s (%d of %d trials)\n",
			FormatPercent(result.FIRE.SuccessRate), result.FIRE.SuccessCount, result.NumSimulations)
		fmt.Fprintf(buf, "  Median total:  %s\n", FormatCurrency(result.FIRE.TotalWithdrawalsMedian))
		fmt.Fprintf(buf, "  Annual average: %s\n", FormatCurrency(result.FIRE.AnnualWithdrawalAvg))
		fmt.Fprintln(buf)
	}

	if result.PeriodStatistics != nil {
		ps := result.PeriodStatistics
		fmt.Fprintf(buf, "HISTORICAL CONTEXT (%d-year rolling windows)\n", ps.PeriodUsed)
		fmt.Fprintf(buf, "  Stocks CAGR: mean %s, range %s to %s\n",
			FormatPercent(ps.Stocks.HistoricalMeanCAGR),
			FormatPercent(ps.Stocks.HistoricalMinCAGR),
			FormatPercent(ps.Stocks.HistoricalMaxCAGR))
		fmt.Fprintf(buf, "  Bonds CAGR:  mean %s, range %s to %s\n",
			FormatPercent(ps.Bonds.HistoricalMeanCAGR),
			FormatPercent(ps.Bonds.HistoricalMinCAGR),
			FormatPercent(ps.Bonds.HistoricalMaxCAGR))
		fmt.Fprintf(buf, "  Cash CAGR:   mean %s\n", FormatPercent(ps.Cash.HistoricalMeanCAGR))
		fmt.Fprintln(buf)
	}

	fmt.Fprintln(buf, "TAX BUCKETS (current -> median projected)")
	writeTaxRow(buf, "Tax free", result.TaxAnalysis.Current.TaxFree, result.TaxAnalysis.Projected.TaxFree)
	writeTaxRow(buf, "Tax deferred", result.TaxAnalysis.Current.TaxDeferred, result.TaxAnalysis.Projected.TaxDeferred)
	writeTaxRow(buf, "Taxable", result.TaxAnalysis.Current.Taxable, result.TaxAnalysis.Projected.Taxable)
	writeTaxRow(buf, "Partially taxable", result.TaxAnalysis.Current.PartiallyTaxable, result.TaxAnalysis.Projected.PartiallyTaxable)

	return buf.Bytes(), nil
}

func (c ConsoleFormatter) FormatPlan(plan *fire.FIPlan) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintln(buf, "FIRE PLAN")
	fmt.Fprintln(buf, strings.Repeat("=", 60))
	fmt.Fprintf(buf, "Plan type: %s   Trials: %d   Horizon: %d years\n\n", plan.FIREType, plan.NumSimulations, plan.Years)

	fmt.Fprintf(buf, "FI number:  %s   (progress: %s)\n", FormatCurrency(plan.FINumber), FormatPercent(plan.ProgressPct))
	fmt.Fprintln(buf, "FI numbers by plan type:")
	for _, name := range []string{"lean", "regular", "fat", "coast", "barista"} {
		if v, ok := plan.FINumberByType[name]; ok {
			fmt.Fprintf(buf, "  %-8s %s\n", name, FormatCurrency(v))
		}
	}
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "Chance of reaching FI: %s\n", FormatPercent(plan.FIProbability))
	fmt.Fprintf(buf, "Plan success rate:     %s\n", FormatPercent(plan.SuccessRate))
	if plan.YearsToFI != nil {
		fmt.Fprintf(buf, "Years to FI:  median %s (best case %s, worst case %s)\n",
			plan.YearsToFI.Median.Round(1), plan.YearsToFI.Optimistic.Round(1), plan.YearsToFI.Pessimistic.Round(1))
		fmt.Fprintf(buf, "FI age:       median %s\n", plan.FIAge.Median.Round(1))
	} else {
		fmt.Fprintln(buf, "No trial reached FI within the horizon.")
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "FINAL PORTFOLIO")
	writeLadder(buf, plan.FinalPortfolio)
	fmt.Fprintln(buf)

	if len(plan.SuccessByRetirementAge) > 0 {
		fmt.Fprintln(buf, "SUCCESS BY RETIREMENT AGE")
		for _, row := range plan.SuccessByRetirementAge {
			fmt.Fprintf(buf, "  Age %d: %s\n", row.Age, FormatPercent(row.SuccessPct))
		}
	}

	return buf.Bytes(), nil
}

func writeLadder(buf *bytes.Buffer, ladder simulation.PercentileLadder) {
	fmt.Fprintf(buf, "  p10: %s   p25: %s   p50: %s   p75: %s   p90: %s\n",
		FormatCurrency(ladder.P10), FormatCurrency(ladder.P25), FormatCurrency(ladder.P50),
		FormatCurrency(ladder.P75), FormatCurrency(ladder.P90))
	fmt.Fprintf(buf, "  mean: %s   min: %s   max: %s\n",
		FormatCurrency(ladder.Mean), FormatCurrency(ladder.Min), FormatCurrency(ladder.Max))
}

func writeTaxRow(buf *bytes.Buffer, label string, current, projected simulation.TaxBucketShare) {
	fmt.Fprintf(buf, "  %-18s %s (%s) -> %s (%s)\n", label,
		FormatCurrency(current.Amount), FormatPercent(current.Percentage),
		FormatCurrency(projected.Amount), FormatPercent(projected.Percentage))
}
