package withdrawal

import (
	"github.com/shopspring/decimal"
)

// Context carries the per-year simulation state a policy needs to size a
// withdrawal. The simulator builds one per simulated year, after returns and
// contributions have been applied but before any money leaves the accounts.
//
// YearIndex: 0-based index of the simulated year.
// RemainingYears: years left in the horizon including this one.
// CumulativeInflation: product of (1 + inflation) over all years so far;
// 1 when inflation is disabled.
// InitialNetWorth: net worth at the start of the whole run.
// CurrentNetWorth: end-of-year net worth before this withdrawal.
type Context struct {
	YearIndex           int
	RemainingYears      int
	CumulativeInflation decimal.Decimal
	InitialNetWorth     decimal.Decimal
	CurrentNetWorth     decimal.Decimal
}

// Policy computes the gross dollar withdrawal for one simulated year. Amount
// must never return a negative value; the simulator caps the actual
// distribution at available asset balances.
type Policy interface {
	Name() string
	Amount(ctx Context) decimal.Decimal
}

func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
