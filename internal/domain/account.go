package domain

import (
	"github.com/shopspring/decimal"
)

// TaxBucket classifies how withdrawals from an account are taxed.
type TaxBucket string

const (
	TaxFree          TaxBucket = "tax_free"
	TaxDeferred      TaxBucket = "tax_deferred"
	Taxable          TaxBucket = "taxable"
	PartiallyTaxable TaxBucket = "partially_taxable"
)

// taxBucketByAccountType maps account types to their withdrawal tax treatment.
// Roth accounts and HSAs are tax-free on qualified withdrawals; traditional
// retirement accounts are taxed as ordinary income; brokerage and bank accounts
// are subject to capital gains; after-tax 401(k) is mixed (basis tax-free,
// gains taxed).
var taxBucketByAccountType = map[string]TaxBucket{
	"401k":           TaxDeferred,
	"roth_401k":      TaxFree,
	"after_tax_401k": PartiallyTaxable,
	"403b":           TaxDeferred,
	"457":            TaxDeferred,
	"ira":            TaxDeferred,
	"roth_ira":       TaxFree,
	"sep_ira":        TaxDeferred,
	"simple_ira":     TaxDeferred,
	"hsa":            TaxFree,
	"brokerage":      Taxable,
	"savings":        Taxable,
	"checking":       Taxable,
	"cd":             Taxable,
	"money_market":   Taxable,
	"real_estate":    Taxable,
	"crypto":         Taxable,
	"other_asset":    Taxable,
}

// TaxBucketFor returns the tax bucket for an account type. Unknown types
// default to taxable.
func TaxBucketFor(accountType string) TaxBucket {
	if bucket, ok := taxBucketByAccountType[accountType]; ok {
		return bucket
	}
	return Taxable
}

// Allocation describes how an asset account is split across stocks, bonds and
// cash. Percentages are on a 0-100 scale and are expected to sum to 100; use
// Normalize to repair skewed input.
type Allocation struct {
	StocksPct decimal.Decimal `json:"stocks_pct" yaml:"stocks_pct"`
	BondsPct  decimal.Decimal `json:"bonds_pct" yaml:"bonds_pct"`
	CashPct   decimal.Decimal `json:"cash_pct" yaml:"cash_pct"`
}

// Normalize scales the allocation so the three percentages sum to 100. Input
// that does not sum to 100 is rescaled proportionally rather than rejected.
// A zero-sum allocation defaults to 100% cash, the neutral choice.
func (a Allocation) Normalize() Allocation {
	sum := a.StocksPct.Add(a.BondsPct).Add(a.CashPct)
	if sum.IsZero() {
		return Allocation{CashPct: decimal.NewFromInt(100)}
	}
	hundred := decimal.NewFromInt(100)
	return Allocation{
		StocksPct: a.StocksPct.Div(sum).Mul(hundred),
		BondsPct:  a.BondsPct.Div(sum).Mul(hundred),
		CashPct:   a.CashPct.Div(sum).Mul(hundred),
	}
}

// Weights returns the normalized allocation as 0-1 fractions.
func (a Allocation) Weights() (stocks, bonds, cash decimal.Decimal) {
	n := a.Normalize()
	hundred := decimal.NewFromInt(100)
	return n.StocksPct.Div(hundred), n.BondsPct.Div(hundred), n.CashPct.Div(hundred)
}

// AccountSnapshot is a read-only view of one account at simulation time. The
// persistence layer produces these; the engine never mutates them.
type AccountSnapshot struct {
	ID                  int64           `json:"id" yaml:"id"`
	Name                string          `json:"name" yaml:"name"`
	AccountType         string          `json:"account_type" yaml:"account_type"`
	IsAsset             bool            `json:"is_asset" yaml:"is_asset"`
	CurrentBalance      decimal.Decimal `json:"current_balance" yaml:"current_balance"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution" yaml:"monthly_contribution"`
	Allocation          Allocation      `json:"allocation" yaml:"allocation"`

	// InterestRate is the APR percentage applied to liability balances
	// (e.g. 6.5 for 6.5%). Ignored for assets.
	InterestRate decimal.Decimal `json:"interest_rate" yaml:"interest_rate"`
}

// NetWorth sums asset balances minus liability balances.
func NetWorth(accounts []AccountSnapshot) decimal.Decimal {
	var nw decimal.Decimal
	for _, acc := range accounts {
		if acc.IsAsset {
			nw = nw.Add(acc.CurrentBalance)
		} else {
			nw = nw.Sub(acc.CurrentBalance)
		}
	}
	return nw
}
