package withdrawal

import (
	"github.com/moneyflow/projection/internal/domain"
	"github.com/shopspring/decimal"
)

// VariablePct implements variable percentage withdrawal (VPW): each year
// withdraws 1/remainingYears of the current portfolio, so the portfolio is
// amortized over the horizon and can never be depleted early by the rule
// itself. The configured rate is unused; the divisor is clamped at 1 so the
// final year withdraws the full balance.
type VariablePct struct{}

func NewVariablePct(cfg domain.WithdrawalConfig) *VariablePct {
	return &VariablePct{}
}

func (p *VariablePct) Name() string { return domain.WithdrawVariablePct }

func (p *VariablePct) Amount(ctx Context) decimal.Decimal {
	remaining := ctx.RemainingYears
	if remaining < 1 {
		remaining = 1
	}
	rate := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(remaining)))
	return clampNonNegative(ctx.CurrentNetWorth.Mul(rate))
}
