package withdrawal

import (
	"github.com/moneyflow/projection/internal/domain"
	"github.com/shopspring/decimal"
)

// FixedSWR implements the classic safe-withdrawal-rate rule: a fixed
// percentage of the initial portfolio (or a fixed dollar amount), adjusted
// for cumulative inflation every year. The amount never responds to market
// performance.
type FixedSWR struct {
	rate         decimal.Decimal
	annualAmount *decimal.Decimal
}

func NewFixedSWR(cfg domain.WithdrawalConfig) *FixedSWR {
	return &FixedSWR{rate: cfg.Rate, annualAmount: cfg.AnnualAmount}
}

func (p *FixedSWR) Name() string { return domain.WithdrawFixedSWR }

func (p *FixedSWR) Amount(ctx Context) decimal.Decimal {
	base := p.base(ctx)
	return clampNonNegative(base.Mul(ctx.CumulativeInflation))
}

func (p *FixedSWR) base(ctx Context) decimal.Decimal {
	if p.annualAmount != nil {
		return *p.annualAmount
	}
	return ctx.InitialNetWorth.Mul(p.rate)
}
