package withdrawal

import (
	"github.com/moneyflow/projection/internal/domain"
	"github.com/shopspring/decimal"
)

// FloorCeiling withdraws a percentage of the current portfolio, bounded by an
// inflation-adjusted floor and ceiling in first-year dollars. A zero ceiling
// means unbounded above; a zero floor means unbounded below.
type FloorCeiling struct {
	rate         decimal.Decimal
	annualAmount *decimal.Decimal
	floor        decimal.Decimal
	ceiling      decimal.Decimal
}

func NewFloorCeiling(cfg domain.WithdrawalConfig) *FloorCeiling {
	return &FloorCeiling{
		rate:         cfg.Rate,
		annualAmount: cfg.AnnualAmount,
		floor:        cfg.Floor,
		ceiling:      cfg.Ceiling,
	}
}

func (p *FloorCeiling) Name() string { return domain.WithdrawFloorCeiling }

func (p *FloorCeiling) Amount(ctx Context) decimal.Decimal {
	var base decimal.Decimal
	if p.annualAmount != nil {
		base = p.annualAmount.Mul(ctx.CumulativeInflation)
	} else {
		base = ctx.CurrentNetWorth.Mul(p.rate)
	}

	amount := base
	if p.ceiling.IsPositive() {
		ceiling := p.ceiling.Mul(ctx.CumulativeInflation)
		if amount.GreaterThan(ceiling) {
			amount = ceiling
		}
	}
	if p.floor.IsPositive() {
		floor := p.floor.Mul(ctx.CumulativeInflation)
		if amount.LessThan(floor) {
			amount = floor
		}
	}
	return clampNonNegative(amount)
}
