package withdrawal

import (
	"github.com/moneyflow/projection/internal/domain"
	"github.com/shopspring/decimal"
)

// Guardrails implements Guyton-Klinger style guardrails around a fixed SWR
// baseline. When the baseline withdrawal exceeds the upper guardrail as a
// fraction of the current portfolio the spending is cut by the adjustment;
// when it falls below the lower guardrail the spending is raised by the same
// adjustment.
type Guardrails struct {
	rate         decimal.Decimal
	annualAmount *decimal.Decimal
	upper        decimal.Decimal
	lower        decimal.Decimal
	adjustment   decimal.Decimal
}

func NewGuardrails(cfg domain.WithdrawalConfig) *Guardrails {
	return &Guardrails{
		rate:         cfg.Rate,
		annualAmount: cfg.AnnualAmount,
		upper:        cfg.UpperGuardrail,
		lower:        cfg.LowerGuardrail,
		adjustment:   cfg.GuardrailAdjustment,
	}
}

func (p *Guardrails) Name() string { return domain.WithdrawGuardrails }

func (p *Guardrails) Amount(ctx Context) decimal.Decimal {
	base := ctx.InitialNetWorth.Mul(p.rate)
	if p.annualAmount != nil {
		base = *p.annualAmount
	}
	base = base.Mul(ctx.CumulativeInflation)

	currentRate := decimal.Zero
	if ctx.CurrentNetWorth.IsPositive() {
		currentRate = base.Div(ctx.CurrentNetWorth)
	}

	one := decimal.NewFromInt(1)
	switch {
	case currentRate.GreaterThan(p.upper):
		// Portfolio shrank relative to spending, cut back.
		return clampNonNegative(base.Mul(one.Sub(p.adjustment)))
	case currentRate.LessThan(p.lower):
		// Portfolio outgrew spending, allow a raise.
		return clampNonNegative(base.Mul(one.Add(p.adjustment)))
	default:
		return clampNonNegative(base)
	}
}
