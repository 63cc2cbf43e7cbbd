package withdrawal

import (
	"fmt"

	"github.com/moneyflow/projection/internal/domain"
)

// NewPolicy builds the withdrawal policy for the configured method. Unknown
// method names are rejected rather than silently falling back, so a typo in
// an input file cannot change the economics of a run.
func NewPolicy(cfg domain.WithdrawalConfig) (Policy, error) {
	switch cfg.Method {
	case domain.WithdrawFixedSWR, "":
		return NewFixedSWR(cfg), nil
	case domain.WithdrawVariablePct:
		return NewVariablePct(cfg), nil
	case domain.WithdrawGuardrails:
		return NewGuardrails(cfg), nil
	case domain.WithdrawFloorCeiling:
		return NewFloorCeiling(cfg), nil
	default:
		return nil, fmt.Errorf("unknown withdrawal method %q (supported: %v)", cfg.Method, domain.WithdrawalMethods)
	}
}
