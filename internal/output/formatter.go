package output

import (
	"fmt"

	"github.com/moneyflow/projection/internal/fire"
	"github.com/moneyflow/projection/internal/simulation"
	"github.com/shopspring/decimal"
)

// Formatter renders simulation and FIRE plan results for one output target.
type Formatter interface {
	Name() string
	FormatSimulation(result *simulation.AggregateResult) ([]byte, error)
	FormatPlan(plan *fire.FIPlan) ([]byte, error)
}

// NewFormatter creates a formatter based on the format name.
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "json", "":
		return JSONFormatter{}, nil
	case "console":
		return ConsoleFormatter{}, nil
	case "csv":
		return CSVFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use json, console or csv)", format)
	}
}

// FormatCurrency renders a dollar amount with thousands separators and no
// cents; projections at this horizon carry no meaningful sub-dollar
// precision.
func FormatCurrency(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().Round(0).String()
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-$" + string(out)
	}
	return "$" + string(out)
}

// FormatPercent renders a percentage with two decimal places.
func FormatPercent(d decimal.Decimal) string {
	return d.Round(2).String() + "%"
}
