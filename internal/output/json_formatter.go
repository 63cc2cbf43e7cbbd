package output

import (
	"encoding/json"

	"github.com/moneyflow/projection/internal/fire"
	"github.com/moneyflow/projection/internal/simulation"
)

// JSONFormatter emits the result documents as indented JSON, the shape the
// web and charting clients consume.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) FormatSimulation(result *simulation.AggregateResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

func (j JSONFormatter) FormatPlan(plan *fire.FIPlan) ([]byte, error) {
	return json.MarshalIndent(plan, "", "  ")
}
