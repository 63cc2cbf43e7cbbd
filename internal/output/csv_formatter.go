package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/moneyflow/projection/internal/fire"
	"github.com/moneyflow/projection/internal/simulation"
)

// CSVFormatter emits the per-year outcome bands, one row per projected
// year, for spreadsheet use.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) FormatSimulation(result *simulation.AggregateResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Year", "P10", "P25", "P50", "P75", "P90"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	pp := result.PathPercentiles
	for i, year := range pp.Years {
		row := []string{
			strconv.Itoa(year),
			pp.P10[i].StringFixed(2),
			pp.P25[i].StringFixed(2),
			pp.P50[i].StringFixed(2),
			pp.P75[i].StringFixed(2),
			pp.P90[i].StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (c CSVFormatter) FormatPlan(plan *fire.FIPlan) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write([]string{"Age", "SuccessPct"}); err != nil {
		return nil, err
	}
	for _, row := range plan.SuccessByRetirementAge {
		if err := w.Write([]string{strconv.Itoa(row.Age), row.SuccessPct.StringFixed(2)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
