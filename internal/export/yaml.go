package export

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/steinunnb/vendorwatch/internal/batch"
)

type yamlSummary struct {
	RunID      string      `yaml:"run_id"`
	ReportDate string      `yaml:"report_date"`
	Vendors    int         `yaml:"vendors"`
	Flagged    int         `yaml:"flagged"`
	Rows       []yamlRow   `yaml:"rows"`
	Errors     []yamlError `yaml:"errors,omitempty"`
}

type yamlRow struct {
	Vendor  string   `yaml:"vendor"`
	Balance float64  `yaml:"balance"`
	Red     []string `yaml:"red,omitempty"`
	Orange  []string `yaml:"orange,omitempty"`
}

type yamlError struct {
	Vendor string `yaml:"vendor"`
	Error  string `yaml:"error"`
}

// WriteReviewYAML writes a batch review summary as YAML.
func WriteReviewYAML(w io.Writer, result *batch.Result) error {
	summary := yamlSummary{
		RunID:      result.RunID,
		ReportDate: result.ReportDate,
		Vendors:    len(result.Rows) + len(result.Errors),
		Rows:       make([]yamlRow, 0, len(result.Rows)),
	}
	for _, row := range result.Rows {
		if len(row.Red) > 0 || len(row.Orange) > 0 {
			summary.Flagged++
		}
		summary.Rows = append(summary.Rows, yamlRow{
			Vendor:  row.Name,
			Balance: row.Balance,
			Red:     row.Red,
			Orange:  row.Orange,
		})
	}
	for _, e := range result.Errors {
		summary.Errors = append(summary.Errors, yamlError{Vendor: e.Name, Error: e.Err})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

func joinFlags(flags []string) string {
	return strings.Join(flags, "; ")
}
