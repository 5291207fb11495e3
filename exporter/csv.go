package exporter

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/SaschaSchweitzer/persons/tabular"
)

// CSVExporter exports a result table to CSV format
type CSVExporter struct {
	*BaseExporter
}

// NewCSVExporter creates a new CSV exporter
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{BaseExporter: &BaseExporter{}}
}

// ExportToFile exports the result table to a CSV file
func (ce *CSVExporter) ExportToFile(result *tabular.ResultTable, filePath string) error {
	filePath = defaultFileName(filePath, "persons.csv", ".csv")

	content, err := ce.ExportToString(result)
	if err != nil {
		return err
	}
	return ce.writeToFile(filePath, content)
}

// ExportToString exports the result table to a CSV string
func (ce *CSVExporter) ExportToString(result *tabular.ResultTable) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	if err := writer.Write(result.Columns); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	line := make([]string, len(result.Columns))
	for _, row := range result.Rows {
		for i, col := range result.Columns {
			line[i] = row[col]
		}
		if err := writer.Write(line); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return sb.String(), nil
}
