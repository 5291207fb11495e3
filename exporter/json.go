package exporter

import (
	"encoding/json"
	"fmt"

	"github.com/SaschaSchweitzer/persons/tabular"
)

// JSONExporter exports a result table to JSON format
type JSONExporter struct {
	*BaseExporter
}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{BaseExporter: &BaseExporter{}}
}

// jsonDocument is the serialised shape of a result table.
type jsonDocument struct {
	Columns []string      `json:"columns"`
	Persons []tabular.Row `json:"persons"`
}

// ExportToFile exports the result table to a JSON file
func (je *JSONExporter) ExportToFile(result *tabular.ResultTable, filePath string) error {
	filePath = defaultFileName(filePath, "persons.json", ".json")

	content, err := je.ExportToString(result)
	if err != nil {
		return err
	}
	return je.writeToFile(filePath, content)
}

// ExportToString exports the result table to a JSON string
func (je *JSONExporter) ExportToString(result *tabular.ResultTable) (string, error) {
	doc := jsonDocument{
		Columns: result.Columns,
		Persons: result.Rows,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}
