package exporter

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/SaschaSchweitzer/persons/tabular"
)

// YAMLExporter exports a result table to YAML format.
type YAMLExporter struct {
	*BaseExporter
}

// NewYAMLExporter creates a new YAMLExporter.
func NewYAMLExporter() *YAMLExporter {
	return &YAMLExporter{BaseExporter: &BaseExporter{}}
}

// yamlDocument is the serialised shape of a result table.
type yamlDocument struct {
	Columns []string      `yaml:"columns"`
	Persons []tabular.Row `yaml:"persons"`
}

// ExportToFile exports the result table to a YAML file.
func (ye *YAMLExporter) ExportToFile(result *tabular.ResultTable, filePath string) error {
	filePath = defaultFileName(filePath, "persons.yaml", ".yaml")

	content, err := ye.ExportToString(result)
	if err != nil {
		return err
	}
	return ye.writeToFile(filePath, content)
}

// ExportToString exports the result table to a YAML string.
func (ye *YAMLExporter) ExportToString(result *tabular.ResultTable) (string, error) {
	doc := yamlDocument{
		Columns: result.Columns,
		Persons: result.Rows,
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(data), nil
}
