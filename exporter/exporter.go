// Package exporter writes disambiguation result tables to CSV, JSON or
// YAML files.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/SaschaSchweitzer/persons/tabular"
)

// Exporter writes a result table to a file or a string.
type Exporter interface {
	ExportToFile(result *tabular.ResultTable, filePath string) error
	ExportToString(result *tabular.ResultTable) (string, error)
}

// New returns the exporter for a format name (csv, json or yaml).
func New(format string) (Exporter, error) {
	switch format {
	case "csv", "":
		return NewCSVExporter(), nil
	case "json":
		return NewJSONExporter(), nil
	case "yaml", "yml":
		return NewYAMLExporter(), nil
	}
	return nil, fmt.Errorf("unsupported output format: %s", format)
}

// BaseExporter provides the shared file helpers.
type BaseExporter struct{}

// writeToFile writes content to a file, creating parent directories.
func (be *BaseExporter) writeToFile(filePath, content string) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// defaultFileName applies the output naming rules: an empty path or a bare
// directory falls back to the default name, and a missing extension is
// appended.
func defaultFileName(filePath, defaultName, extension string) string {
	if filePath == "" || filePath[len(filePath)-1] == '/' || filePath[len(filePath)-1] == '\\' {
		return filePath + defaultName
	}
	if filepath.Ext(filePath) != extension {
		return filePath + extension
	}
	return filePath
}
