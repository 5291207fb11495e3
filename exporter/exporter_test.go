package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SaschaSchweitzer/persons/tabular"
)

func sampleResult() *tabular.ResultTable {
	return &tabular.ResultTable{
		Columns: []string{"person_id", "source", "id", "fnm", "snm", "matching", "saving_time"},
		Rows: []tabular.Row{
			{"person_id": "0", "source": "default table", "id": "1", "fnm": "Tim", "snm": "Burton", "matching": "vertical", "saving_time": "2017-01-01 12:00:00 CET+0100"},
			{"person_id": "0", "source": "default table", "id": "2", "fnm": "Tim W.", "snm": "Burton", "matching": "vertical", "saving_time": "2017-01-01 12:00:00 CET+0100"},
		},
	}
}

func TestCSVExportToString(t *testing.T) {
	content, err := NewCSVExporter().ExportToString(sampleResult())
	if err != nil {
		t.Fatalf("ExportToString: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %d lines", len(lines))
	}
	if lines[0] != "person_id,source,id,fnm,snm,matching,saving_time" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0,default table,1,Tim,Burton") {
		t.Errorf("unexpected first row %q", lines[1])
	}
}

func TestCSVExportFileNaming(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"extension appended", filepath.Join(dir, "out"), filepath.Join(dir, "out.csv")},
		{"extension kept", filepath.Join(dir, "result.csv"), filepath.Join(dir, "result.csv")},
		{"directory gets default name", dir + "/", filepath.Join(dir, "persons.csv")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewCSVExporter().ExportToFile(sampleResult(), tt.path); err != nil {
				t.Fatalf("ExportToFile: %v", err)
			}
			if _, err := os.Stat(tt.expected); err != nil {
				t.Errorf("expected file %s: %v", tt.expected, err)
			}
		})
	}
}

func TestJSONExportToString(t *testing.T) {
	content, err := NewJSONExporter().ExportToString(sampleResult())
	if err != nil {
		t.Fatalf("ExportToString: %v", err)
	}
	if !strings.Contains(content, `"persons"`) || !strings.Contains(content, `"Tim W."`) {
		t.Errorf("unexpected JSON output: %s", content)
	}
}

func TestYAMLExportToString(t *testing.T) {
	content, err := NewYAMLExporter().ExportToString(sampleResult())
	if err != nil {
		t.Fatalf("ExportToString: %v", err)
	}
	if !strings.Contains(content, "persons:") || !strings.Contains(content, "Tim W.") {
		t.Errorf("unexpected YAML output: %s", content)
	}
}

func TestNewExporter(t *testing.T) {
	if _, err := New("csv"); err != nil {
		t.Errorf("csv: %v", err)
	}
	if _, err := New("json"); err != nil {
		t.Errorf("json: %v", err)
	}
	if _, err := New("yml"); err != nil {
		t.Errorf("yml: %v", err)
	}
	if _, err := New("xls"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
