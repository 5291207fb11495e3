package tabular

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/SaschaSchweitzer/persons/types"
)

// ReadCSV reads a delimited-text file into a table. The first line is the
// header.
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, types.WrapError(types.ErrorTypeIO, err, "csv input")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, types.WrapError(types.ErrorTypeIO, err, "csv input")
	}
	if len(lines) == 0 {
		return nil, types.NewStandardErrorWithContext(types.ErrorTypeInput,
			fmt.Sprintf("file %s is empty", path), "csv input")
	}

	table := NewTable(lines[0]...)
	for _, line := range lines[1:] {
		row := make(Row, len(table.Columns))
		for i, col := range table.Columns {
			if i < len(line) {
				row[col] = line[i]
			} else {
				row[col] = ""
			}
		}
		table.Append(row)
	}
	return table, nil
}
