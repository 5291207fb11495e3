package tabular

import (
	"strconv"
	"strings"

	"github.com/SaschaSchweitzer/persons/nameutil"
	"github.com/SaschaSchweitzer/persons/types"
)

// Column identifier token lists. A column is recognised when its lowercased
// normalised name contains one of the tokens; the first matching column of
// the table wins.
var (
	forenameIdentifiers   = []string{"fore", "first", "fnm", "given", "christian", "baptism", "baptismal"}
	surnameIdentifiers    = []string{"sur", "last", "snm", "family", "cognomen", "byname", "matronymic", "patronymic", "metronymic"}
	middleNameIdentifiers = []string{"middle", "initial", "second"}
	yearIdentifiers       = []string{"year", "yr"}
	idIdentifiers         = []string{"id"}
)

// SyntheticIDColumn is the name of the id column added when none is
// recognised.
const SyntheticIDColumn = "name_id"

// Format describes the recognised columns of an input table.
type Format struct {
	// SourceType tags records read through this format.
	SourceType types.Source

	// Recognised column names; empty when the column is absent.
	IDColumn       string
	ForenameColumn string
	SurnameColumn  string
	MiddleColumn   string
	YearColumn     string
}

// HasMiddle reports whether a middle-name column was recognised.
func (f *Format) HasMiddle() bool {
	return f.MiddleColumn != ""
}

// HasYear reports whether a year column was recognised.
func (f *Format) HasYear() bool {
	return f.YearColumn != ""
}

// IdentifyColumns recognises the forename, surname, middle-name, year and
// id columns of a table. Forename and surname are mandatory; their absence
// is a schema error.
func IdentifyColumns(table *Table, source types.Source) (*Format, error) {
	f := &Format{SourceType: source}

	for _, col := range table.Columns {
		norm := strings.ReplaceAll(nameutil.Normalize(col), " ", "")
		switch {
		case f.ForenameColumn == "" && containsAny(norm, forenameIdentifiers):
			f.ForenameColumn = col
		case f.SurnameColumn == "" && containsAny(norm, surnameIdentifiers):
			f.SurnameColumn = col
		case f.MiddleColumn == "" && containsAny(norm, middleNameIdentifiers):
			f.MiddleColumn = col
		case f.YearColumn == "" && containsAny(norm, yearIdentifiers):
			f.YearColumn = col
		case f.IDColumn == "" && containsAny(norm, idIdentifiers):
			f.IDColumn = col
		}
	}

	if f.ForenameColumn == "" {
		return nil, types.NewStandardErrorWithContext(types.ErrorTypeSchema,
			"forename column missing, please provide a column titled 'forename'", "column recognition")
	}
	if f.SurnameColumn == "" {
		return nil, types.NewStandardErrorWithContext(types.ErrorTypeSchema,
			"surname column missing, please provide a column titled 'surname'", "column recognition")
	}
	return f, nil
}

// EnsureIDColumn adds a synthetic sequential id column when none was
// recognised.
func EnsureIDColumn(table *Table, f *Format) {
	if f.IDColumn != "" {
		return
	}
	values := make([]string, len(table.Rows))
	for i := range values {
		values[i] = strconv.Itoa(i)
	}
	table.AddColumn(SyntheticIDColumn, values)
	f.IDColumn = SyntheticIDColumn
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
