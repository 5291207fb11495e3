package tabular

import (
	"strconv"
	"strings"

	"github.com/SaschaSchweitzer/persons/nameutil"
	"github.com/SaschaSchweitzer/persons/types"
)

// ConvertOptions steer the conversion of rows into engine records.
type ConvertOptions struct {
	// NormalizeNames applies nameutil.Normalize to the name fields.
	NormalizeNames bool
	// RemoveParticles strips noble particles from the normalised surname.
	RemoveParticles bool
	// OnlyFirstForename keeps only the first forename component.
	OnlyFirstForename bool
}

// ToRecords converts the rows of a table into engine records according to
// the recognised format. A recognised middle name is appended to the
// forename before normalisation. Rows with a non-integer year value are
// skipped silently.
func ToRecords(table *Table, f *Format, opts ConvertOptions) []*types.Record {
	records := make([]*types.Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		rec := &types.Record{
			ID:       row[f.IDColumn],
			Source:   f.SourceType,
			Forename: row[f.ForenameColumn],
			Surname:  row[f.SurnameColumn],
			Cluster:  types.ClusterUnassigned,
		}

		if f.HasMiddle() {
			rec.Middle = strings.TrimSpace(row[f.MiddleColumn])
			if rec.Middle != "" {
				rec.Forename += " " + rec.Middle
			}
		}

		if f.HasYear() {
			if raw := strings.TrimSpace(row[f.YearColumn]); raw != "" {
				year, err := strconv.Atoi(raw)
				if err != nil {
					continue
				}
				rec.Year = year
				rec.HasYear = true
			}
		}

		rec.NormForename = normalizeField(rec.Forename, opts.NormalizeNames)
		rec.NormSurname = normalizeField(rec.Surname, opts.NormalizeNames)
		if opts.OnlyFirstForename {
			if parts := strings.Split(rec.NormForename, " "); len(parts) > 0 {
				rec.NormForename = parts[0]
			}
		}
		if opts.RemoveParticles {
			rec.NormSurname = nameutil.RemoveParticles(rec.NormSurname)
		}

		records = append(records, rec)
	}
	return records
}

func normalizeField(s string, normalize bool) string {
	if normalize {
		return nameutil.Normalize(s)
	}
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
