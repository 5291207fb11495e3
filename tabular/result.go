package tabular

import (
	"strconv"
	"time"

	"github.com/SaschaSchweitzer/persons/types"
)

// Output column names that do not come from the input dictionary.
const (
	PersonIDColumn   = "person_id"
	SourceColumn     = "source"
	MatchingColumn   = "matching"
	SavingTimeColumn = "saving_time"
	MaxTimeGapColumn = "maximum_time_gap"
)

// savingTimeFormat is the timestamp layout of the saving_time column.
const savingTimeFormat = "2006-01-02 15:04:05 MST-0700"

// ResultTable is the flat output of a disambiguation run: one row per input
// record, cluster by cluster.
type ResultTable struct {
	Columns []string
	Rows    []Row
}

// SavingTime formats the processing timestamp. The original tool stamped
// Berlin time; fall back to local time when the zone database lacks it.
func SavingTime(now time.Time) string {
	if loc, err := time.LoadLocation("Europe/Berlin"); err == nil {
		now = now.In(loc)
	}
	return now.Format(savingTimeFormat)
}

// BuildResult flattens the clustered records into the output table. Output
// column names for id, forename, surname, middle name and year are taken
// from the recognised input format. Records appear cluster by cluster, in
// record order within each cluster.
func BuildResult(records []*types.Record, f *Format, savingTime string) *ResultTable {
	columns := []string{PersonIDColumn, SourceColumn, f.IDColumn, f.ForenameColumn, f.SurnameColumn, MatchingColumn, SavingTimeColumn}
	if f.HasYear() {
		columns = append(columns, f.YearColumn)
	}
	if f.HasMiddle() {
		columns = append(columns, f.MiddleColumn)
	}
	hasGap := false
	for _, rec := range records {
		if rec.HasMaxTimeGap {
			hasGap = true
			break
		}
	}
	if hasGap {
		columns = append(columns, MaxTimeGapColumn)
	}

	out := &ResultTable{Columns: columns}
	for _, rec := range records {
		row := Row{
			PersonIDColumn:   strconv.Itoa(rec.Cluster),
			SourceColumn:     string(rec.Source),
			f.IDColumn:       rec.ID,
			f.ForenameColumn: rec.Forename,
			f.SurnameColumn:  rec.Surname,
			MatchingColumn:   rec.Matching.Summary(),
			SavingTimeColumn: savingTime,
		}
		if f.HasYear() {
			if rec.HasYear {
				row[f.YearColumn] = strconv.Itoa(rec.Year)
			} else {
				row[f.YearColumn] = ""
			}
		}
		if f.HasMiddle() {
			row[f.MiddleColumn] = rec.Middle
		}
		if hasGap {
			if rec.HasMaxTimeGap {
				row[MaxTimeGapColumn] = strconv.Itoa(rec.MaxTimeGap)
			} else {
				row[MaxTimeGapColumn] = ""
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
