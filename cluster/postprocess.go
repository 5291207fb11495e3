package cluster

import (
	"sort"

	"github.com/SaschaSchweitzer/persons/types"
)

// DefaultMaximumTimeGap is the largest accepted gap, in years, between
// chronologically adjacent records of one cluster.
const DefaultMaximumTimeGap = 50

// SplitKnownPersons forces clusters containing more than one known-unique
// record apart. Every known-unique record seeds a fresh singleton cluster;
// the remaining records move to the first seed whose forename compares
// equal, or stay behind tagged as left over.
func (c *Clusterer) SplitKnownPersons(set *Set) {
	original := set.Len()
	for i := 0; i < original; i++ {
		var knowns []*types.Record
		for _, rec := range set.Cluster(i) {
			if rec.Source == types.SourceKnownUnique {
				knowns = append(knowns, rec)
			}
		}
		if len(knowns) < 2 {
			continue
		}

		// One fresh cluster per known unique person.
		seeds := make([]int, 0, len(knowns))
		for _, rec := range knowns {
			rec.Matching = types.NewMatchCodeSet(types.MatchKnownSeparated)
			seed := set.append()
			set.move(rec, i, seed)
			seeds = append(seeds, seed)
		}

		// Move the records that equal a seed's forename; tag the rest.
		for _, seed := range seeds {
			anchor := set.Cluster(seed)[0].NormForename
			for _, rec := range snapshot(set.Cluster(i)) {
				if c.cmp.Compare(anchor, rec.NormForename) == types.RelationEqual {
					rec.Matching = types.NewMatchCodeSet(types.MatchKnownSeparated)
					set.move(rec, i, seed)
				} else {
					rec.Matching = types.NewMatchCodeSet(types.MatchMovedFromKnown)
				}
			}
		}
	}
}

// TimeGapSplit splits clusters at year gaps exceeding maxGap. Records after
// a gap start a new cluster; every record of a split cluster gains the
// split-at-time-gap code. Clusters containing records without a year stamp
// are left untouched.
func (c *Clusterer) TimeGapSplit(set *Set, maxGap int) {
	if maxGap < 1 {
		maxGap = DefaultMaximumTimeGap
	}
	original := set.Len()
	for i := 0; i < original; i++ {
		records := set.Cluster(i)
		if !allHaveYears(records) {
			continue
		}
		sortByYear(records)

		split := false
		current := -1
		var moved []*types.Record
		for idx, rec := range records {
			if split {
				moved = append(moved, rec)
				rec.Cluster = current
			}
			if idx < len(records)-1 && records[idx+1].Year-rec.Year > maxGap {
				split = true
				current = set.append()
			}
		}
		if !split {
			continue
		}
		for _, rec := range records {
			rec.Matching.Add(types.MatchTimeGapSplit)
		}
		for _, rec := range moved {
			set.move(rec, i, rec.Cluster)
		}
	}
}

// TimeGapReport stamps every record with the maximum gap observed between
// chronologically adjacent records of its cluster. Clusters are not split.
func (c *Clusterer) TimeGapReport(set *Set) {
	for i := 0; i < set.Len(); i++ {
		records := set.Cluster(i)
		if !allHaveYears(records) {
			continue
		}
		sortByYear(records)

		maxGap := 0
		for idx := 0; idx < len(records)-1; idx++ {
			if gap := records[idx+1].Year - records[idx].Year; gap > maxGap {
				maxGap = gap
			}
		}
		for _, rec := range records {
			rec.MaxTimeGap = maxGap
			rec.HasMaxTimeGap = true
		}
	}
}

func allHaveYears(records []*types.Record) bool {
	for _, rec := range records {
		if !rec.HasYear {
			return false
		}
	}
	return len(records) > 0
}

func sortByYear(records []*types.Record) {
	sort.SliceStable(records, func(a, b int) bool {
		return records[a].Year < records[b].Year
	})
}

func snapshot(records []*types.Record) []*types.Record {
	out := make([]*types.Record, len(records))
	copy(out, records)
	return out
}
