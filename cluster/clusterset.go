package cluster

import (
	"github.com/SaschaSchweitzer/persons/types"
)

// Set collects the clusters as they are emitted. The slice index is the
// cluster number; numbers grow monotonically until Compact renumbers them
// densely.
type Set struct {
	clusters [][]*types.Record
}

// NewSet creates an empty cluster set.
func NewSet() *Set {
	return &Set{}
}

// Len returns the number of clusters, including empty ones before Compact.
func (s *Set) Len() int {
	return len(s.clusters)
}

// Cluster returns the records of cluster i.
func (s *Set) Cluster(i int) []*types.Record {
	return s.clusters[i]
}

// Records returns all records in cluster order, each cluster in record
// insertion order.
func (s *Set) Records() []*types.Record {
	var out []*types.Record
	for _, cl := range s.clusters {
		out = append(out, cl...)
	}
	return out
}

// next returns the cluster number the following emit call will use.
func (s *Set) next() int {
	return len(s.clusters)
}

// emit assigns a fresh cluster number to the given records. Every record
// gets its own copy of the matching-code set.
func (s *Set) emit(records []*types.Record, codes types.MatchCodeSet) int {
	number := len(s.clusters)
	for _, rec := range records {
		rec.Cluster = number
		rec.Matching = codes.Clone()
	}
	s.clusters = append(s.clusters, records)
	return number
}

// append adds an empty cluster and returns its number.
func (s *Set) append() int {
	s.clusters = append(s.clusters, nil)
	return len(s.clusters) - 1
}

// move transfers a record from cluster from to cluster to.
func (s *Set) move(rec *types.Record, from, to int) {
	src := s.clusters[from]
	for i, r := range src {
		if r == rec {
			s.clusters[from] = append(src[:i], src[i+1:]...)
			break
		}
	}
	s.clusters[to] = append(s.clusters[to], rec)
	rec.Cluster = to
}

// Compact drops empty clusters and renumbers the remaining ones densely
// from zero, writing the new number back into every record.
func (s *Set) Compact() {
	compacted := s.clusters[:0]
	for _, cl := range s.clusters {
		if len(cl) == 0 {
			continue
		}
		number := len(compacted)
		for _, rec := range cl {
			rec.Cluster = number
		}
		compacted = append(compacted, cl)
	}
	s.clusters = compacted
}
