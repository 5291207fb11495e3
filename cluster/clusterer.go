// Package cluster walks the surname buckets of a forest, groups
// interrelated nodes into person clusters and post-processes the result:
// known-persons separation, optional time-gap handling and dense
// renumbering.
package cluster

import (
	"context"
	"sort"

	"github.com/SaschaSchweitzer/persons/compare"
	"github.com/SaschaSchweitzer/persons/graph"
	"github.com/SaschaSchweitzer/persons/tree"
	"github.com/SaschaSchweitzer/persons/types"
)

// DefaultMaxGraphSize caps the size of a node set handed to the
// transitive-reduction stage. Larger sets degrade to singleton clusters.
const DefaultMaxGraphSize = 50

// Clusterer assigns cluster numbers to the records of a forest.
type Clusterer struct {
	cmp          *compare.Comparator
	maxGraphSize int

	// Progress, when set, is called after each completed surname bucket.
	Progress func(done, total int)
}

// New creates a clusterer. maxGraphSize values below one fall back to the
// default.
func New(cmp *compare.Comparator, maxGraphSize int) *Clusterer {
	if maxGraphSize < 1 {
		maxGraphSize = DefaultMaxGraphSize
	}
	return &Clusterer{cmp: cmp, maxGraphSize: maxGraphSize}
}

// relation tag sets used when collecting interrelated nodes.
var (
	relsAll = map[types.Relation]struct{}{
		types.RelationIdentical: {},
		types.RelationMeSubset:  {},
		types.RelationItSubset:  {},
		types.RelationCrossed:   {},
	}
	relsSubset = map[types.Relation]struct{}{
		types.RelationIdentical: {},
		types.RelationMeSubset:  {},
		types.RelationItSubset:  {},
	}
)

// Cluster processes every bucket of the forest in insertion order and
// returns the emitted cluster set. Cancellation is honoured between
// buckets.
func (c *Clusterer) Cluster(ctx context.Context, forest *tree.Forest) (*Set, error) {
	set := NewSet()
	surnames := forest.Surnames()
	for done, surname := range surnames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.clusterBucket(set, forest.Bucket(surname))
		if c.Progress != nil {
			c.Progress(done+1, len(surnames))
		}
	}
	return set, nil
}

// clusterBucket runs the outer matching loop over one bucket.
func (c *Clusterer) clusterBucket(set *Set, bucket *tree.Bucket) {
	policy := c.cmp.Policy()

	toProcess := make([]int, bucket.Nodes())
	for i := range toProcess {
		toProcess[i] = i
	}

	for len(toProcess) > 0 {
		consistent := true
		codes := types.NewMatchCodeSet(types.MatchEqual)
		var level2 []int

		// Match all related items when both crossed and subset
		// relations may bind nodes together.
		if policy.MatchInterlaced && policy.MatchSubsets {
			interrelated := findInterrelated(bucket.Matrix, &toProcess, relsAll, codes)

			if item, ok := c.findConflictedPureSubset(bucket.Matrix, interrelated, codes); ok {
				c.extractPureSubset(set, bucket, interrelated, item, &toProcess)
				continue
			}

			for _, first := range interrelated {
				for _, second := range interrelated {
					if bucket.Matrix[first][second] == types.RelationDifferent {
						consistent = false
					}
				}
			}

			if consistent {
				set.emit(nodeRecords(bucket, interrelated), codes)
			} else {
				// The inconsistent set is re-processed by the
				// subset-only matching below.
				level2 = append([]int(nil), interrelated...)
			}
		}

		// Match subsets only, either because interlaced matching is off
		// or because the interlaced set was inconsistent.
		if policy.MatchSubsets && (!policy.MatchInterlaced || !consistent) {
			work := &level2
			if !policy.MatchInterlaced {
				work = &toProcess
			}
			c.matchSubsets(set, bucket, work)
		}

		// Without subset matching, interlaced or not, every node is its
		// own person.
		if !policy.MatchSubsets {
			for _, node := range toProcess {
				set.emit(nodeRecords(bucket, []int{node}), codes)
			}
			break
		}
	}
}

// matchSubsets repeatedly collects interrelated sets under the subset tags,
// extracts conflicted pure subsets and decomposes the remainder into single
// strands.
func (c *Clusterer) matchSubsets(set *Set, bucket *tree.Bucket, work *[]int) {
	for len(*work) > 0 {
		interrelated := findInterrelated(bucket.Matrix, work, relsSubset, nil)

		if item, ok := c.findConflictedPureSubset(bucket.Matrix, interrelated, nil); ok {
			c.extractPureSubset(set, bucket, interrelated, item, work)
			continue
		}

		var strands [][]int
		switch {
		case len(interrelated) > 1 && len(interrelated) <= c.maxGraphSize:
			g := graph.New(bucket.Matrix, interrelated)
			g.TransitiveReduction()
			strands = g.SingleStrands()
		case len(interrelated) > c.maxGraphSize:
			// Oversized components degrade to singleton clusters.
			strands = make([][]int, 0, len(interrelated))
			for _, node := range interrelated {
				strands = append(strands, []int{node})
			}
		default:
			strands = [][]int{interrelated}
		}

		for _, strand := range strands {
			codes := types.NewMatchCodeSet(types.MatchEqual)
			if len(strand) > 1 {
				codes = types.NewMatchCodeSet(types.MatchVertical)
			}
			set.emit(nodeRecords(bucket, strand), codes)
		}
	}
}

// findInterrelated collects the connected component of the first work-list
// node over the given relation tags, removing every collected node from the
// work list. Matching codes for the traversed edge kinds are added to
// codes when it is non-nil.
func findInterrelated(matrix [][]types.Relation, work *[]int, relevant map[types.Relation]struct{}, codes types.MatchCodeSet) []int {
	first := (*work)[0]
	*work = (*work)[1:]

	interrelated := []int{first}
	member := map[int]struct{}{first: {}}
	frontier := []int{first}

	for len(frontier) > 0 {
		var next []int
		for _, node := range frontier {
			for _, other := range *work {
				if _, ok := member[other]; ok {
					continue
				}
				rel := matrix[node][other]
				if _, ok := relevant[rel]; !ok {
					continue
				}
				member[other] = struct{}{}
				next = append(next, other)
				if codes != nil {
					switch rel {
					case types.RelationCrossed:
						codes.Add(types.MatchInterlaced)
					case types.RelationMeSubset, types.RelationItSubset:
						codes.Add(types.MatchVertical)
					}
				}
			}
		}
		*work = removeAll(*work, next)
		interrelated = append(interrelated, next...)
		frontier = next
	}
	return interrelated
}

// removeAll removes the newly collected nodes from the work list,
// preserving order.
func removeAll(work []int, collected []int) []int {
	if len(collected) == 0 {
		return work
	}
	dropped := make(map[int]struct{}, len(collected))
	for _, n := range collected {
		dropped[n] = struct{}{}
	}
	kept := work[:0]
	for _, n := range work {
		if _, ok := dropped[n]; ok {
			continue
		}
		kept = append(kept, n)
	}
	return kept
}

// findConflictedPureSubset looks for a node whose relations within the
// interrelated set are exclusively me_subset (a pure subset) and whose
// supersets disagree with each other. Crossed relations observed between
// supersets are reported through codes.
func (c *Clusterer) findConflictedPureSubset(matrix [][]types.Relation, interrelated []int, codes types.MatchCodeSet) (int, bool) {
	for _, item := range interrelated {
		if !isPureSubset(matrix, interrelated, item) {
			continue
		}
		for _, first := range interrelated {
			if matrix[item][first] != types.RelationMeSubset {
				continue
			}
			for _, second := range interrelated {
				if matrix[item][second] != types.RelationMeSubset {
					continue
				}
				switch matrix[first][second] {
				case types.RelationDifferent:
					return item, true
				case types.RelationCrossed:
					// The BFS may not have visited this pair.
					if codes != nil {
						codes.Add(types.MatchInterlaced)
					}
				}
			}
		}
	}
	return 0, false
}

// isPureSubset reports whether the node relates to the interrelated set
// through me_subset only.
func isPureSubset(matrix [][]types.Relation, interrelated []int, item int) bool {
	hasSubset := false
	for _, other := range interrelated {
		switch matrix[item][other] {
		case types.RelationItSubset, types.RelationCrossed:
			return false
		case types.RelationMeSubset:
			hasSubset = true
		}
	}
	return hasSubset
}

// extractPureSubset emits the conflicted pure subset as its own cluster,
// cuts it loose in the matrix and puts the remaining interrelated nodes
// back on the work list.
func (c *Clusterer) extractPureSubset(set *Set, bucket *tree.Bucket, interrelated []int, item int, work *[]int) {
	set.emit(nodeRecords(bucket, []int{item}), types.NewMatchCodeSet(types.MatchEqual))

	for other := range bucket.Matrix[item] {
		if other == item {
			continue
		}
		bucket.Matrix[item][other] = types.RelationDifferent
		bucket.Matrix[other][item] = types.RelationDifferent
	}

	for _, node := range interrelated {
		if node != item {
			*work = append(*work, node)
		}
	}
}

// nodeRecords flattens a list of node indices to their records in bucket
// (input) order, whatever the order of the nodes.
func nodeRecords(bucket *tree.Bucket, nodes []int) []*types.Record {
	var indices []int
	for _, node := range nodes {
		indices = append(indices, bucket.RecordsByNode[node]...)
	}
	sort.Ints(indices)
	out := make([]*types.Record, 0, len(indices))
	for _, idx := range indices {
		out = append(out, bucket.Records[idx])
	}
	return out
}
