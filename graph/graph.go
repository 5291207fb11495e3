// Package graph provides the simplification steps applied to a consistent
// set of nodes in a surname bucket: transitive reduction of the subset DAG
// and extraction of its single-stranded chains.
package graph

import (
	"fmt"

	"github.com/SaschaSchweitzer/persons/types"
)

// Graph is a view over a bucket's relation matrix restricted to a set of
// node indices. The main direction of its edges is it_subset: an edge
// x -> y means y's forename is a subset of x's.
type Graph struct {
	nodes  []int
	matrix [][]types.Relation
}

// New creates a graph over the given node indices. The matrix rows are
// copied, so reduction does not touch the bucket's own matrix.
func New(matrix [][]types.Relation, nodes []int) *Graph {
	copied := make([][]types.Relation, len(matrix))
	for i, row := range matrix {
		copied[i] = make([]types.Relation, len(row))
		copy(copied[i], row)
	}
	return &Graph{nodes: nodes, matrix: copied}
}

// TransitiveReduction removes the shortcut edges of the subset DAG: for
// every chain x -> y -> z the direct edge x -> z is dropped.
func (g *Graph) TransitiveReduction() {
	var remove [][2]int
	for _, x := range g.nodes {
		for _, y := range g.nodes {
			if g.matrix[x][y] != types.RelationItSubset {
				continue
			}
			for _, z := range g.nodes {
				if y == z || x == y {
					continue
				}
				if g.matrix[y][z] == types.RelationItSubset {
					remove = append(remove, [2]int{x, z})
				}
			}
		}
	}
	for _, edge := range remove {
		g.matrix[edge[0]][edge[1]] = types.RelationNone
		g.matrix[edge[1]][edge[0]] = types.RelationNone
	}
}

// TopNodes returns the sources of the DAG: nodes with no remaining
// me_subset relation, i.e. no superset above them.
func (g *Graph) TopNodes() []int {
	var tops []int
	for _, node := range g.nodes {
		if g.countRow(node, types.RelationMeSubset) == 0 {
			tops = append(tops, node)
		}
	}
	return tops
}

// SingleStrands decomposes the reduced DAG into maximal chains. A node with
// more than one predecessor or successor becomes a singleton strand and
// each outgoing fork seeds a new strand. Strands are deduplicated by
// content, preserving first-seen order.
func (g *Graph) SingleStrands() [][]int {
	var completed [][]int
	for _, top := range g.TopNodes() {
		g.strands(&completed, nil, top)
	}

	seen := make(map[string]struct{}, len(completed))
	unique := completed[:0]
	for _, strand := range completed {
		key := strandKey(strand)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, strand)
	}
	return unique
}

func (g *Graph) strands(completed *[][]int, current []int, node int) {
	predecessors := g.countRow(node, types.RelationMeSubset)
	successors := g.countRow(node, types.RelationItSubset)

	switch {
	case predecessors > 1 || successors > 1:
		// Forking node: close the running strand, emit the fork on its
		// own and restart below each outgoing edge.
		if len(current) > 0 {
			*completed = append(*completed, current)
		}
		*completed = append(*completed, []int{node})
		for next, rel := range g.matrix[node] {
			if rel == types.RelationItSubset {
				g.strands(completed, nil, next)
			}
		}
	case successors == 1:
		next := g.indexRow(node, types.RelationItSubset)
		g.strands(completed, appendNode(current, node), next)
	default:
		*completed = append(*completed, appendNode(current, node))
	}
}

func (g *Graph) countRow(node int, rel types.Relation) int {
	count := 0
	for _, cell := range g.matrix[node] {
		if cell == rel {
			count++
		}
	}
	return count
}

func (g *Graph) indexRow(node int, rel types.Relation) int {
	for i, cell := range g.matrix[node] {
		if cell == rel {
			return i
		}
	}
	return -1
}

// appendNode appends to a fresh backing array so sibling strands never
// share storage.
func appendNode(strand []int, node int) []int {
	out := make([]int, len(strand)+1)
	copy(out, strand)
	out[len(strand)] = node
	return out
}

func strandKey(strand []int) string {
	return fmt.Sprint(strand)
}
