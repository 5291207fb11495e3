package graph

import (
	"fmt"
	"testing"

	"github.com/SaschaSchweitzer/persons/types"
)

// buildMatrix builds a symmetric relation matrix from it_subset edges.
// An edge x -> y states that y is a subset of x.
func buildMatrix(n int, edges [][2]int) [][]types.Relation {
	m := make([][]types.Relation, n)
	for i := range m {
		m[i] = make([]types.Relation, n)
		for j := range m[i] {
			if i == j {
				m[i][j] = types.RelationIdentical
			} else {
				m[i][j] = types.RelationDifferent
			}
		}
	}
	for _, e := range edges {
		m[e[0]][e[1]] = types.RelationItSubset
		m[e[1]][e[0]] = types.RelationMeSubset
	}
	return m
}

func allNodes(n int) []int {
	nodes := make([]int, n)
	for i := range nodes {
		nodes[i] = i
	}
	return nodes
}

func strandSet(strands [][]int) map[string]struct{} {
	set := make(map[string]struct{}, len(strands))
	for _, s := range strands {
		set[fmt.Sprint(s)] = struct{}{}
	}
	return set
}

func TestTransitiveReduction(t *testing.T) {
	// Chain 2 -> 1 -> 0 with the shortcut 2 -> 0.
	m := buildMatrix(3, [][2]int{{1, 0}, {2, 1}, {2, 0}})
	g := New(m, allNodes(3))
	g.TransitiveReduction()

	if g.matrix[2][0] != types.RelationNone || g.matrix[0][2] != types.RelationNone {
		t.Error("shortcut edge 2 -> 0 should be removed")
	}
	if g.matrix[2][1] != types.RelationItSubset || g.matrix[1][0] != types.RelationItSubset {
		t.Error("chain edges must survive the reduction")
	}
	// The bucket's own matrix must stay intact.
	if m[2][0] != types.RelationItSubset {
		t.Error("reduction must not mutate the input matrix")
	}
}

func TestTopNodes(t *testing.T) {
	m := buildMatrix(3, [][2]int{{1, 0}, {2, 1}, {2, 0}})
	g := New(m, allNodes(3))
	g.TransitiveReduction()

	tops := g.TopNodes()
	if len(tops) != 1 || tops[0] != 2 {
		t.Errorf("expected top nodes [2], got %v", tops)
	}
}

func TestSingleStrandsChain(t *testing.T) {
	m := buildMatrix(3, [][2]int{{1, 0}, {2, 1}, {2, 0}})
	g := New(m, allNodes(3))
	g.TransitiveReduction()

	strands := g.SingleStrands()
	if len(strands) != 1 {
		t.Fatalf("expected one strand, got %v", strands)
	}
	if fmt.Sprint(strands[0]) != "[2 1 0]" {
		t.Errorf("expected strand [2 1 0], got %v", strands[0])
	}
}

func TestSingleStrandsFork(t *testing.T) {
	// 0 has two subsets 1 and 2: a fork. The forking node forms its own
	// strand and each branch continues separately.
	m := buildMatrix(3, [][2]int{{0, 1}, {0, 2}})
	g := New(m, allNodes(3))
	g.TransitiveReduction()

	strands := g.SingleStrands()
	set := strandSet(strands)
	for _, want := range []string{"[0]", "[1]", "[2]"} {
		if _, ok := set[want]; !ok {
			t.Errorf("missing strand %s in %v", want, strands)
		}
	}
	if len(strands) != 3 {
		t.Errorf("expected 3 strands, got %v", strands)
	}
}

func TestSingleStrandsSharedSubset(t *testing.T) {
	// Nodes 0 and 1 both contain node 2: node 2 has two predecessors and
	// is emitted once, as its own strand.
	m := buildMatrix(3, [][2]int{{0, 2}, {1, 2}})
	g := New(m, allNodes(3))
	g.TransitiveReduction()

	strands := g.SingleStrands()
	set := strandSet(strands)
	for _, want := range []string{"[0]", "[1]", "[2]"} {
		if _, ok := set[want]; !ok {
			t.Errorf("missing strand %s in %v", want, strands)
		}
	}
	if len(strands) != 3 {
		t.Errorf("expected deduplicated strands, got %v", strands)
	}
}

func TestSingleStrandsSingleton(t *testing.T) {
	m := buildMatrix(1, nil)
	g := New(m, []int{0})
	strands := g.SingleStrands()
	if len(strands) != 1 || len(strands[0]) != 1 || strands[0][0] != 0 {
		t.Errorf("expected [[0]], got %v", strands)
	}
}
