// Package compare implements the pairwise relation algebra over normalised
// forenames. Given two forename strings and a policy it returns one of the
// relation tags equal, me_subset, it_subset, crossed or different; the
// identical tag is reserved for the matrix diagonal and never produced here.
package compare

import (
	"strings"

	"github.com/SaschaSchweitzer/persons/types"
)

// Policy holds the flags steering the comparison.
type Policy struct {
	// OnlyFirstForename keeps only the first forename component. It is
	// applied upstream, during normalisation, and carried here so callers
	// can hand the full policy around.
	OnlyFirstForename bool
	// MiddleNameRule matches names only if the first component is
	// identical, the component counts agree and every further component
	// shares its first letter (Jones, 2009).
	MiddleNameRule bool
	// MatchSubsets permits me_subset/it_subset results.
	MatchSubsets bool
	// MatchInterlaced permits crossed results to be acted upon.
	MatchInterlaced bool
	// IgnoreOrderOfForenames aligns components order-free.
	IgnoreOrderOfForenames bool
	// AbsolutePositionMatters requires, in ordered mode, that components
	// at the same index share their first letter.
	AbsolutePositionMatters bool
}

// DefaultPolicy returns the default comparison policy.
func DefaultPolicy() Policy {
	return Policy{
		MatchSubsets:            true,
		AbsolutePositionMatters: true,
	}
}

// Comparator compares forename strings under a fixed policy. An optional
// result cache makes repeated pair lookups cheap; comparisons are pure.
type Comparator struct {
	policy Policy
	cache  *ResultCache
}

// NewComparator creates a comparator without a result cache.
func NewComparator(policy Policy) *Comparator {
	return &Comparator{policy: policy}
}

// NewCachedComparator creates a comparator backed by an LRU result cache of
// the given size.
func NewCachedComparator(policy Policy, cacheSize int) (*Comparator, error) {
	cache, err := NewResultCache(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Comparator{policy: policy, cache: cache}, nil
}

// Policy returns the policy the comparator was built with.
func (c *Comparator) Policy() Policy {
	return c.policy
}

// Compare relates the forename me to the forename it, from me's perspective.
// Both arguments must already be normalised.
func (c *Comparator) Compare(me, it string) types.Relation {
	if c.cache != nil {
		if rel, ok := c.cache.Get(me, it); ok {
			return rel
		}
	}
	rel := c.compare(me, it)
	if c.cache != nil {
		c.cache.Set(me, it, rel)
	}
	return rel
}

// partRel classifies how one component relates to its aligned counterpart.
type partRel uint8

const (
	partUnknown partRel = iota
	partEqual
	partMeInitial
	partItInitial
)

func (c *Comparator) compare(me, it string) types.Relation {
	if me == it {
		return types.RelationEqual
	}
	if !c.policy.MiddleNameRule && !c.policy.MatchSubsets && !c.policy.MatchInterlaced {
		return types.RelationDifferent
	}

	m := strings.Split(me, " ")
	i := strings.Split(it, " ")

	// If me and it share neither a full component nor an initial, they
	// are different.
	if len(m) == 1 && len(i) == 1 && initial(m[0]) != initial(i[0]) {
		return types.RelationDifferent
	}
	if disjointComponents(m, i) {
		return types.RelationDifferent
	}

	// Common case: first forename equal and the second missing or an
	// initial.
	if len(m) < 3 && len(i) < 3 && m[0] == i[0] && !c.policy.MiddleNameRule {
		switch {
		case len(m) == 1:
			return types.RelationMeSubset
		case len(i) == 1:
			return types.RelationItSubset
		case isInitial(m[1]) && m[1] == initial(i[1]):
			return types.RelationMeSubset
		case isInitial(i[1]) && i[1] == initial(m[1]):
			return types.RelationItSubset
		}
	}

	if c.policy.MiddleNameRule {
		return compareMiddleNameRule(m, i)
	}
	if c.policy.IgnoreOrderOfForenames {
		return compareUnordered(m, i)
	}
	return c.compareOrdered(m, i)
}

// compareMiddleNameRule matches only names with an identical first
// component, the same number of components, and agreeing middle initials.
func compareMiddleNameRule(m, i []string) types.Relation {
	if len(m) < 2 || len(i) < 2 || len(m) != len(i) {
		return types.RelationDifferent
	}
	if m[0] != i[0] {
		return types.RelationDifferent
	}
	for k := 1; k < len(m); k++ {
		if initial(m[k]) != initial(i[k]) {
			return types.RelationDifferent
		}
	}
	return types.RelationEqual
}

// compareUnordered aligns components order-free, consuming each counterpart
// component at most once, and classifies from both perspectives.
func compareUnordered(m, i []string) types.Relation {
	meParts := alignUnordered(m, i, partMeInitial, partItInitial)
	itParts := alignUnordered(i, m, partItInitial, partMeInitial)

	all := make(map[partRel]struct{}, 4)
	for _, p := range meParts {
		all[p] = struct{}{}
	}
	for _, p := range itParts {
		all[p] = struct{}{}
	}
	meUnknown := containsPart(meParts, partUnknown)
	itUnknown := containsPart(itParts, partUnknown)
	_, hasMeInitial := all[partMeInitial]
	_, hasItInitial := all[partItInitial]
	_, hasUnknown := all[partUnknown]

	switch {
	case len(m) > len(i):
		// it is shorter: it should be a subset, unless some of its
		// components are not in me (different) or me contributes
		// initials as well (crossed).
		if itUnknown {
			return types.RelationDifferent
		}
		if hasMeInitial {
			return types.RelationCrossed
		}
		return types.RelationItSubset
	case len(m) < len(i):
		if meUnknown {
			return types.RelationDifferent
		}
		if hasItInitial {
			return types.RelationCrossed
		}
		return types.RelationMeSubset
	default:
		if !hasMeInitial && !hasItInitial && !hasUnknown {
			return types.RelationEqual
		}
		if hasUnknown {
			return types.RelationDifferent
		}
		if hasMeInitial && hasItInitial {
			return types.RelationCrossed
		}
		if hasMeInitial {
			return types.RelationMeSubset
		}
		return types.RelationItSubset
	}
}

// alignUnordered classifies every component of a against the components of
// b, consuming each b component at most once. aInitial is the label used
// when a's component is the initial of b's, bInitial the mirror.
func alignUnordered(a, b []string, aInitial, bInitial partRel) []partRel {
	parts := make([]partRel, len(a))
	remaining := make([]string, len(b))
	copy(remaining, b)

	for idx, first := range a {
		parts[idx] = partUnknown
		for j, second := range remaining {
			var rel partRel
			switch {
			case first == second:
				rel = partEqual
			case first == initial(second):
				rel = aInitial
			case initial(first) == second:
				rel = bInitial
			default:
				continue
			}
			parts[idx] = rel
			remaining = append(remaining[:j], remaining[j+1:]...)
			break
		}
	}
	return parts
}

// compareOrdered aligns components left to right with a moving cursor, so
// the order of forenames is respected.
func (c *Comparator) compareOrdered(m, i []string) types.Relation {
	if c.policy.AbsolutePositionMatters {
		limit := len(m)
		if len(i) < limit {
			limit = len(i)
		}
		for k := 0; k < limit; k++ {
			if initial(m[k]) != initial(i[k]) {
				return types.RelationDifferent
			}
		}
	}

	cursor := 0
	parts := make([]partRel, len(m))
	for idx, first := range m {
		parts[idx] = partUnknown
		if cursor >= len(i) {
			continue
		}
		for j := cursor; j < len(i); j++ {
			second := i[j]
			var rel partRel
			switch {
			case first == second:
				rel = partEqual
			case first == initial(second):
				rel = partMeInitial
			case initial(first) == second:
				rel = partItInitial
			default:
				continue
			}
			parts[idx] = rel
			cursor = j + 1
			break
		}
	}

	hasUnknown := containsPart(parts, partUnknown)
	hasMeInitial := containsPart(parts, partMeInitial)
	hasItInitial := containsPart(parts, partItInitial)

	switch {
	case len(m) > len(i):
		matched := 0
		for _, p := range parts {
			if p != partUnknown {
				matched++
			}
		}
		if matched < len(i) {
			return types.RelationDifferent
		}
		if hasMeInitial {
			return types.RelationCrossed
		}
		return types.RelationItSubset
	case len(m) < len(i):
		if hasUnknown {
			return types.RelationDifferent
		}
		if hasItInitial {
			return types.RelationCrossed
		}
		return types.RelationMeSubset
	default:
		if hasUnknown {
			return types.RelationDifferent
		}
		if hasMeInitial && hasItInitial {
			return types.RelationCrossed
		}
		if hasMeInitial {
			return types.RelationMeSubset
		}
		if hasItInitial {
			return types.RelationItSubset
		}
		return types.RelationEqual
	}
}

func containsPart(parts []partRel, want partRel) bool {
	for _, p := range parts {
		if p == want {
			return true
		}
	}
	return false
}

// initial returns the first rune of a component as a string.
func initial(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// isInitial reports whether a component is a single letter.
func isInitial(s string) bool {
	return s != "" && s == initial(s)
}

// disjointComponents reports whether the two component lists, each extended
// by its initials, share no element.
func disjointComponents(m, i []string) bool {
	seen := make(map[string]struct{}, 2*len(m))
	for _, c := range m {
		seen[c] = struct{}{}
		seen[initial(c)] = struct{}{}
	}
	for _, c := range i {
		if _, ok := seen[c]; ok {
			return false
		}
		if _, ok := seen[initial(c)]; ok {
			return false
		}
	}
	return true
}
