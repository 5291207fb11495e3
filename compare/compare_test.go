package compare

import (
	"testing"

	"github.com/SaschaSchweitzer/persons/types"
)

func TestCompareDefaults(t *testing.T) {
	c := NewComparator(DefaultPolicy())

	tests := []struct {
		name     string
		me       string
		it       string
		expected types.Relation
	}{
		{"identical strings", "tim", "tim", types.RelationEqual},
		{"single initial mismatch", "tim", "bob", types.RelationDifferent},
		{"missing second forename", "tim", "tim w", types.RelationMeSubset},
		{"extra second forename", "tim w", "tim", types.RelationItSubset},
		{"initial against full middle", "albert l", "albert lawrence", types.RelationMeSubset},
		{"full middle against initial", "albert lawrence", "albert l", types.RelationItSubset},
		{"conflicting middles", "albert lawrence", "albert lucky", types.RelationDifferent},
		{"absolute position conflict", "david", "j david", types.RelationDifferent},
		{"no shared component", "albert lawrence", "bruno karl", types.RelationDifferent},
		{"subset via alignment", "reinhard", "reinhard hans sel", types.RelationMeSubset},
		{"crossed initials", "reinhard h", "r hans", types.RelationCrossed},
		{"initial expands to full name", "r", "reinhard", types.RelationMeSubset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Compare(tt.me, tt.it); got != tt.expected {
				t.Errorf("Compare(%q, %q) = %s, expected %s", tt.me, tt.it, got, tt.expected)
			}
		})
	}
}

func TestCompareWithoutSubsetFlags(t *testing.T) {
	c := NewComparator(Policy{AbsolutePositionMatters: true})

	// With subsets, interlaced and the middle-name rule all disabled,
	// anything but string equality is different.
	if got := c.Compare("tim", "tim w"); got != types.RelationDifferent {
		t.Errorf("expected different, got %s", got)
	}
	if got := c.Compare("tim", "tim"); got != types.RelationEqual {
		t.Errorf("expected equal, got %s", got)
	}
}

func TestCompareMiddleNameRule(t *testing.T) {
	c := NewComparator(Policy{MiddleNameRule: true, AbsolutePositionMatters: true})

	tests := []struct {
		name     string
		me       string
		it       string
		expected types.Relation
	}{
		{"agreeing middle initials", "john r smith", "john robert s", types.RelationEqual},
		{"conflicting middle initials", "john r w", "john r b", types.RelationDifferent},
		{"different component counts", "john r", "john", types.RelationDifferent},
		{"different first names", "john r", "jack r", types.RelationDifferent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Compare(tt.me, tt.it); got != tt.expected {
				t.Errorf("Compare(%q, %q) = %s, expected %s", tt.me, tt.it, got, tt.expected)
			}
		})
	}
}

func TestCompareIgnoreOrder(t *testing.T) {
	policy := DefaultPolicy()
	policy.IgnoreOrderOfForenames = true
	policy.AbsolutePositionMatters = false
	c := NewComparator(policy)

	tests := []struct {
		name     string
		me       string
		it       string
		expected types.Relation
	}{
		{"swapped components", "paul john", "john paul", types.RelationEqual},
		{"swapped with initial", "p john", "john paul", types.RelationMeSubset},
		{"subset out of order", "john", "paul john", types.RelationMeSubset},
		{"unmatched component", "john w", "paul john", types.RelationDifferent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Compare(tt.me, tt.it); got != tt.expected {
				t.Errorf("Compare(%q, %q) = %s, expected %s", tt.me, tt.it, got, tt.expected)
			}
		})
	}
}

func TestCompareOrderedWithoutAbsolutePosition(t *testing.T) {
	policy := DefaultPolicy()
	policy.AbsolutePositionMatters = false
	c := NewComparator(policy)

	// Without the position check the initial no longer has to sit at the
	// same index.
	if got := c.Compare("david", "j david"); got != types.RelationMeSubset {
		t.Errorf("expected me_subset, got %s", got)
	}
}

// Compare must satisfy the flip symmetry that the matrix invariant relies
// on: compare(a, b) == flip(compare(b, a)).
func TestCompareFlipSymmetry(t *testing.T) {
	names := []string{
		"tim", "tim w", "tim walter", "albert", "albert l",
		"albert lawrence", "albert lucky", "reinhard", "reinhard h",
		"r hans", "j david", "david", "john paul", "paul john",
	}

	policies := map[string]Policy{
		"defaults":     DefaultPolicy(),
		"interlaced":   {MatchSubsets: true, MatchInterlaced: true, AbsolutePositionMatters: true},
		"order free":   {MatchSubsets: true, IgnoreOrderOfForenames: true},
		"middle names": {MiddleNameRule: true, AbsolutePositionMatters: true},
	}

	for name, policy := range policies {
		t.Run(name, func(t *testing.T) {
			c := NewComparator(policy)
			for _, a := range names {
				for _, b := range names {
					ab := c.Compare(a, b)
					ba := c.Compare(b, a)
					if ab != ba.Flip() {
						t.Errorf("Compare(%q,%q)=%s but Compare(%q,%q)=%s", a, b, ab, b, a, ba)
					}
				}
			}
		})
	}
}

func TestCachedComparator(t *testing.T) {
	c, err := NewCachedComparator(DefaultPolicy(), 16)
	if err != nil {
		t.Fatalf("NewCachedComparator: %v", err)
	}

	if got := c.Compare("tim", "tim w"); got != types.RelationMeSubset {
		t.Fatalf("expected me_subset, got %s", got)
	}
	// The mirrored pair is answered from the cache with the flipped tag.
	if got := c.Compare("tim w", "tim"); got != types.RelationItSubset {
		t.Fatalf("expected it_subset, got %s", got)
	}
	if c.cache.Len() == 0 {
		t.Error("expected cached entries")
	}
}

func TestResultCacheInvalidSize(t *testing.T) {
	if _, err := NewResultCache(0); err == nil {
		t.Error("expected error for zero cache size")
	}
}
