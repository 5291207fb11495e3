package compare

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/SaschaSchweitzer/persons/types"
)

// DefaultCacheSize is the default capacity of the pair-result cache.
const DefaultCacheSize = 4096

// ResultCache provides LRU caching for comparison results. Comparisons are
// pure, so a (me, it) pair always maps to the same relation under a fixed
// policy.
type ResultCache struct {
	cache *lru.Cache[pairKey, types.Relation]
	mu    sync.RWMutex
}

type pairKey struct {
	me string
	it string
}

// NewResultCache creates a result cache with the given capacity.
func NewResultCache(size int) (*ResultCache, error) {
	cache, err := lru.New[pairKey, types.Relation](size)
	if err != nil {
		return nil, err
	}
	return &ResultCache{cache: cache}, nil
}

// Get retrieves a cached relation for the pair.
func (rc *ResultCache) Get(me, it string) (types.Relation, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.cache.Get(pairKey{me: me, it: it})
}

// Set stores the relation for the pair and its flipped mirror.
func (rc *ResultCache) Set(me, it string, rel types.Relation) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.cache.Add(pairKey{me: me, it: it}, rel)
	rc.cache.Add(pairKey{me: it, it: me}, rel.Flip())
}

// Len returns the number of cached pairs.
func (rc *ResultCache) Len() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.cache.Len()
}

// Purge clears the cache.
func (rc *ResultCache) Purge() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.cache.Purge()
}
