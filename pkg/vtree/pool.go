package vtree

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vango-dev/vtree/pkg/view"
)

// Pool keeps recently unmounted views so a later fresh build with the same
// composite key can take one instead of calling create. The least recently
// released views are evicted first. A nil *Pool is valid and never holds
// anything.
//
// Views are indexed by composite key next to the LRU, so Take costs time
// proportional to the views pooled under one key, not to the pool size.
type Pool struct {
	cache *lru.Cache[view.View, string]
	byKey map[string][]view.View
}

// NewPool creates a pool holding at most size views. It returns nil when
// size is not positive.
func NewPool(size int) *Pool {
	if size <= 0 {
		return nil
	}
	p := &Pool{byKey: make(map[string][]view.View)}
	cache, err := lru.NewWithEvict[view.View, string](size, p.forget)
	if err != nil {
		return nil
	}
	p.cache = cache
	return p
}

// forget drops v from the key index. The cache calls it on eviction,
// removal and purge.
func (p *Pool) forget(v view.View, compositeKey string) {
	bucket := p.byKey[compositeKey]
	for i, pooled := range bucket {
		if pooled == v {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(p.byKey, compositeKey)
		return
	}
	p.byKey[compositeKey] = bucket
}

// Put stores a detached view under its composite key.
func (p *Pool) Put(compositeKey string, v view.View) {
	if p == nil || v == nil {
		return
	}
	p.cache.Remove(v)
	p.byKey[compositeKey] = append(p.byKey[compositeKey], v)
	p.cache.Add(v, compositeKey)
}

// Take removes and returns the most recently released view for
// compositeKey that accepts allows, or nil. A nil accepts allows any view.
// Rejected views stay pooled.
func (p *Pool) Take(compositeKey string, accepts func(view.View) bool) view.View {
	if p == nil {
		return nil
	}
	bucket := p.byKey[compositeKey]
	for i := len(bucket) - 1; i >= 0; i-- {
		v := bucket[i]
		if accepts != nil && !accepts(v) {
			continue
		}
		p.cache.Remove(v)
		return v
	}
	return nil
}

// Len returns the number of pooled views.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return p.cache.Len()
}

// Purge drops every pooled view.
func (p *Pool) Purge() {
	if p == nil {
		return
	}
	p.cache.Purge()
}
