package pcache

import (
	"time"

	"github.com/dgraph-io/ristretto"
)

// PCache is a process level cache with cost based admission and eviction.
type PCache struct {
	Cache *ristretto.Cache
}

// NewPCache creates a new instance of PCache
// https://pkg.go.dev/github.com/dgraph-io/ristretto#Config
func NewPCache(maxCost int64, averageItemCost int64) (PCache, error) {
	if averageItemCost <= 0 {
		averageItemCost = 1
	}
	expectedMaxItems := maxCost / averageItemCost
	if expectedMaxItems < 1 {
		expectedMaxItems = 1
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * expectedMaxItems,
		MaxCost:     maxCost,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return PCache{}, err
	}
	return PCache{
		Cache: cache,
	}, nil
}

// Set may drop the item; callers must not rely on a later Get finding it.
func (pc *PCache) Set(key, value interface{}, cost int64) bool {
	return pc.Cache.Set(key, value, cost)
}

func (pc *PCache) SetWithTTL(key, value interface{}, cost int64, ttl time.Duration) bool {
	return pc.Cache.SetWithTTL(key, value, cost, ttl)
}

func (pc *PCache) Get(key interface{}) (interface{}, bool) {
	return pc.Cache.Get(key)
}

func (pc *PCache) Del(key interface{}) {
	pc.Cache.Del(key)
}

func (pc *PCache) Clear() {
	pc.Cache.Clear()
}

func (pc *PCache) Close() {
	pc.Cache.Close()
}
