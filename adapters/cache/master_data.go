// Package cache decorates the planning store with in-memory LRU caches for master
// data lookups that pipelines repeat within and across requests.
package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"gosupply/domain/core"
	"gosupply/domain/planning"
	"gosupply/ports"
)

// DefaultSize is the per-lookup cache capacity
const DefaultSize = 1024

type laneKey struct {
	origin, dest core.LocationID
}

// Store caches Product, ComponentStandardCost, Lane and HubLocation. Absent records
// are cached as nil. Every other read passes through.
type Store struct {
	ports.PlanningStore

	products *lru.Cache[core.ProductID, *planning.Product]
	costs    *lru.Cache[core.ComponentID, *float64]
	lanes    *lru.Cache[laneKey, *planning.Lane]
	hubs     *lru.Cache[core.LocationID, *planning.HubLocation]
}

// New wraps next; size <= 0 uses DefaultSize.
func New(next ports.PlanningStore, size int) (*Store, error) {
	if size <= 0 {
		size = DefaultSize
	}
	s := &Store{PlanningStore: next}

	var err error
	if s.products, err = lru.New[core.ProductID, *planning.Product](size); err != nil {
		return nil, err
	}
	if s.costs, err = lru.New[core.ComponentID, *float64](size); err != nil {
		return nil, err
	}
	if s.lanes, err = lru.New[laneKey, *planning.Lane](size); err != nil {
		return nil, err
	}
	if s.hubs, err = lru.New[core.LocationID, *planning.HubLocation](size); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Product(ctx context.Context, id core.ProductID) (*planning.Product, error) {
	return through(s.products, id, func() (*planning.Product, error) {
		return s.PlanningStore.Product(ctx, id)
	})
}

func (s *Store) ComponentStandardCost(ctx context.Context, id core.ComponentID) (*float64, error) {
	return through(s.costs, id, func() (*float64, error) {
		return s.PlanningStore.ComponentStandardCost(ctx, id)
	})
}

func (s *Store) Lane(ctx context.Context, origin, dest core.LocationID) (*planning.Lane, error) {
	return through(s.lanes, laneKey{origin, dest}, func() (*planning.Lane, error) {
		return s.PlanningStore.Lane(ctx, origin, dest)
	})
}

func (s *Store) HubLocation(ctx context.Context, id core.LocationID) (*planning.HubLocation, error) {
	return through(s.hubs, id, func() (*planning.HubLocation, error) {
		return s.PlanningStore.HubLocation(ctx, id)
	})
}

// Purge drops every cached entry, e.g. after a seed-data load.
func (s *Store) Purge() {
	s.products.Purge()
	s.costs.Purge()
	s.lanes.Purge()
	s.hubs.Purge()
}

// through returns a cached value or loads and caches it. Errors are not cached.
func through[K comparable, V any](c *lru.Cache[K, V], key K, load func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	c.Add(key, v)
	return v, nil
}
