// Package expiring implements an LRU strategy whose entries also expire
// after a fixed time to live. Useful when transcripts in a bucket are
// rewritten while a replay service is running.
package expiring

import (
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/discochess/uci/internal/store/cachedstore/cachestrategy"
)

// Compile-time check that Strategy implements cachestrategy.Strategy.
var _ cachestrategy.Strategy = (*Strategy)(nil)

// ErrInvalidTTL is returned by New for a non-positive time to live.
var ErrInvalidTTL = errors.New("expiring: ttl must be positive")

// Strategy implements LRU eviction with per-entry expiry.
type Strategy struct {
	cache *expirable.LRU[string, []byte]
}

// New creates a strategy holding at most capacity entries, each for at most ttl.
func New(capacity int, ttl time.Duration) (*Strategy, error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	return &Strategy{cache: expirable.NewLRU[string, []byte](capacity, nil, ttl)}, nil
}

// Get retrieves a value by key. Expired entries are misses.
func (s *Strategy) Get(key string) ([]byte, bool) {
	return s.cache.Get(key)
}

// Add adds a value to the cache.
func (s *Strategy) Add(key string, value []byte) bool {
	return s.cache.Add(key, value)
}

// Len returns the number of unexpired items in the cache.
func (s *Strategy) Len() int {
	return s.cache.Len()
}
