package domain

import (
	"hash/fnv"
	"sync"
)

// BalanceCache holds recently read accounts.
type BalanceCache interface {
	// Get returns a cached account, if one is fresh.
	Get(userID string) (Account, bool)

	// Set stores an account.
	Set(userID string, account Account)

	// Delete evicts an account.
	Delete(userID string)
}

// NoopBalanceCache never caches anything.
type NoopBalanceCache struct{}

func (NoopBalanceCache) Get(string) (Account, bool) { return Account{}, false }

func (NoopBalanceCache) Set(string, Account) {}

func (NoopBalanceCache) Delete(string) {}

const cacheStripes = 64

// cacheGuard orders cache fills against invalidations. A fill only lands when no
// write for the same user committed between the store read and the fill.
type cacheGuard struct {
	stripes [cacheStripes]struct {
		mu         sync.Mutex
		generation uint64
	}
}

func (g *cacheGuard) stripe(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % cacheStripes)
}

// generation returns the token to pass to fill after reading the store.
func (g *cacheGuard) generation(userID string) uint64 {
	s := &g.stripes[g.stripe(userID)]
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// fill stores account unless the user was invalidated since generation was taken.
func (g *cacheGuard) fill(cache BalanceCache, userID string, generation uint64, account Account) {
	s := &g.stripes[g.stripe(userID)]
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation == generation {
		cache.Set(userID, account)
	}
}

// invalidate drops the cached account and rejects fills already in flight.
func (g *cacheGuard) invalidate(cache BalanceCache, userID string) {
	s := &g.stripes[g.stripe(userID)]
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	cache.Delete(userID)
}
