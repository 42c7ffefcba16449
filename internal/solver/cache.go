// internal/solver/cache.go
//
// Memoization of selections.
//   - Keys: Fingerprint of the allowed list + hash of the sorted candidates.
//   - LRUCache: bounded in-process cache (golang-lru).
//   - Tiered: read-through pair, e.g. LRU in front of the SQLite cache.

package solver

import (
	"context"
	"encoding/hex"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"
)

// Entry is one memoized selection.
type Entry struct {
	Word       string
	Candidates int // size of the candidate set it was chosen for
}

// Cache memoizes selections by candidate-set key. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, key string, e Entry) error
}

// Purger is implemented by caches that can be emptied.
type Purger interface {
	Purge(ctx context.Context) error
}

// Fingerprint identifies an allowed-guess list, order included.
func Fingerprint(allowed []string) string {
	sum := blake2b.Sum256([]byte(strings.Join(allowed, "\n")))
	return hex.EncodeToString(sum[:8])
}

// CandidateKey is the canonical cache key for a candidate set: the
// fingerprint plus a hash of the sorted words, so the key does not depend
// on the order words are listed in.
func CandidateKey(fingerprint string, words []string) string {
	sorted := append([]string(nil), words...)
	sort.Strings(sorted)

	h, _ := blake2b.New256(nil)
	h.Write([]byte(fingerprint))
	for _, w := range sorted {
		h.Write([]byte{'\n'})
		h.Write([]byte(w))
	}
	return fingerprint + ":" + hex.EncodeToString(h.Sum(nil))
}

// LRUCache is a bounded in-memory Cache.
type LRUCache struct {
	c *lru.Cache[string, Entry]
}

// NewLRUCache creates a cache holding at most size selections.
func NewLRUCache(size int) (*LRUCache, error) {
	c, err := lru.New[string, Entry](size)
	if err != nil {
		return nil, err
	}
	return &LRUCache{c: c}, nil
}

// Get returns the entry for key and marks it recently used.
func (l *LRUCache) Get(_ context.Context, key string) (Entry, bool, error) {
	e, ok := l.c.Get(key)
	return e, ok, nil
}

// Put stores e, evicting the least recently used entry when full.
func (l *LRUCache) Put(_ context.Context, key string, e Entry) error {
	l.c.Add(key, e)
	return nil
}

// Purge drops every entry.
func (l *LRUCache) Purge(context.Context) error {
	l.c.Purge()
	return nil
}

// Len reports how many selections are held.
func (l *LRUCache) Len() int { return l.c.Len() }

// Tiered reads through Front to Back and fills Front on a Back hit.
// Writes go to both.
type Tiered struct {
	Front Cache
	Back  Cache
}

// Get consults Front, then Back. A Back hit is copied into Front; failing
// to copy it is logged and does not fail the lookup.
func (t Tiered) Get(ctx context.Context, key string) (Entry, bool, error) {
	if e, ok, err := t.Front.Get(ctx, key); err != nil || ok {
		return e, ok, err
	}
	e, ok, err := t.Back.Get(ctx, key)
	if err != nil || !ok {
		return e, ok, err
	}
	if err := t.Front.Put(ctx, key, e); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("tiered cache backfill")
	}
	return e, true, nil
}

// Put writes e to Front, then Back.
func (t Tiered) Put(ctx context.Context, key string, e Entry) error {
	if err := t.Front.Put(ctx, key, e); err != nil {
		return err
	}
	return t.Back.Put(ctx, key, e)
}

// Purge empties every tier that supports it.
func (t Tiered) Purge(ctx context.Context) error {
	for _, c := range []Cache{t.Front, t.Back} {
		if p, ok := c.(Purger); ok {
			if err := p.Purge(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
