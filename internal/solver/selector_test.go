package solver

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/wordle"
)

var testWords = []string{
	"cigar", "rebut", "sissy", "humph", "awake", "blush", "focal", "evade",
	"naval", "serve", "heath", "dwarf", "model", "karma", "stink", "grade",
	"quiet", "bench", "abate", "feign", "major", "death", "fresh", "crust",
}

func subset(t *testing.T, u *wordle.Universe, ws ...string) wordle.CandidateSet {
	t.Helper()
	c, err := u.Subset(ws)
	require.NoError(t, err)
	return c
}

func TestScore(t *testing.T) {
	u := wordle.NewUniverse([]string{"blank", "blang", "bland"})
	all := u.Full()

	assert.Equal(t, 1, Score("blank", all))
	assert.Equal(t, 2, Score("kdgzz", all))
	assert.Equal(t, -1, Score("bla", all))
}

func TestBest_PrefersBetterSplitOverCandidate(t *testing.T) {
	u := wordle.NewUniverse([]string{"blank", "blang", "bland"})
	ch, err := Best(context.Background(), u.Full(), []string{"blank", "blang", "bland", "kdgzz"}, 1)
	require.NoError(t, err)
	assert.Equal(t, Choice{Word: "kdgzz", Score: 2, Candidates: 3}, ch)
}

func TestBest_TieBreaks(t *testing.T) {
	ctx := context.Background()

	// All three split the pair; the candidate first in canonical order wins
	// even though the allowed list names it last.
	u := wordle.NewUniverse([]string{"blank", "blang"})
	ch, err := Best(ctx, u.Full(), []string{"kzzzz", "blang", "blank"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "blank", ch.Word)

	u = wordle.NewUniverse([]string{"blang", "blank"})
	ch, err = Best(ctx, u.Full(), []string{"kzzzz", "blang", "blank"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "blang", ch.Word)

	// No candidate among the best: lexicographically smallest.
	ch, err = Best(ctx, u.Full(), []string{"kzzzz", "gzzzz"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "gzzzz", ch.Word)
	assert.Equal(t, 1, ch.Score)
}

func TestBest_NoSplitFallsBackToCandidate(t *testing.T) {
	u := wordle.NewUniverse([]string{"blank", "blang"})
	ch, err := Best(context.Background(), u.Full(), []string{"zzzzz"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "blank", ch.Word)
	assert.Equal(t, 0, ch.Score)
}

func TestBest_SingleAndEmpty(t *testing.T) {
	u := wordle.NewUniverse(testWords)
	ctx := context.Background()

	ch, err := Best(ctx, subset(t, u, "major"), testWords, 0)
	require.NoError(t, err)
	assert.Equal(t, "major", ch.Word)
	assert.Equal(t, 1, ch.Candidates)

	_, err = Best(ctx, wordle.CandidateSet{}, testWords, 0)
	assert.ErrorIs(t, err, wordle.ErrEmptyCandidateSet)
}

func TestBest_ParallelMatchesSequential(t *testing.T) {
	u := wordle.NewUniverse(testWords)
	ctx := context.Background()

	sets := []wordle.CandidateSet{
		u.Full(),
		subset(t, u, "cigar", "focal", "naval", "karma", "major"),
		subset(t, u, "heath", "death", "bench"),
	}
	for _, c := range sets {
		seq, err := Best(ctx, c, testWords, 1)
		require.NoError(t, err)
		for _, w := range []int{2, 3, 7, 64} {
			par, err := Best(ctx, c, testWords, w)
			require.NoError(t, err)
			assert.Equal(t, seq, par, "workers=%d", w)
		}
	}
}

func TestBest_OpeningIsDeterministic(t *testing.T) {
	u := wordle.NewUniverse(testWords)
	for i := 0; i < 3; i++ {
		ch, err := Best(context.Background(), u.Full(), testWords, 0)
		require.NoError(t, err)
		assert.Equal(t, "abate", ch.Word)
	}
}

func TestBest_Canceled(t *testing.T) {
	u := wordle.NewUniverse(testWords)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Best(ctx, u.Full(), testWords, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

type countingCache struct {
	mu   sync.Mutex
	m    map[string]Entry
	gets int
	puts int
	err  error
}

func newCountingCache() *countingCache {
	return &countingCache{m: make(map[string]Entry)}
}

func (c *countingCache) Get(_ context.Context, key string) (Entry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.err != nil {
		return Entry{}, false, c.err
	}
	e, ok := c.m[key]
	return e, ok, nil
}

func (c *countingCache) Put(_ context.Context, key string, e Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	if c.err != nil {
		return c.err
	}
	c.m[key] = e
	return nil
}

// gateCache never hits and holds every Put until release is closed.
type gateCache struct {
	once    sync.Once
	entered chan struct{}
	release chan struct{}
	putErrs chan error
}

func (c *gateCache) Get(context.Context, string) (Entry, bool, error) { return Entry{}, false, nil }

func (c *gateCache) Put(ctx context.Context, _ string, _ Entry) error {
	c.once.Do(func() { close(c.entered) })
	<-c.release
	c.putErrs <- ctx.Err()
	return nil
}

func TestSelector_CanceledCallerDoesNotFailSharedSelection(t *testing.T) {
	u := wordle.NewUniverse(testWords)
	gate := &gateCache{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		putErrs: make(chan error, 2),
	}
	sel := NewSelector(testWords, WithCache(gate), WithWorkers(2))

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := sel.Select(ctx, u.Full())
		firstErr <- err
	}()
	<-gate.entered

	type result struct {
		ch  Choice
		err error
	}
	second := make(chan result, 1)
	go func() {
		ch, err := sel.Select(context.Background(), u.Full())
		second <- result{ch, err}
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(gate.release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, "abate", got.ch.Word)
	assert.NoError(t, <-gate.putErrs)
}

func TestSelector_CachedMatchesUncached(t *testing.T) {
	u := wordle.NewUniverse(testWords)
	ctx := context.Background()
	cache := newCountingCache()

	plain := NewSelector(testWords)
	memo := NewSelector(testWords, WithCache(cache), WithWorkers(2))

	want, err := plain.Select(ctx, u.Full())
	require.NoError(t, err)

	first, err := memo.Select(ctx, u.Full())
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, want.Word, first.Word)

	second, err := memo.Select(ctx, u.Full())
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, want.Word, second.Word)
	assert.Equal(t, want.Score, second.Score)
	assert.Equal(t, 1, cache.puts)
	assert.Len(t, cache.m, 1)
}

func TestSelector_SingleCandidateSkipsCache(t *testing.T) {
	u := wordle.NewUniverse(testWords)
	cache := newCountingCache()
	s := NewSelector(testWords, WithCache(cache))

	ch, err := s.Select(context.Background(), subset(t, u, "quiet"))
	require.NoError(t, err)
	assert.Equal(t, "quiet", ch.Word)
	assert.Zero(t, cache.gets)
	assert.Zero(t, cache.puts)
}

func TestSelector_CacheErrorsAreNotFatal(t *testing.T) {
	u := wordle.NewUniverse(testWords)
	cache := newCountingCache()
	cache.err = errors.New("disk on fire")
	s := NewSelector(testWords, WithCache(cache))

	ch, err := s.Select(context.Background(), u.Full())
	require.NoError(t, err)
	assert.Equal(t, "abate", ch.Word)
}

func TestSelector_Concurrent(t *testing.T) {
	u := wordle.NewUniverse(testWords)
	lru, err := NewLRUCache(16)
	require.NoError(t, err)
	s := NewSelector(testWords, WithCache(lru))

	var wg sync.WaitGroup
	got := make([]string, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ch, err := s.Select(context.Background(), u.Full())
			if err == nil {
				got[i] = ch.Word
			}
		}(i)
	}
	wg.Wait()
	for _, w := range got {
		assert.Equal(t, "abate", w)
	}
	assert.Equal(t, 1, lru.Len())
}
