// internal/solver/selector.go
//
// Next-guess selection by worst-case partition (minimax).
//
// For every allowed guess g the current candidates are bucketed by the
// evaluation g would produce against each of them. g scores
//
//	|candidates| - size of the largest bucket
//
// i.e. how many candidates g is guaranteed to eliminate. The highest score
// wins. Ties go to a word that is itself a candidate (first in the answer
// list's canonical order), then to the lexicographically smallest word.
//
// Best is the pure algorithm. Selector adds the optional cache and
// collapses identical concurrent selections.

package solver

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/robalobadob/wordle-solver/internal/wordle"
)

// Choice is a selected guess and how it scored.
type Choice struct {
	Word       string `json:"word"`
	Score      int    `json:"score"`
	Candidates int    `json:"candidates"`
	Cached     bool   `json:"cached"`
}

// Score returns len(candidates) minus the largest bucket guess splits the
// candidates into, or -1 if guess cannot be compared with them.
func Score(guess string, candidates wordle.CandidateSet) int {
	return newScorer().score(guess, candidates.Words())
}

type scorer struct {
	scratch wordle.Scratch
	counts  map[wordle.Pattern]int
}

func newScorer() *scorer {
	return &scorer{counts: make(map[wordle.Pattern]int, 243)}
}

func (s *scorer) score(guess string, goals []string) int {
	clear(s.counts)
	worst := 0
	for _, goal := range goals {
		p, err := s.scratch.Pattern(guess, goal)
		if err != nil {
			return -1
		}
		n := s.counts[p] + 1
		s.counts[p] = n
		if n > worst {
			worst = n
		}
	}
	return len(goals) - worst
}

// Best scores every allowed guess against candidates and returns the winner.
// workers <= 0 uses GOMAXPROCS goroutines.
func Best(ctx context.Context, candidates wordle.CandidateSet, allowed []string, workers int) (Choice, error) {
	goals := candidates.Words()
	switch len(goals) {
	case 0:
		return Choice{}, wordle.ErrEmptyCandidateSet
	case 1:
		return Choice{Word: goals[0], Candidates: 1}, nil
	}

	scores, err := scoreAll(ctx, goals, allowed, workers)
	if err != nil {
		return Choice{}, err
	}

	best := 0
	for _, sc := range scores {
		if sc > best {
			best = sc
		}
	}
	if best <= 0 {
		// Nothing splits the candidates; guessing one of them is the only
		// move that can still win.
		return Choice{Word: goals[0], Candidates: len(goals)}, nil
	}

	top := make(map[string]struct{})
	for i, sc := range scores {
		if sc == best {
			top[allowed[i]] = struct{}{}
		}
	}
	for _, w := range goals {
		if _, ok := top[w]; ok {
			return Choice{Word: w, Score: best, Candidates: len(goals)}, nil
		}
	}
	var word string
	for w := range top {
		if word == "" || w < word {
			word = w
		}
	}
	return Choice{Word: word, Score: best, Candidates: len(goals)}, nil
}

// scoreAll fills scores[i] for allowed[i], splitting allowed into
// contiguous chunks, one per worker.
func scoreAll(ctx context.Context, goals, allowed []string, workers int) ([]int, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(allowed) {
		workers = len(allowed)
	}
	scores := make([]int, len(allowed))
	if workers == 0 {
		return scores, nil
	}
	chunk := (len(allowed) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(allowed); start += chunk {
		lo, hi := start, min(start+chunk, len(allowed))
		g.Go(func() error {
			sc := newScorer()
			for i := lo; i < hi; i++ {
				if (i-lo)%256 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				scores[i] = sc.score(allowed[i], goals)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// Selector picks guesses from a fixed allowed list, optionally memoized.
type Selector struct {
	allowed     []string
	fingerprint string
	workers     int
	cache       Cache
	flight      singleflight.Group
}

// Option configures a Selector.
type Option func(*Selector)

// WithWorkers bounds the goroutines used to score one selection.
func WithWorkers(n int) Option {
	return func(s *Selector) { s.workers = n }
}

// WithCache memoizes selections in c.
func WithCache(c Cache) Option {
	return func(s *Selector) { s.cache = c }
}

// NewSelector builds a Selector over allowed, which is copied.
//
// The cache fingerprint covers allowed in order. With words.Lists the
// allowed list starts with the answers in canonical order, so the
// fingerprint also pins the candidate tie-break order.
func NewSelector(allowed []string, opts ...Option) *Selector {
	s := &Selector{
		allowed:     append([]string(nil), allowed...),
		fingerprint: Fingerprint(allowed),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allowed returns the number of words the selector scores.
func (s *Selector) Allowed() int { return len(s.allowed) }

// Select returns the best next guess for candidates.
func (s *Selector) Select(ctx context.Context, candidates wordle.CandidateSet) (Choice, error) {
	if s.cache == nil || candidates.Len() <= 1 {
		return Best(ctx, candidates, s.allowed, s.workers)
	}

	goals := candidates.Words()
	key := CandidateKey(s.fingerprint, goals)
	if e, ok, err := s.cache.Get(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("suggestion cache get")
	} else if ok {
		log.Debug().Str("word", e.Word).Int("candidates", len(goals)).Msg("suggestion cache hit")
		return Choice{
			Word:       e.Word,
			Score:      newScorer().score(e.Word, goals),
			Candidates: len(goals),
			Cached:     true,
		}, nil
	}

	// The shared computation ignores caller cancellation; a canceled caller
	// only stops waiting for it.
	flight := s.flight.DoChan(key, func() (interface{}, error) {
		ctx := context.WithoutCancel(ctx)
		ch, err := Best(ctx, candidates, s.allowed, s.workers)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Put(ctx, key, Entry{Word: ch.Word, Candidates: ch.Candidates}); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("suggestion cache put")
		}
		return ch, nil
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return Choice{}, ctx.Err()
	case res = <-flight:
	}
	if res.Err != nil {
		return Choice{}, fmt.Errorf("select among %d candidates: %w", len(goals), res.Err)
	}
	ch := res.Val.(Choice)
	ch.Cached = res.Shared
	return ch, nil
}
