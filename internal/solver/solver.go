// internal/solver/solver.go
//
// The solving loop: select a guess, evaluate it against the goal, prune,
// repeat until the goal is found or the ceiling is reached.
//
// SolveAll runs the loop for many seeds in parallel and aggregates a
// histogram of guesses-to-solve plus the seeds that went over budget.

package solver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/wordle"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Chooser picks the next guess for a candidate set.
type Chooser interface {
	Select(ctx context.Context, candidates wordle.CandidateSet) (Choice, error)
}

// Solver drives games with a Chooser.
type Solver struct {
	lists   *words.Lists
	chooser Chooser
	ceiling int
}

// New creates a Solver. ceiling caps the guesses of one solve; 0 means the
// size of the answer list, which minimax always stays under since every
// selected guess removes at least one candidate.
func New(lists *words.Lists, chooser Chooser, ceiling int) *Solver {
	if ceiling <= 0 {
		ceiling = lists.Universe().Len() + 1
	}
	return &Solver{lists: lists, chooser: chooser, ceiling: ceiling}
}

// Solve plays goal to the end and returns the finished game. The game ends
// Solved, or Exhausted when the ceiling is hit.
func (s *Solver) Solve(ctx context.Context, goal string) (*game.Game, error) {
	g, err := game.New(s.lists, goal, s.ceiling)
	if err != nil {
		return nil, err
	}
	return g, s.Play(ctx, g)
}

// Play finishes an already started game by choosing every remaining guess.
func (s *Solver) Play(ctx context.Context, g *game.Game) error {
	for !g.Finished() {
		if err := ctx.Err(); err != nil {
			return err
		}
		ch, err := s.chooser.Select(ctx, g.Candidates())
		if err != nil {
			return fmt.Errorf("solve %q: %w", g.Answer, err)
		}
		if _, err := g.ApplyGuess(ch.Word); err != nil {
			// An empty candidate set cannot happen against a real answer;
			// treat it and any rejected selection as fatal.
			return fmt.Errorf("solve %q: guess %q: %w", g.Answer, ch.Word, err)
		}
	}
	return nil
}

// SeedResult is the outcome of solving one seed.
type SeedResult struct {
	Seed    string   `json:"seed"`
	Guesses int      `json:"guesses"`
	Solved  bool     `json:"solved"`
	Path    []string `json:"path"`
}

// Report aggregates a solve-all run.
type Report struct {
	Budget    int           `json:"budget"`
	Results   []SeedResult  `json:"results"`
	Histogram map[int]int   `json:"histogram"`
	Failed    []string      `json:"failed"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Mean returns the average number of guesses over all seeds.
func (r *Report) Mean() float64 {
	if len(r.Results) == 0 {
		return 0
	}
	total := 0
	for _, res := range r.Results {
		total += res.Guesses
	}
	return float64(total) / float64(len(r.Results))
}

// Worst returns the largest guess count seen.
func (r *Report) Worst() int {
	worst := 0
	for n := range r.Histogram {
		worst = max(worst, n)
	}
	return worst
}

func (r *Report) String() string {
	keys := make([]int, 0, len(r.Histogram))
	for k := range r.Histogram {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%2d guesses: %d\n", k, r.Histogram[k])
	}
	fmt.Fprintf(&b, "mean: %.3f over %d seeds\n", r.Mean(), len(r.Results))
	fmt.Fprintf(&b, "Failed words: %v", r.Failed)
	return b.String()
}

// SolveAllOptions tunes SolveAll.
type SolveAllOptions struct {
	Budget  int              // seeds needing more guesses count as failed
	Workers int              // concurrent solves; <= 0 uses GOMAXPROCS
	OnSeed  func(SeedResult) // called once per finished seed, serialized
}

// SolveAll solves every seed and reports the guess histogram.
func (s *Solver) SolveAll(ctx context.Context, seeds []string, opts SolveAllOptions) (*Report, error) {
	if opts.Budget <= 0 {
		opts.Budget = game.DefaultMaxGuesses
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	results := make([]SeedResult, len(seeds))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			gm, err := s.Solve(ctx, seed)
			if err != nil {
				return err
			}
			res := SeedResult{Seed: gm.Answer, Guesses: len(gm.Guesses), Solved: gm.Won(), Path: gm.Path()}
			results[i] = res
			if opts.OnSeed != nil {
				mu.Lock()
				opts.OnSeed(res)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("solve all: %w", err)
	}

	rep := &Report{
		Budget:    opts.Budget,
		Results:   results,
		Histogram: make(map[int]int),
		Failed:    []string{},
		Elapsed:   time.Since(start),
	}
	for _, res := range results {
		rep.Histogram[res.Guesses]++
		if !res.Solved || res.Guesses > opts.Budget {
			rep.Failed = append(rep.Failed, res.Seed)
		}
	}
	sort.Strings(rep.Failed)

	log.Info().
		Int("seeds", len(seeds)).
		Int("failed", len(rep.Failed)).
		Float64("mean", rep.Mean()).
		Dur("elapsed", rep.Elapsed).
		Msg("solve-all finished")
	return rep, nil
}
