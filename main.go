// main.go
//
// Entry point for the solver CLI and HTTP server.
// Responsibilities:
//   - Load configuration (.env, CONFIG_PATH yaml, environment).
//   - Configure zerolog (level + console/json writer).
//   - Build word lists, the guess selector and its caches.
//   - Dispatch to a mode: manual play, assist, single solve, daily,
//     solve-all (default), HTTP server, or admin token minting.

package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

type flags struct {
	manual   bool
	assist   bool
	daily    bool
	serve    bool
	seed     string
	token    string
	budget   int
	progress bool
}

func parseFlags(cfg *config.Config) flags {
	var f flags
	flag.BoolVar(&f.manual, "manual", false, "play manually")
	flag.BoolVar(&f.assist, "assist", false, "suggest guesses for a game played elsewhere")
	flag.BoolVar(&f.daily, "daily", false, "use today's seed")
	flag.BoolVar(&f.serve, "serve", false, "run the HTTP API")
	flag.StringVar(&f.seed, "seed", "", "seed word (must be an answer)")
	flag.StringVar(&f.token, "token", "", "mint an admin token for `subject` and exit")
	flag.IntVar(&f.budget, "budget", cfg.Game.MaxGuesses, "guesses allowed before a seed counts as failed")
	flag.BoolVar(&f.progress, "progress", true, "show a progress bar during solve-all")
	flag.Parse()
	return f
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogger(cfg.Log)
	f := parseFlags(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, f); err != nil {
		log.Fatal().Err(err).Msg("wordle-solver failed")
	}
}

// setupLogger applies LOG_LEVEL and LOG_FORMAT to the global logger.
func setupLogger(lc config.LogConfig) {
	if lvl, err := zerolog.ParseLevel(strings.ToLower(lc.Level)); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	zerolog.TimeFieldFormat = time.RFC3339
	if strings.EqualFold(lc.Format, "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// app is everything a mode needs, built once from config.
type app struct {
	cfg      *config.Config
	lists    *words.Lists
	selector *solver.Selector
	solver   *solver.Solver
	db       *sql.DB       // nil without SOLVER_CACHE_DB
	runs     *store.Runs   // nil without SOLVER_CACHE_DB
	cache    solver.Purger // nil when caching is disabled
}

func run(ctx context.Context, cfg *config.Config, f flags) error {
	if f.token != "" {
		return mintToken(cfg, f.token)
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	switch {
	case f.serve:
		return a.serve(ctx)
	case f.manual:
		return a.playManual(ctx, f)
	case f.assist:
		return a.runAssist(ctx, os.Stdin, os.Stdout)
	case f.seed != "" || f.daily:
		return a.solveOne(ctx, f)
	default:
		return a.solveAll(ctx, f)
	}
}

func newApp(cfg *config.Config) (*app, error) {
	lists, err := words.Load(words.Source{
		AnswersFile: cfg.Words.AnswersFile,
		AllowedFile: cfg.Words.AllowedFile,
		Size:        cfg.Words.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("load word lists: %w", err)
	}
	a := &app{cfg: cfg, lists: lists}

	var caches []solver.Cache
	if cfg.Solver.CacheSize > 0 {
		lru, err := solver.NewLRUCache(cfg.Solver.CacheSize)
		if err != nil {
			return nil, err
		}
		caches = append(caches, lru)
	}
	if cfg.Solver.CacheDB != "" {
		db, err := store.Open(cfg.Solver.CacheDB)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", cfg.Solver.CacheDB, err)
		}
		a.db = db
		a.runs = store.NewRuns(db)
		caches = append(caches, store.NewSuggestionCache(db))
	}

	opts := []solver.Option{solver.WithWorkers(cfg.Solver.Workers)}
	var cache solver.Cache
	switch len(caches) {
	case 1:
		cache = caches[0]
	case 2:
		cache = solver.Tiered{Front: caches[0], Back: caches[1]}
	}
	if cache != nil {
		opts = append(opts, solver.WithCache(cache))
		a.cache, _ = cache.(solver.Purger)
	}

	a.selector = solver.NewSelector(lists.Allowed(), opts...)
	a.solver = solver.New(lists, a.selector, cfg.Solver.GuessCeiling)

	answers, allowed := lists.Stats()
	log.Debug().
		Int("answers", answers).
		Int("allowed", allowed).
		Bool("lru", cfg.Solver.CacheSize > 0).
		Str("cacheDB", cfg.Solver.CacheDB).
		Msg("solver ready")
	return a, nil
}

func (a *app) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}
