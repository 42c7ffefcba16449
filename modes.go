// modes.go
//
// The CLI modes dispatched by run().

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/httpserver"
	"github.com/robalobadob/wordle-solver/internal/render"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/wordle"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// listCandidates is how many remaining candidates are spelled out.
const listCandidates = 12

func mintToken(cfg *config.Config, subject string) error {
	if cfg.DevSecret() {
		log.Warn().Msg("signing with the development JWT secret; set JWT_SECRET")
	}
	tok, exp, err := httpserver.SignAdminToken(cfg.Auth.JWTSecret, subject, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	log.Info().Str("sub", subject).Time("expires", exp).Msg("admin token minted")
	fmt.Println(tok)
	return nil
}

func (a *app) serve(ctx context.Context) error {
	if a.cfg.DevSecret() {
		log.Warn().Msg("admin API uses the development JWT secret; set JWT_SECRET")
	}
	srv := httpserver.New(httpserver.Deps{
		Lists:    a.lists,
		Games:    store.NewMemoryStore(a.cfg.Server.MaxGames, a.cfg.Server.GameIdle),
		Selector: a.selector,
		Solver:   a.solver,
		Runs:     a.runs,
		Cache:    a.cache,
	}, httpserver.Options{
		MaxGuesses:   a.cfg.Game.MaxGuesses,
		DailySalt:    a.cfg.Daily.Salt,
		JWTSecret:    a.cfg.Auth.JWTSecret,
		ClientOrigin: a.cfg.Server.ClientOrigin,
		Timeout:      a.cfg.Server.RequestTimeout,
	})
	return srv.Run(ctx, ":"+a.cfg.Server.Port)
}

// seedFor resolves -seed / -daily. An empty result means a random answer.
func (a *app) seedFor(f flags) string {
	if f.daily {
		now := time.Now()
		seed := daily.Answer(now, a.cfg.Daily.Salt, a.lists.Answers())
		log.Info().Str("date", daily.DateKey(now)).Msg("using daily seed")
		return seed
	}
	return f.seed
}

// playManual reads guesses from stdin until the game ends.
func (a *app) playManual(ctx context.Context, f flags) error {
	g, err := game.New(a.lists, a.seedFor(f), a.cfg.Game.MaxGuesses)
	if err != nil {
		return err
	}
	p := render.New(os.Stdout)
	in := bufio.NewScanner(os.Stdin)

	for !g.Finished() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Print("Enter guess: ")
		if !in.Scan() {
			fmt.Println()
			return in.Err()
		}
		gs, err := g.ApplyGuess(in.Text())
		if errors.Is(err, words.ErrInvalidWord) {
			fmt.Printf("Not a valid %d-letter word.\n", a.lists.Size())
			continue
		}
		if err != nil {
			return err
		}
		p.Guess(gs)
	}
	if !g.Won() {
		fmt.Printf("\nFailed... the wordle was '%s'.\n", g.Answer)
	}
	return nil
}

// runAssist suggests guesses for a game whose answer is unknown. Each input
// line is "<guess> <feedback>"; "reset" starts over and "quit" exits.
func (a *app) runAssist(ctx context.Context, r io.Reader, w io.Writer) error {
	p := render.New(w)
	full := a.lists.Universe().Full()
	cands := full
	in := bufio.NewScanner(r)

	suggest := func() error {
		ch, err := a.selector.Select(ctx, cands)
		if err != nil {
			return err
		}
		p.Candidates(cands, listCandidates)
		fmt.Fprintf(w, "Try: %s (eliminates at least %d)\n", ch.Word, ch.Score)
		return nil
	}
	if err := suggest(); err != nil {
		return err
	}

	for in.Scan() {
		line := strings.Fields(strings.ToLower(in.Text()))
		switch {
		case len(line) == 0:
			continue
		case line[0] == "quit":
			return nil
		case line[0] == "reset":
			cands = full
		case len(line) != 2:
			fmt.Fprintln(w, "Enter: <guess> <feedback>, e.g. crane 02100")
			continue
		default:
			guess := line[0]
			if err := a.lists.Check(guess); err != nil {
				fmt.Fprintln(w, err)
				continue
			}
			st, err := wordle.ParseStatuses(line[1])
			if err == nil {
				var ev wordle.Evaluation
				if ev, err = wordle.FromStatuses(guess, st); err == nil {
					if ev.Solved() {
						fmt.Fprintln(w, "Success!")
						return nil
					}
					cands = wordle.Prune(ev, guess, cands)
				}
			}
			if err != nil {
				fmt.Fprintln(w, err)
				continue
			}
		}
		if cands.Len() == 0 {
			fmt.Fprintln(w, "No answer fits that feedback; type reset to start over.")
			continue
		}
		if err := suggest(); err != nil {
			return err
		}
	}
	return in.Err()
}

// solveOne solves a single seed and prints every step.
func (a *app) solveOne(ctx context.Context, f flags) error {
	g, err := a.solver.Solve(ctx, a.seedFor(f))
	if err != nil {
		return err
	}
	p := render.New(os.Stdout)
	for _, gs := range g.Guesses {
		p.Guess(gs)
		if !gs.Solved() {
			p.Candidates(gs.Candidates, listCandidates)
		}
	}
	p.Outcome(g)
	return nil
}

// solveAll solves every answer, prints the histogram and persists the run
// when a database is configured.
func (a *app) solveAll(ctx context.Context, f flags) error {
	seeds := a.lists.Answers()
	bar := progressbar.NewOptions(len(seeds),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("solving"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetVisibility(f.progress && term.IsTerminal(int(os.Stderr.Fd()))),
	)

	started := time.Now()
	rep, err := a.solver.SolveAll(ctx, seeds, solver.SolveAllOptions{
		Budget:  f.budget,
		Workers: a.cfg.Solver.Workers,
		OnSeed:  func(solver.SeedResult) { _ = bar.Add(1) },
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}
	fmt.Println(rep)

	if a.runs != nil {
		if _, err := a.runs.SaveRun(ctx, started, rep); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
	}
	return nil
}
