// internal/game/engine.go
//
// Core game engine for a single session.
// Responsibilities:
//   - Create new games against an answer from the word lists.
//   - Validate guesses (length, alphabetic, allowed list) without
//     consuming an attempt when they fail.
//   - Evaluate guesses, prune the candidate set, and track the
//     awaiting → evaluated → solved/exhausted transitions.
//
// Notes:
//   - The same engine backs manual play (CLI and HTTP) and the solver.
//   - randomID() is a compact hex identifier for correlating server state.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/wordle"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// DefaultMaxGuesses is the classic budget.
const DefaultMaxGuesses = 6

var (
	ErrGameFinished = errors.New("game finished")
	// ErrInvalidSeed is returned when the requested goal is not an answer.
	ErrInvalidSeed = errors.New("seed is not in the answer list")
	// ErrEmptyCandidateSet means the evaluation history is inconsistent:
	// no answer word fits every evaluation seen so far.
	ErrEmptyCandidateSet = wordle.ErrEmptyCandidateSet
)

// New constructs a game. If answer is empty, a random answer is chosen.
// maxGuesses <= 0 disables the budget.
func New(lists *words.Lists, answer string, maxGuesses int) (*Game, error) {
	ans := strings.ToLower(strings.TrimSpace(answer))
	if ans == "" {
		ans = lists.RandomAnswer()
	}
	if !lists.IsAnswer(ans) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeed, answer)
	}
	if maxGuesses < 0 {
		maxGuesses = 0
	}
	return &Game{
		ID:         randomID(),
		Answer:     ans,
		MaxGuesses: maxGuesses,
		Guesses:    []Guess{},
		State:      StateAwaitingGuess,
		lists:      lists,
		candidates: lists.Universe().Full(),
	}, nil
}

// ApplyGuess validates, evaluates and applies a guess.
//
// Validation failures return an error wrapping words.ErrInvalidWord and
// leave the game untouched. When pruning leaves no candidates the guess is
// still recorded and ErrEmptyCandidateSet is returned alongside it.
func (g *Game) ApplyGuess(word string) (Guess, error) {
	if g.State.Terminal() {
		return Guess{}, ErrGameFinished
	}
	word = strings.ToLower(strings.TrimSpace(word))
	if err := g.lists.Check(word); err != nil {
		return Guess{}, err
	}

	ev, err := wordle.Evaluate(word, g.Answer)
	if err != nil {
		return Guess{}, err
	}
	g.State = StateEvaluated

	next := wordle.Prune(ev, word, g.candidates)
	guess := Guess{Word: word, Goal: g.Answer, Evaluation: ev, Candidates: next}
	g.candidates = next
	g.Guesses = append(g.Guesses, guess)

	switch {
	case ev.Solved():
		g.State = StateSolved
	case g.MaxGuesses > 0 && len(g.Guesses) >= g.MaxGuesses:
		g.State = StateExhausted
	default:
		g.State = StateAwaitingGuess
	}
	log.Debug().
		Str("game", g.ID).
		Str("guess", word).
		Str("eval", ev.String()).
		Int("candidates", next.Len()).
		Str("state", string(g.State)).
		Msg("guess applied")

	if next.Len() == 0 && !ev.Solved() {
		return guess, fmt.Errorf("%w after %q", ErrEmptyCandidateSet, word)
	}
	return guess, nil
}

// Candidates returns the words still consistent with every guess.
func (g *Game) Candidates() wordle.CandidateSet { return g.candidates }

// Lists returns the word lists the game was created with.
func (g *Game) Lists() *words.Lists { return g.lists }

// Finished reports whether the game reached a terminal state.
func (g *Game) Finished() bool { return g.State.Terminal() }

// Won reports whether the game was solved.
func (g *Game) Won() bool { return g.State == StateSolved }

// Remaining is the number of guesses left, or -1 without a budget.
func (g *Game) Remaining() int {
	if g.MaxGuesses == 0 {
		return -1
	}
	return g.MaxGuesses - len(g.Guesses)
}

// Path lists the guessed words in order.
func (g *Game) Path() []string {
	out := make([]string, len(g.Guesses))
	for i, gs := range g.Guesses {
		out[i] = gs.Word
	}
	return out
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
