// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - State: where a game sits in the play loop.
//   - Guess: one round of play (word, goal, evaluation, candidates left).
//   - Game:  state for a single in-progress or finished game.

package game

import (
	"fmt"
	"strings"

	"github.com/robalobadob/wordle-solver/internal/wordle"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// State is the play-loop state of a game.
//
//	AwaitingGuess --guess--> Evaluated --prune--> AwaitingGuess
//	                                    \-------> Solved    (all correct)
//	                                     \------> Exhausted (budget used)
type State string

const (
	StateAwaitingGuess State = "awaiting_guess"
	StateEvaluated     State = "evaluated"
	StateSolved        State = "solved"
	StateExhausted     State = "exhausted"
)

// Terminal reports whether no further guesses are accepted.
func (s State) Terminal() bool {
	return s == StateSolved || s == StateExhausted
}

// Guess bundles one round of play. It has no identity beyond that round.
type Guess struct {
	Word       string
	Goal       string
	Evaluation wordle.Evaluation
	Candidates wordle.CandidateSet // candidates left after this guess
}

// Solved reports whether the guess hit the goal.
func (g Guess) Solved() bool { return g.Evaluation.Solved() }

var symbols = map[wordle.LetterStatus]string{
	wordle.Absent:  "⬜",
	wordle.Correct: "🟩",
	wordle.Present: "🟨",
}

// Squares renders the evaluation as colored squares.
func Squares(ev wordle.Evaluation) string {
	var b strings.Builder
	for _, s := range ev.Statuses {
		b.WriteString(symbols[s])
	}
	return b.String()
}

// String renders the guess the way the CLI prints it:
// squares, the word in parentheses and a success marker.
func (g Guess) String() string {
	s := fmt.Sprintf("%s (%s)", Squares(g.Evaluation), g.Word)
	if g.Solved() {
		s += " Success!"
	}
	return s
}

// Game holds the state of a single game session.
type Game struct {
	ID         string  // Unique game identifier (random hex string).
	Answer     string  // The goal word (always lowercase, always an answer).
	MaxGuesses int     // Guess budget; 0 means no budget.
	Guesses    []Guess // Accepted guesses so far.
	State      State

	lists      *words.Lists
	candidates wordle.CandidateSet
}
