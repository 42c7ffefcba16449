// internal/wordle/evaluate.go
//
// Guess evaluation for the word puzzle.
// Responsibilities:
//   - Compare one guess against one goal word, position by position.
//   - Resolve repeated letters with the classic two-pass consumption rule.
//   - Report the letters seen as Correct / Present alongside the statuses,
//     so pruning never has to re-derive them.
//
// Notes:
//   - The same evaluateInto routine backs both the public Evaluate and the
//     selector's hypothetical scoring, so the two can never disagree.

package wordle

import (
	"errors"
	"fmt"
	"strings"
)

// MaxSize bounds the puzzle size; Pattern keys must fit in a uint64.
const MaxSize = 16

var (
	// ErrInvalidLength is returned when guess and goal lengths differ or are
	// outside 1..MaxSize.
	ErrInvalidLength = errors.New("invalid word length")
	// ErrEmptyCandidateSet means no candidate fits the evaluations seen.
	ErrEmptyCandidateSet = errors.New("no candidates left")
)

// LetterStatus is the feedback for a single letter position.
type LetterStatus uint8

const (
	Absent LetterStatus = iota
	Present
	Correct
)

func (s LetterStatus) String() string {
	switch s {
	case Correct:
		return "correct"
	case Present:
		return "present"
	default:
		return "absent"
	}
}

// LetterSet is a bitmask over a–z.
type LetterSet uint32

func (s LetterSet) with(b byte) LetterSet {
	if b < 'a' || b > 'z' {
		return s
	}
	return s | 1<<(b-'a')
}

// Has reports whether letter b is in the set.
func (s LetterSet) Has(b byte) bool {
	if b < 'a' || b > 'z' {
		return false
	}
	return s&(1<<(b-'a')) != 0
}

// Evaluation is the per-position result of one guess against one goal.
type Evaluation struct {
	Statuses []LetterStatus
	Corrects LetterSet // letters marked Correct at some position
	Presents LetterSet // letters marked Present at some position
}

// Evaluate scores guess against goal.
//
// Pass 1 marks exact matches Correct and consumes both sides.
// Pass 2 walks the remaining guess letters left to right and consumes the
// first unused matching goal letter (Present); anything left is Absent.
func Evaluate(guess, goal string) (Evaluation, error) {
	if len(guess) != len(goal) || len(goal) == 0 || len(goal) > MaxSize {
		return Evaluation{}, fmt.Errorf("%w: guess %q (%d) vs goal (%d)", ErrInvalidLength, guess, len(guess), len(goal))
	}
	ev := Evaluation{Statuses: make([]LetterStatus, len(goal))}
	ev.Corrects, ev.Presents = evaluateInto(guess, goal, ev.Statuses)
	return ev, nil
}

// evaluateInto writes statuses into out, which must have len(goal) entries.
// Callers guarantee equal lengths no greater than MaxSize.
func evaluateInto(guess, goal string, out []LetterStatus) (corrects, presents LetterSet) {
	var used [MaxSize]bool
	for i := range out {
		if guess[i] == goal[i] {
			out[i] = Correct
			used[i] = true
			corrects = corrects.with(guess[i])
		} else {
			out[i] = Absent
		}
	}
	for i := range out {
		if out[i] == Correct {
			continue
		}
		for j := range out {
			if !used[j] && goal[j] == guess[i] {
				out[i] = Present
				used[j] = true
				presents = presents.with(guess[i])
				break
			}
		}
	}
	return corrects, presents
}

// Scratch evaluates many guess/goal pairs reusing one status buffer.
// It is not safe for concurrent use; give each goroutine its own.
type Scratch struct {
	buf [MaxSize]LetterStatus
}

// Pattern evaluates guess against goal and returns only the Pattern key.
func (s *Scratch) Pattern(guess, goal string) (Pattern, error) {
	if len(guess) != len(goal) || len(goal) == 0 || len(goal) > MaxSize {
		return 0, ErrInvalidLength
	}
	out := s.buf[:len(goal)]
	evaluateInto(guess, goal, out)
	return patternOf(out), nil
}

// Solved reports whether every position is Correct.
func (e Evaluation) Solved() bool {
	if len(e.Statuses) == 0 {
		return false
	}
	for _, s := range e.Statuses {
		if s != Correct {
			return false
		}
	}
	return true
}

// Pattern is a compact, comparable encoding of a status sequence (base 3).
type Pattern uint64

// Key encodes the statuses as a Pattern, usable as a map key.
func (e Evaluation) Key() Pattern {
	return patternOf(e.Statuses)
}

func patternOf(st []LetterStatus) Pattern {
	var p Pattern
	for _, s := range st {
		p = p*3 + Pattern(s)
	}
	return p
}

// Ints returns the statuses as 0 (absent), 1 (present), 2 (correct).
func (e Evaluation) Ints() []int {
	out := make([]int, len(e.Statuses))
	for i, s := range e.Statuses {
		out[i] = int(s)
	}
	return out
}

func (e Evaluation) String() string {
	parts := make([]string, len(e.Statuses))
	for i, s := range e.Statuses {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// ParseStatuses parses feedback written as digits (0 absent, 1 present,
// 2 correct) or letters (b/x absent, y present, g correct).
func ParseStatuses(s string) ([]LetterStatus, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 0 || len(s) > MaxSize {
		return nil, fmt.Errorf("%w: feedback %q", ErrInvalidLength, s)
	}
	out := make([]LetterStatus, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0', 'b', 'x', '.':
			out[i] = Absent
		case '1', 'y':
			out[i] = Present
		case '2', 'g':
			out[i] = Correct
		default:
			return nil, fmt.Errorf("feedback %q: unexpected %q at %d", s, s[i], i)
		}
	}
	return out, nil
}

// FromStatuses rebuilds an Evaluation (with its letter sets) from statuses
// reported for guess, e.g. feedback typed by a player.
func FromStatuses(guess string, st []LetterStatus) (Evaluation, error) {
	if len(guess) != len(st) {
		return Evaluation{}, fmt.Errorf("%w: guess %q has %d letters, feedback %d", ErrInvalidLength, guess, len(guess), len(st))
	}
	ev := Evaluation{Statuses: append([]LetterStatus(nil), st...)}
	for i, s := range st {
		switch s {
		case Correct:
			ev.Corrects = ev.Corrects.with(guess[i])
		case Present:
			ev.Presents = ev.Presents.with(guess[i])
		}
	}
	return ev, nil
}
