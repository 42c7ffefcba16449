// internal/words/words.go
//
// Word list management for the solver and the game engine.
//
// Responsibilities:
//   - Load the answer list and the extra legal guesses from files or fall
//     back to the embedded defaults in the assets package.
//   - Hold both as one immutable Lists value that callers pass explicitly.
//   - Answer legality questions (IsAllowed, IsAnswer, Check).
//
// Word Lists:
//   - "answers": words eligible to be the secret (canonical order kept).
//   - "allowed": answers followed by the extra legal words, de-duplicated.
//
// Constraints:
//   • Words are exactly Size lowercase letters a–z.
//   • Lines that do not satisfy this are skipped while loading.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/assets"
	"github.com/robalobadob/wordle-solver/internal/wordle"
)

// DefaultSize is the classic puzzle size.
const DefaultSize = 5

var (
	// ErrInvalidWord marks a guess that fails the legality check.
	ErrInvalidWord = errors.New("invalid word")
	// ErrNoAnswers is returned when loading leaves the answer list empty.
	ErrNoAnswers = errors.New("words: answers list is empty")
)

// Lists is the immutable pair of word lists used for one run.
type Lists struct {
	size       int
	answers    []string
	allowed    []string
	answersSet map[string]struct{}
	allowedSet map[string]struct{}
	universe   *wordle.Universe
}

// Source says where word lists come from. Empty paths mean the embedded
// defaults.
type Source struct {
	AnswersFile string
	AllowedFile string
	Size        int
}

// Load reads word lists according to src.
//
//  1. AnswersFile and AllowedFile set: answers from the first, extra legal
//     words from the second.
//  2. Only AllowedFile set: that list serves as both.
//  3. Neither set: embedded assets/answers.txt and assets/allowed.txt.
func Load(src Source) (*Lists, error) {
	size := src.Size
	if size <= 0 {
		size = DefaultSize
	}

	var ansList, extraList []string
	var err error
	switch {
	case src.AnswersFile != "" && src.AllowedFile != "":
		if ansList, err = readWordFile(src.AnswersFile, size); err != nil {
			return nil, err
		}
		if extraList, err = readWordFile(src.AllowedFile, size); err != nil {
			return nil, err
		}
	case src.AnswersFile == "" && src.AllowedFile != "":
		if ansList, err = readWordFile(src.AllowedFile, size); err != nil {
			return nil, err
		}
	case src.AnswersFile != "":
		if ansList, err = readWordFile(src.AnswersFile, size); err != nil {
			return nil, err
		}
	default:
		raw, err := assets.AnswersList()
		if err != nil {
			return nil, fmt.Errorf("embedded answers: %w", err)
		}
		ansList = normalize(raw, size)
		if raw, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("embedded allowed: %w", err)
		}
		extraList = normalize(raw, size)
	}

	l, err := New(ansList, extraList, size)
	if err != nil {
		return nil, err
	}
	a, g := l.Stats()
	log.Debug().Int("answers", a).Int("allowed", g).Int("size", size).Msg("word lists loaded")
	return l, nil
}

// New builds Lists from in-memory slices. Every word must already be valid;
// the first invalid one is reported as an error.
func New(answers, extra []string, size int) (*Lists, error) {
	if size <= 0 || size > wordle.MaxSize {
		return nil, fmt.Errorf("words: size %d out of range", size)
	}
	l := &Lists{
		size:       size,
		answersSet: make(map[string]struct{}, len(answers)),
		allowedSet: make(map[string]struct{}, len(answers)+len(extra)),
	}
	for _, w := range answers {
		if !wellFormed(w, size) {
			return nil, fmt.Errorf("%w: answer %q", ErrInvalidWord, w)
		}
		if _, dup := l.answersSet[w]; dup {
			continue
		}
		l.answersSet[w] = struct{}{}
		l.answers = append(l.answers, w)
	}
	if len(l.answers) == 0 {
		return nil, ErrNoAnswers
	}
	// Answers first, then the extras, so selection order follows the
	// answer list's canonical order.
	for _, list := range [][]string{l.answers, extra} {
		for _, w := range list {
			if !wellFormed(w, size) {
				return nil, fmt.Errorf("%w: allowed %q", ErrInvalidWord, w)
			}
			if _, dup := l.allowedSet[w]; dup {
				continue
			}
			l.allowedSet[w] = struct{}{}
			l.allowed = append(l.allowed, w)
		}
	}
	l.universe = wordle.NewUniverse(l.answers)
	return l, nil
}

// readWordFile loads one word per line, lowercased and trimmed, keeping
// only valid words of the given size.
func readWordFile(path string, size int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var raw []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		raw = append(raw, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return normalize(raw, size), nil
}

// normalize lowercases, trims and filters lines to valid words.
func normalize(lines []string, size int) []string {
	var out []string
	for _, line := range lines {
		w := strings.TrimSpace(strings.ToLower(line))
		if wellFormed(w, size) {
			out = append(out, w)
		}
	}
	return out
}

func wellFormed(w string, size int) bool {
	return len(w) == size && isAlpha(w)
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Size is the configured word length.
func (l *Lists) Size() int { return l.size }

// Answers returns a copy of the answer list in canonical order.
func (l *Lists) Answers() []string { return append([]string(nil), l.answers...) }

// Allowed returns a copy of the allowed-guess list (answers first).
func (l *Lists) Allowed() []string { return append([]string(nil), l.allowed...) }

// Universe is the candidate universe built over the answers.
func (l *Lists) Universe() *wordle.Universe { return l.universe }

// IsAllowed reports whether w may be guessed.
func (l *Lists) IsAllowed(w string) bool {
	_, ok := l.allowedSet[w]
	return ok
}

// IsAnswer reports whether w can be the secret.
func (l *Lists) IsAnswer(w string) bool {
	_, ok := l.answersSet[w]
	return ok
}

// Check applies the legality rule: right length, letters only, and present
// in one of the lists. Input is expected to be lowercased already.
func (l *Lists) Check(w string) error {
	switch {
	case len(w) != l.size:
		return fmt.Errorf("%w: %q must have %d letters", ErrInvalidWord, w, l.size)
	case !isAlpha(w):
		return fmt.Errorf("%w: %q must be letters a-z", ErrInvalidWord, w)
	case !l.IsAllowed(w):
		return fmt.Errorf("%w: %q is not in the word list", ErrInvalidWord, w)
	}
	return nil
}

// RandomAnswer returns a cryptographically random answer.
func (l *Lists) RandomAnswer() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[n.Int64()]
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *Lists) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowed)
}
