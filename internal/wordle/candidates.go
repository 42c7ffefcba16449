// internal/wordle/candidates.go
//
// Candidate sets: the words still consistent with every evaluation seen.
//
// A Universe fixes the canonical order of the answer words once; a
// CandidateSet is an immutable bitset over that universe. Filtering always
// produces a new set, so a set handed out earlier is never modified and a
// set can only shrink across a session.

package wordle

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// ErrUnknownWord is returned when a word is not part of the universe.
var ErrUnknownWord = errors.New("word not in universe")

// Universe is the ordered, de-duplicated answer set.
type Universe struct {
	words []string
	index map[string]uint
}

// NewUniverse builds a universe from words, dropping duplicates but keeping
// first-seen order.
func NewUniverse(words []string) *Universe {
	u := &Universe{
		words: make([]string, 0, len(words)),
		index: make(map[string]uint, len(words)),
	}
	for _, w := range words {
		if _, dup := u.index[w]; dup {
			continue
		}
		u.index[w] = uint(len(u.words))
		u.words = append(u.words, w)
	}
	return u
}

// Len returns the number of words in the universe.
func (u *Universe) Len() int { return len(u.words) }

// Word returns the i-th word in canonical order.
func (u *Universe) Word(i int) string { return u.words[i] }

// Contains reports whether w is in the universe.
func (u *Universe) Contains(w string) bool {
	_, ok := u.index[w]
	return ok
}

// Full returns the set holding every word in the universe.
func (u *Universe) Full() CandidateSet {
	b := bitset.New(uint(len(u.words)))
	for i := range u.words {
		b.Set(uint(i))
	}
	return CandidateSet{u: u, bits: b}
}

// Subset returns the set holding exactly words.
func (u *Universe) Subset(words []string) (CandidateSet, error) {
	b := bitset.New(uint(len(u.words)))
	for _, w := range words {
		i, ok := u.index[w]
		if !ok {
			return CandidateSet{}, fmt.Errorf("%w: %q", ErrUnknownWord, w)
		}
		b.Set(i)
	}
	return CandidateSet{u: u, bits: b}, nil
}

// CandidateSet is an immutable subset of a Universe.
type CandidateSet struct {
	u    *Universe
	bits *bitset.BitSet
}

// Universe returns the universe the set is drawn from.
func (c CandidateSet) Universe() *Universe { return c.u }

// Len returns the number of candidates.
func (c CandidateSet) Len() int {
	if c.bits == nil {
		return 0
	}
	return int(c.bits.Count())
}

// Contains reports whether w is a candidate.
func (c CandidateSet) Contains(w string) bool {
	if c.bits == nil {
		return false
	}
	i, ok := c.u.index[w]
	return ok && c.bits.Test(i)
}

// Words lists the candidates in canonical universe order.
func (c CandidateSet) Words() []string {
	out := make([]string, 0, c.Len())
	c.each(func(_ uint, w string) { out = append(out, w) })
	return out
}

// First returns the first candidate in canonical order.
func (c CandidateSet) First() (string, bool) {
	if c.bits == nil {
		return "", false
	}
	i, ok := c.bits.NextSet(0)
	if !ok {
		return "", false
	}
	return c.u.words[i], true
}

func (c CandidateSet) each(fn func(i uint, w string)) {
	if c.bits == nil {
		return
	}
	for i, ok := c.bits.NextSet(0); ok; i, ok = c.bits.NextSet(i + 1) {
		fn(i, c.u.words[i])
	}
}

// Filter returns the candidates for which keep returns true.
func (c CandidateSet) Filter(keep func(w string) bool) CandidateSet {
	if c.bits == nil {
		return c
	}
	out := bitset.New(c.bits.Len())
	c.each(func(i uint, w string) {
		if keep(w) {
			out.Set(i)
		}
	})
	return CandidateSet{u: c.u, bits: out}
}

// SubsetOf reports whether every candidate in c is also in other.
func (c CandidateSet) SubsetOf(other CandidateSet) bool {
	if c.Len() == 0 {
		return true
	}
	if other.bits == nil || c.u != other.u {
		return false
	}
	return other.bits.IsSuperSet(c.bits)
}

// Equal reports whether both sets hold the same words of the same universe.
func (c CandidateSet) Equal(other CandidateSet) bool {
	return c.SubsetOf(other) && other.SubsetOf(c)
}
