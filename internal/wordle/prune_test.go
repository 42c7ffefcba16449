package wordle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []string{"facts", "testy", "words", "blank", "blang", "bland", "clamp", "clang"}

func TestPrune_Clang(t *testing.T) {
	u := NewUniverse(sample)
	ev, err := FromStatuses("clang", []LetterStatus{A, C, C, C, C})
	require.NoError(t, err)

	got := Prune(ev, "clang", u.Full())
	assert.Equal(t, []string{"blang"}, got.Words())
}

// A letter Absent at one position but matched elsewhere must not eliminate
// candidates that contain it at the matched position.
func TestPrune_AbsentLetterMatchedElsewhere(t *testing.T) {
	u := NewUniverse([]string{"abide", "speed", "eerie", "adieu"})
	ev, err := Evaluate("eerie", "abide")
	require.NoError(t, err)

	got := Prune(ev, "eerie", u.Full())
	assert.True(t, got.Contains("abide"))
	assert.False(t, got.Contains("eerie"))
}

func TestPrune_Present(t *testing.T) {
	u := NewUniverse([]string{"crane", "react", "trace", "caret"})
	ev, err := FromStatuses("zzzzc", []LetterStatus{A, A, A, A, P})
	require.NoError(t, err)

	got := Prune(ev, "zzzzc", u.Full())
	assert.ElementsMatch(t, []string{"crane", "react", "trace", "caret"}, got.Words())

	ev, err = FromStatuses("czzzz", []LetterStatus{P, A, A, A, A})
	require.NoError(t, err)
	got = Prune(ev, "czzzz", u.Full())
	assert.ElementsMatch(t, []string{"react", "trace"}, got.Words())
}

func TestPrune_KeepsGoalAndIsIdempotent(t *testing.T) {
	words := []string{
		"cigar", "rebut", "sissy", "humph", "awake", "blush", "focal", "evade",
		"naval", "serve", "heath", "dwarf", "model", "karma", "stink", "grade",
		"quiet", "bench", "abate", "feign", "major", "death", "fresh", "crust",
	}
	u := NewUniverse(words)
	r := rand.New(rand.NewSource(3))

	for i := 0; i < 200; i++ {
		guess := words[r.Intn(len(words))]
		goal := words[r.Intn(len(words))]
		ev, err := Evaluate(guess, goal)
		require.NoError(t, err)

		once := Prune(ev, guess, u.Full())
		twice := Prune(ev, guess, once)

		assert.True(t, once.Contains(goal), "goal %s dropped by %s", goal, guess)
		assert.True(t, once.Equal(twice))
		assert.LessOrEqual(t, once.Len(), u.Len())
		assert.True(t, once.SubsetOf(u.Full()))
	}
}

func TestPrune_DropsWrongLength(t *testing.T) {
	u := NewUniverse([]string{"abcde", "abcd"})
	ev, err := Evaluate("zzzzz", "abcde")
	require.NoError(t, err)

	got := Prune(ev, "zzzzz", u.Full())
	assert.Equal(t, []string{"abcde"}, got.Words())
}

func TestCandidateSet_Basics(t *testing.T) {
	u := NewUniverse([]string{"b", "a", "b", "c"})
	assert.Equal(t, 3, u.Len())

	full := u.Full()
	first, ok := full.First()
	require.True(t, ok)
	assert.Equal(t, "b", first)

	sub, err := u.Subset([]string{"c", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, sub.Words())
	assert.True(t, sub.SubsetOf(full))
	assert.False(t, full.SubsetOf(sub))

	_, err = u.Subset([]string{"zz"})
	assert.ErrorIs(t, err, ErrUnknownWord)

	var empty CandidateSet
	assert.Zero(t, empty.Len())
	_, ok = empty.First()
	assert.False(t, ok)
	assert.True(t, empty.SubsetOf(full))
}
