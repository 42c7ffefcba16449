package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLists(t *testing.T) *Lists {
	t.Helper()
	l, err := New([]string{"valid", "crane", "slate"}, []string{"salet", "crane"}, 5)
	require.NoError(t, err)
	return l
}

func TestCheck_Case(t *testing.T) {
	l := testLists(t)
	assert.NoError(t, l.Check("valid"))
	assert.ErrorIs(t, l.Check("VaLiD"), ErrInvalidWord)
	assert.ErrorIs(t, l.Check("VALID"), ErrInvalidWord)
}

func TestCheck_Length(t *testing.T) {
	l := testLists(t)
	assert.ErrorIs(t, l.Check("arisen"), ErrInvalidWord)
	assert.ErrorIs(t, l.Check("rise"), ErrInvalidWord)
}

func TestCheck_Numbers(t *testing.T) {
	l := testLists(t)
	assert.ErrorIs(t, l.Check("val1d"), ErrInvalidWord)
	assert.ErrorIs(t, l.Check("12345"), ErrInvalidWord)
}

func TestCheck_NotListed(t *testing.T) {
	l := testLists(t)
	assert.ErrorIs(t, l.Check("zzzzz"), ErrInvalidWord)
	assert.NoError(t, l.Check("salet"))
}

func TestNew_AllowedOrderAndDedup(t *testing.T) {
	l := testLists(t)
	assert.Equal(t, []string{"valid", "crane", "slate"}, l.Answers())
	assert.Equal(t, []string{"valid", "crane", "slate", "salet"}, l.Allowed())
	assert.True(t, l.IsAnswer("crane"))
	assert.False(t, l.IsAnswer("salet"))
	assert.Equal(t, 3, l.Universe().Len())

	a, g := l.Stats()
	assert.Equal(t, 3, a)
	assert.Equal(t, 4, g)
}

func TestNew_Rejects(t *testing.T) {
	_, err := New(nil, []string{"crane"}, 5)
	assert.ErrorIs(t, err, ErrNoAnswers)

	_, err = New([]string{"Crane"}, nil, 5)
	assert.ErrorIs(t, err, ErrInvalidWord)

	_, err = New([]string{"crane"}, nil, 0)
	assert.Error(t, err)
}

func TestLoad_Embedded(t *testing.T) {
	l, err := Load(Source{})
	require.NoError(t, err)

	a, g := l.Stats()
	assert.Greater(t, a, 100)
	assert.Greater(t, g, a)
	for _, w := range l.Answers() {
		require.NoError(t, l.Check(w))
	}
	assert.True(t, l.IsAnswer(l.RandomAnswer()))
}

func TestLoad_Files(t *testing.T) {
	dir := t.TempDir()
	answers := filepath.Join(dir, "answers.txt")
	allowed := filepath.Join(dir, "allowed.txt")
	require.NoError(t, os.WriteFile(answers, []byte("Crane\n slate \nbad\nsix666\n"), 0o644))
	require.NoError(t, os.WriteFile(allowed, []byte("salet\nroate\n"), 0o644))

	l, err := Load(Source{AnswersFile: answers, AllowedFile: allowed, Size: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, l.Answers())
	assert.True(t, l.IsAllowed("roate"))

	l, err = Load(Source{AllowedFile: allowed})
	require.NoError(t, err)
	assert.Equal(t, []string{"salet", "roate"}, l.Answers())

	_, err = Load(Source{AnswersFile: filepath.Join(dir, "missing.txt"), AllowedFile: allowed})
	assert.Error(t, err)
}
