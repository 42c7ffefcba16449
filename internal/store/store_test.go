package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "solver.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 2, n)

	extra := fstest.MapFS{
		"001_suggestions.sql": {Data: []byte("SELECT 1;")},
		"003_notes.sql":       {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT);")},
	}
	require.NoError(t, Migrate(db, extra))
	require.NoError(t, Migrate(db, extra))
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 3, n)

	_, err := db.Exec(`INSERT INTO notes (body) VALUES ('ok')`)
	assert.NoError(t, err)
}

func TestMigrate_BadScriptRollsBack(t *testing.T) {
	db := openTestDB(t)
	bad := fstest.MapFS{"009_bad.sql": {Data: []byte("CREATE TABLE x (id INTEGER); NOT SQL;")}}

	require.Error(t, Migrate(db, bad))
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations WHERE name='009_bad.sql'`).Scan(&n))
	assert.Zero(t, n)
}

func TestSuggestionCache(t *testing.T) {
	ctx := context.Background()
	c := NewSuggestionCache(openTestDB(t))

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "k", solver.Entry{Word: "crane", Candidates: 40}))
	require.NoError(t, c.Put(ctx, "k", solver.Entry{Word: "slate", Candidates: 41}))
	e, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, solver.Entry{Word: "slate", Candidates: 41}, e)

	n, err := c.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, c.Purge(ctx))
	n, err = c.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSuggestionCache_BehindLRU(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	back := NewSuggestionCache(db)
	front, err := solver.NewLRUCache(8)
	require.NoError(t, err)
	tiered := solver.Tiered{Front: front, Back: back}

	require.NoError(t, tiered.Put(ctx, "k", solver.Entry{Word: "roate", Candidates: 12}))

	// A fresh front still finds the persisted entry.
	fresh, err := solver.NewLRUCache(8)
	require.NoError(t, err)
	e, ok, err := solver.Tiered{Front: fresh, Back: back}.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, solver.Entry{Word: "roate", Candidates: 12}, e)
	filled, ok, err := fresh.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 12, filled.Candidates)

	require.NoError(t, tiered.Purge(ctx))
	n, err := back.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRuns(t *testing.T) {
	ctx := context.Background()
	runs := NewRuns(openTestDB(t))

	_, err := runs.Latest(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	rep := &solver.Report{
		Budget: 2,
		Results: []solver.SeedResult{
			{Seed: "abate", Guesses: 1, Solved: true, Path: []string{"abate"}},
			{Seed: "crust", Guesses: 3, Solved: true, Path: []string{"abate", "stink", "crust"}},
			{Seed: "cigar", Guesses: 2, Solved: true, Path: []string{"abate", "cigar"}},
			{Seed: "humph", Guesses: 3, Solved: true, Path: []string{"abate", "sissy", "humph"}},
			{Seed: "fixer", Guesses: 2, Solved: false, Path: []string{"abate", "cigar"}},
		},
		Histogram: map[int]int{1: 1, 2: 2, 3: 2},
		Failed:    []string{"crust", "fixer", "humph"},
		Elapsed:   1500 * time.Millisecond,
	}
	started := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	id, err := runs.SaveRun(ctx, started, rep)
	require.NoError(t, err)
	assert.Positive(t, id)

	latest, err := runs.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, Run{
		ID: id, StartedAt: started, Budget: 2, Seeds: 5, Failed: 3,
		Mean: rep.Mean(), ElapsedMs: 1500,
	}, latest)

	hard, err := runs.Hardest(ctx, id, 3)
	require.NoError(t, err)
	require.Len(t, hard, 3)
	assert.Equal(t, HardRow{Seed: "fixer", Guesses: 2, Solved: false, Path: []string{"abate", "cigar"}}, hard[0])
	assert.Equal(t, "crust", hard[1].Seed)
	assert.Equal(t, "humph", hard[2].Seed)
	assert.Equal(t, []string{"abate", "sissy", "humph"}, hard[2].Path)

	second, err := runs.SaveRun(ctx, started.Add(time.Hour), &solver.Report{Budget: 6, Histogram: map[int]int{}})
	require.NoError(t, err)
	latest, err = runs.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, latest.ID)
	assert.Zero(t, latest.Seeds)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	l, err := words.New([]string{"blank", "blang", "bland"}, nil, 5)
	require.NoError(t, err)

	m := NewMemoryStore(2, 0)
	_, err = m.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	finished, err := game.New(l, "blank", 6)
	require.NoError(t, err)
	_, err = finished.ApplyGuess("blank")
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, finished))

	var playing []*game.Game
	for i := 0; i < 2; i++ {
		g, err := game.New(l, "bland", 6)
		require.NoError(t, err)
		require.NoError(t, m.Save(ctx, g))
		playing = append(playing, g)
	}

	// The finished game is dropped to honor the limit.
	assert.Equal(t, 2, m.Len())
	_, err = m.Get(ctx, finished.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	for _, g := range playing {
		got, err := m.Get(ctx, g.ID)
		require.NoError(t, err)
		assert.Same(t, g, got)
	}

	// Games in play are kept even beyond the limit.
	g, err := game.New(l, "blang", 6)
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, g))
	assert.Equal(t, 3, m.Len())
}

func TestMemoryStore_IdleEviction(t *testing.T) {
	ctx := context.Background()
	l, err := words.New([]string{"blank", "blang", "bland"}, nil, 5)
	require.NoError(t, err)

	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	m := NewMemoryStore(1, time.Hour)
	m.now = func() time.Time { return now }

	stale, err := game.New(l, "bland", 6)
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, stale))

	now = now.Add(2 * time.Hour)
	fresh, err := game.New(l, "blank", 6)
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, fresh))

	assert.Equal(t, 1, m.Len())
	_, err = m.Get(ctx, stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// A recently saved game in play survives even over the limit.
	other, err := game.New(l, "blang", 6)
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, other))
	assert.Equal(t, 2, m.Len())
}

func TestMemoryStore_EvictsOnSavedState(t *testing.T) {
	ctx := context.Background()
	l, err := words.New([]string{"blank", "blang", "bland"}, nil, 5)
	require.NoError(t, err)
	m := NewMemoryStore(1, 0)

	g1, err := game.New(l, "blank", 6)
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, g1))

	// Finishing without saving is invisible to eviction.
	_, err = g1.ApplyGuess("blank")
	require.NoError(t, err)
	g2, err := game.New(l, "bland", 6)
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, g2))
	assert.Equal(t, 2, m.Len())

	require.NoError(t, m.Save(ctx, g1))
	assert.Equal(t, 1, m.Len())
	_, err = m.Get(ctx, g1.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
