// internal/httpserver/routes_solver.go
//
// Solver endpoints.
//   - POST /evaluate → score one guess against one goal
//   - POST /suggest  → best next guess given a history of guesses + feedback
//   - POST /solve    → let the solver play a seed to the end
//
// Feedback strings use one character per letter: 0/b/x absent, 1/y
// present, 2/g correct.

package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/wordle"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// maxListed bounds how many remaining candidates /suggest spells out.
const maxListed = 20

func (s *Server) mountSolver(r chi.Router) {
	r.Post("/evaluate", s.handleEvaluate)
	r.Post("/suggest", s.handleSuggest)
	r.Post("/solve", s.handleSolve)
}

type evaluateReq struct {
	Guess string `json:"guess"`
	Goal  string `json:"goal"`
}

type evaluateRes struct {
	Marks   []int  `json:"marks"`
	Squares string `json:"squares"`
	Solved  bool   `json:"solved"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateReq
	if !decode(w, r, &req) {
		return
	}
	guess, goal := strings.ToLower(req.Guess), strings.ToLower(req.Goal)
	if size := s.deps.Lists.Size(); len(guess) != size || len(goal) != size {
		writeError(w, http.StatusBadRequest, "invalid_length")
		return
	}
	ev, err := wordle.Evaluate(guess, goal)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_length")
		return
	}
	writeJSON(w, http.StatusOK, evaluateRes{Marks: ev.Ints(), Squares: game.Squares(ev), Solved: ev.Solved()})
}

type historyEntry struct {
	Guess    string `json:"guess"`
	Feedback string `json:"feedback"`
}

type suggestReq struct {
	History []historyEntry `json:"history"`
}

type suggestRes struct {
	solver.Choice
	Remaining []string `json:"remaining,omitempty"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestReq
	if !decode(w, r, &req) {
		return
	}

	cands := s.deps.Lists.Universe().Full()
	for i, h := range req.History {
		guess := strings.ToLower(strings.TrimSpace(h.Guess))
		if err := s.deps.Lists.Check(guess); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_word")
			return
		}
		st, err := wordle.ParseStatuses(h.Feedback)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_feedback")
			return
		}
		ev, err := wordle.FromStatuses(guess, st)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_feedback")
			return
		}
		cands = wordle.Prune(ev, guess, cands)
		log.Debug().Int("step", i).Str("guess", guess).Int("candidates", cands.Len()).Msg("suggest prune")
	}

	ch, err := s.deps.Selector.Select(r.Context(), cands)
	if errors.Is(err, wordle.ErrEmptyCandidateSet) {
		writeError(w, http.StatusUnprocessableEntity, "no_candidates")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("suggest")
		writeError(w, http.StatusInternalServerError, "suggest_failed")
		return
	}
	res := suggestRes{Choice: ch}
	if cands.Len() <= maxListed {
		res.Remaining = cands.Words()
	}
	writeJSON(w, http.StatusOK, res)
}

type solveReq struct {
	Seed string `json:"seed"` // empty picks a random answer
}

type solveRes struct {
	solver.SeedResult
	Lines []string `json:"lines"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	g, err := s.deps.Solver.Solve(r.Context(), req.Seed)
	switch {
	case errors.Is(err, game.ErrInvalidSeed):
		writeError(w, http.StatusBadRequest, "invalid_seed")
		return
	case errors.Is(err, words.ErrInvalidWord):
		writeError(w, http.StatusBadRequest, "invalid_word")
		return
	case err != nil:
		log.Error().Err(err).Str("seed", req.Seed).Msg("solve")
		writeError(w, http.StatusInternalServerError, "solve_failed")
		return
	}

	res := solveRes{
		SeedResult: solver.SeedResult{Seed: g.Answer, Guesses: len(g.Guesses), Solved: g.Won(), Path: g.Path()},
		Lines:      make([]string, len(g.Guesses)),
	}
	for i, gs := range g.Guesses {
		res.Lines[i] = gs.String()
	}
	writeJSON(w, http.StatusOK, res)
}
