// internal/httpserver/routes_game.go
//
// Manual play over HTTP.
//   - POST /game/new    → start a game (random or fixed answer)
//   - POST /game/guess  → submit a guess
//   - GET  /game/{id}   → current state and history
//
// The answer is only revealed once the game is over.

package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
	r.Get("/game/{id}", s.handleGetGame)
}

type newGameReq struct {
	Answer     string `json:"answer"`     // optional fixed answer (testing)
	MaxGuesses *int   `json:"maxGuesses"` // optional; 0 disables the budget
}

type newGameRes struct {
	GameID     string `json:"gameId"`
	Size       int    `json:"size"`
	MaxGuesses int    `json:"maxGuesses"`
	Date       string `json:"date,omitempty"`
}

type guessView struct {
	Word       string `json:"word"`
	Marks      []int  `json:"marks"` // 0 absent, 1 present, 2 correct
	Squares    string `json:"squares"`
	Candidates int    `json:"candidates"`
}

type gameView struct {
	GameID     string      `json:"gameId"`
	State      game.State  `json:"state"`
	Guesses    []guessView `json:"guesses"`
	Remaining  int         `json:"remaining"` // -1 without a budget
	Candidates int         `json:"candidates"`
	Answer     string      `json:"answer,omitempty"`
}

func viewGuess(g game.Guess) guessView {
	return guessView{
		Word:       g.Word,
		Marks:      g.Evaluation.Ints(),
		Squares:    game.Squares(g.Evaluation),
		Candidates: g.Candidates.Len(),
	}
}

func viewGame(g *game.Game) gameView {
	v := gameView{
		GameID:     g.ID,
		State:      g.State,
		Guesses:    make([]guessView, len(g.Guesses)),
		Remaining:  g.Remaining(),
		Candidates: g.Candidates().Len(),
	}
	for i, gs := range g.Guesses {
		v.Guesses[i] = viewGuess(gs)
	}
	if g.Finished() {
		v.Answer = g.Answer
	}
	return v
}

// startGame creates and stores a game. Errors are already written to w.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, answer string, maxGuesses *int) (*game.Game, bool) {
	budget := s.opts.MaxGuesses
	if maxGuesses != nil {
		budget = *maxGuesses
	}
	if budget < 0 {
		writeError(w, http.StatusBadRequest, "invalid_max_guesses")
		return nil, false
	}
	g, err := game.New(s.deps.Lists, answer, budget)
	if errors.Is(err, game.ErrInvalidSeed) {
		writeError(w, http.StatusBadRequest, "invalid_seed")
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Msg("new game")
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return nil, false
	}
	s.mu.Lock()
	err = s.deps.Games.Save(r.Context(), g)
	s.mu.Unlock()
	if err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return nil, false
	}
	log.Debug().Str("game", g.ID).Int("maxGuesses", g.MaxGuesses).Msg("game started")
	return g, true
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	g, ok := s.startGame(w, r, req.Answer, req.MaxGuesses)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newGameRes{GameID: g.ID, Size: s.deps.Lists.Size(), MaxGuesses: g.MaxGuesses})
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	guessView
	State     game.State `json:"state"`
	Remaining int        `json:"remaining"`
	Answer    string     `json:"answer,omitempty"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if !decode(w, r, &req) {
		return
	}
	g, err := s.deps.Games.Get(r.Context(), req.GameID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}

	s.mu.Lock()
	res, code, msg := s.applyGuess(r, g, req.Guess)
	s.mu.Unlock()
	if msg != "" {
		writeError(w, code, msg)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// applyGuess plays word on g, saves it and builds the response.
// Callers hold s.mu. A non-empty msg is the error to report with code.
func (s *Server) applyGuess(r *http.Request, g *game.Game, word string) (res guessRes, code int, msg string) {
	gs, err := g.ApplyGuess(word)
	switch {
	case errors.Is(err, game.ErrGameFinished):
		return res, http.StatusConflict, "game_finished"
	case errors.Is(err, words.ErrInvalidWord):
		return res, http.StatusBadRequest, "invalid_word"
	case err != nil:
		log.Error().Err(err).Str("game", g.ID).Msg("apply guess")
		return res, http.StatusInternalServerError, "guess_failed"
	}
	if err := s.deps.Games.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Str("game", g.ID).Msg("save game")
		return res, http.StatusInternalServerError, "save_failed"
	}

	res = guessRes{guessView: viewGuess(gs), State: g.State, Remaining: g.Remaining()}
	if g.Finished() {
		res.Answer = g.Answer
	}
	return res, http.StatusOK, ""
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.deps.Games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	s.mu.Lock()
	v := viewGame(g)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, v)
}
