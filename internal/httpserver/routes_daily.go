// internal/httpserver/routes_daily.go
//
// The "seed of the day".
//   - POST /daily/new → start a game whose answer is today's seed
//
// Every caller gets the same answer for a UTC date; the word comes from
// HMAC(DAILY_SALT, date) over the answer list.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle-solver/internal/daily"
)

func (s *Server) mountDaily(r chi.Router) {
	r.Post("/daily/new", s.handleDailyNew)
}

// dailyAnswer returns today's date key and answer.
func (s *Server) dailyAnswer() (date, answer string) {
	now := s.now()
	return daily.DateKey(now), daily.Answer(now, s.opts.DailySalt, s.deps.Lists.Answers())
}

func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	date, answer := s.dailyAnswer()
	g, ok := s.startGame(w, r, answer, nil)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newGameRes{
		GameID:     g.ID,
		Size:       s.deps.Lists.Size(),
		MaxGuesses: g.MaxGuesses,
		Date:       date,
	})
}
