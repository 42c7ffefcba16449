// internal/httpserver/routes_admin.go
//
// Admin endpoints (mounted under /admin behind requireAdmin).
//   - GET    /admin/runs/latest/hardest?limit=N → hardest seeds of the last solve-all run
//   - DELETE /admin/cache                       → purge memoized suggestions

package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/store"
)

func (s *Server) mountAdmin(r chi.Router) {
	r.Get("/runs/latest/hardest", s.handleHardest)
	r.Delete("/cache", s.handlePurgeCache)
}

type hardestRes struct {
	Run     store.Run       `json:"run"`
	Hardest []store.HardRow `json:"hardest"`
}

func (s *Server) handleHardest(w http.ResponseWriter, r *http.Request) {
	if s.deps.Runs == nil {
		writeError(w, http.StatusServiceUnavailable, "no_database")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 1000 {
			writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = n
	}

	run, err := s.deps.Runs.Latest(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no_runs")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("latest run")
		writeError(w, http.StatusInternalServerError, "query_failed")
		return
	}
	rows, err := s.deps.Runs.Hardest(r.Context(), run.ID, limit)
	if err != nil {
		log.Error().Err(err).Int64("run", run.ID).Msg("hardest seeds")
		writeError(w, http.StatusInternalServerError, "query_failed")
		return
	}
	writeJSON(w, http.StatusOK, hardestRes{Run: run, Hardest: rows})
}

func (s *Server) handlePurgeCache(w http.ResponseWriter, r *http.Request) {
	if s.deps.Cache == nil {
		writeError(w, http.StatusServiceUnavailable, "no_cache")
		return
	}
	if err := s.deps.Cache.Purge(r.Context()); err != nil {
		log.Error().Err(err).Msg("purge cache")
		writeError(w, http.StatusInternalServerError, "purge_failed")
		return
	}
	log.Info().Str("by", subject(r)).Msg("suggestion cache purged via admin api")
	w.WriteHeader(http.StatusNoContent)
}
