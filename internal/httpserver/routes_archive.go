package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle-answer/internal/words"
)

type refreshRes struct {
	Records   int       `json:"records"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Server) mountArchive(r chi.Router) {
	r.Get("/api/archive", s.handleArchive)
	if s.opts.AdminSecret != "" {
		r.With(requireAdmin([]byte(s.opts.AdminSecret))).Post("/api/archive/refresh", s.handleArchiveRefresh)
	}
}

// handleArchive lists snapshot records, newest first. ?limit=N trims the list.
func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	recs := []words.Record{}
	if s.archive != nil {
		got, err := s.archive.Records(r.Context())
		if err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("archive records")
			writeError(w, http.StatusBadGateway, "Archive unavailable")
			return
		}
		if got != nil {
			recs = got
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		if n < len(recs) {
			recs = recs[:n]
		}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleArchiveRefresh(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil || !s.archive.Enabled() {
		writeError(w, http.StatusConflict, "Archive URL not configured")
		return
	}
	logger := hlog.FromRequest(r).With().Str("admin", adminSubject(r.Context())).Logger()
	snap, err := s.archive.Refresh(r.Context())
	if err != nil {
		logger.Warn().Err(err).Msg("archive refresh")
		writeError(w, http.StatusBadGateway, "Archive refresh failed")
		return
	}
	logger.Info().Int("records", len(snap.Records)).Msg("archive refreshed")
	writeJSON(w, http.StatusOK, refreshRes{Records: len(snap.Records), UpdatedAt: snap.UpdatedAt})
}
