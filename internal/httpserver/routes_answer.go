// internal/httpserver/routes_answer.go
//
// Answer endpoints:
//   - GET /api/today         → today's answer
//   - GET /api/wordle/{date} → the answer for YYYY-MM-DD
//   - GET /api/answers       → answers resolved so far, newest first
//
// Both return {"word":"<lowercase>"} on success and {"error":"..."} when no
// source yields an answer.

package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle-answer/internal/daily"
	"github.com/robalobadob/wordle-answer/internal/words"
)

const (
	msgTodayNotFound = "Could not find the daily Wordle answer"
	msgInvalidDate   = "Invalid date format. Use YYYY-MM-DD"
)

type wordRes struct {
	Word string `json:"word"`
}

func (s *Server) mountAnswers(r chi.Router) {
	r.Get("/api/today", s.handleToday)
	r.Get("/api/wordle/{date}", s.handleWordle)
	r.Get("/api/answers", s.handleAnswers)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.answers.Today(r.Context())
	if !ok {
		writeError(w, http.StatusOK, msgTodayNotFound)
		return
	}
	writeJSON(w, http.StatusOK, wordRes{Word: strings.ToLower(rec.Answer)})
}

func (s *Server) handleWordle(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	rec, ok, err := s.answers.ForKey(r.Context(), date)
	if errors.Is(err, daily.ErrInvalidDate) {
		writeError(w, http.StatusBadRequest, msgInvalidDate)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	if !ok {
		writeError(w, http.StatusOK, "Could not find the Wordle answer for "+date)
		return
	}
	writeJSON(w, http.StatusOK, wordRes{Word: strings.ToLower(rec.Answer)})
}

// handleAnswers lists stored answers. ?limit=N caps the list (default 30,
// 0 for all).
func (s *Server) handleAnswers(w http.ResponseWriter, r *http.Request) {
	limit := 30
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	recs, err := s.answers.Recent(r.Context(), limit)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("list answers")
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	if recs == nil {
		recs = []words.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}
