package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/omarshaarawi/tempad/internal/api/fpl"
	"github.com/omarshaarawi/tempad/internal/models"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

type errorResponse struct {
	Error string `json:"error"`
}

type historyResponse struct {
	ManagerID   int                    `json:"managerId"`
	TeamName    string                 `json:"teamName"`
	ManagerName string                 `json:"managerName"`
	History     []models.GameweekScore `json:"history"`
}

type healthResponse struct {
	Status             string     `json:"status"`
	ReferenceUpdatedAt *time.Time `json:"referenceUpdatedAt,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if updated := s.reference.ReferenceUpdatedAt(); !updated.IsZero() {
		resp.ReferenceUpdatedAt = &updated
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	managerID, err := managerIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	history, scores, err := s.timelines.ScoreHistory(r.Context(), managerID)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{
		ManagerID:   history.ManagerID,
		TeamName:    history.TeamName,
		ManagerName: history.ManagerName,
		History:     scores,
	})
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	managerID, err := managerIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := s.timelines.Report(r.Context(), managerID)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, errors.New("query parameter q is required"))
		return
	}

	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = min(n, maxSearchLimit)
	}

	players, err := s.reference.SearchPlayers(r.Context(), query, limit)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	if players == nil {
		players = []models.Element{}
	}

	writeJSON(w, http.StatusOK, players)
}

func managerIDParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "managerID")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid manager id %q", raw)
	}
	return id, nil
}

func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, fpl.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	slog.Error("Request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusBadGateway, err)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
