package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sanathkumarr/hitwicket-backend/internal/entity"
)

const defaultMatchLimit = 20

type gameManager interface {
	Snapshot() entity.Game
}

type matchRepo interface {
	List(ctx context.Context, limit int) ([]entity.MatchRecord, error)
}

type Handlers struct {
	logger *slog.Logger

	manager   gameManager
	matchRepo matchRepo
}

func NewHandlers(logger *slog.Logger, manager gameManager, matchRepo matchRepo) *Handlers {
	return &Handlers{
		logger: logger.With("component", "rest"),

		manager:   manager,
		matchRepo: matchRepo,
	}
}

func (that *Handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// GameHandler serves the current room snapshot, the same state every connected
// socket last received.
func (that *Handlers) GameHandler(w http.ResponseWriter, _ *http.Request) {
	snapshot := that.manager.Snapshot()
	that.writeJSON(w, snapshot)
}

// MatchesHandler serves the archive of finished matches, most recent first.
func (that *Handlers) MatchesHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultMatchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := that.matchRepo.List(r.Context(), limit)
	if err != nil {
		that.logger.Error("failed to list matches", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, records)
}

func (that *Handlers) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
