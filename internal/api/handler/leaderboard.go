package handler

import (
	"net/http"
	"strconv"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/response"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/leaderboard"
)

// LeaderboardHandler handles the ranking endpoints
type LeaderboardHandler struct {
	leaderboard *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboard: leaderboardService,
	}
}

// parseLimit reads an optional ?limit= query parameter, falling back to
// the service default on absence or garbage
func parseLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return leaderboard.DefaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return leaderboard.DefaultLimit
	}
	return limit
}

// Global handles GET /api/dbs2/leaderboard. With ?game= it ranks by
// that minigame's score instead of total satoshis.
func (h *LeaderboardHandler) Global(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)

	if game := r.URL.Query().Get("game"); game != "" {
		entries, err := h.leaderboard.Minigame(r.Context(), game, limit)
		if err != nil {
			WriteError(w, err)
			return
		}
		response.JSON(w, http.StatusOK, response.ScoreLeaderboardFromEntries(game, entries))
		return
	}

	entries, err := h.leaderboard.Global(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromEntries(entries))
}

// Book handles GET /api/dbs2/ashtrail/leaderboard
func (h *LeaderboardHandler) Book(w http.ResponseWriter, r *http.Request) {
	book := model.BookID(r.URL.Query().Get("book"))
	if !book.Valid() {
		WriteError(w, model.ErrInvalidBook)
		return
	}

	entries, err := h.leaderboard.Book(r.Context(), book, parseLimit(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BookLeaderboardFromEntries(book, entries))
}
