package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/request"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/response"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/ashtrail"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/player"
)

// AdminHandler handles moderation and bookkeeping endpoints
type AdminHandler struct {
	players  *player.Service
	ashtrail *ashtrail.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(players *player.Service, ashtrailService *ashtrail.Service) *AdminHandler {
	return &AdminHandler{
		players:  players,
		ashtrail: ashtrailService,
	}
}

// ListPlayers handles GET /api/dbs2/admin/players
func (h *AdminHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Player, 0, len(players))
	for _, p := range players {
		out = append(out, response.PlayerFromModel(p))
	}

	response.JSON(w, http.StatusOK, response.PlayersResponse{Players: out, Total: len(out)})
}

// GetPlayer handles GET /api/dbs2/admin/players/{userKey}
func (h *AdminHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	key := model.UserKey(mux.Vars(r)["userKey"])

	p, err := h.players.Get(r.Context(), key)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// UpdatePlayer handles PUT /api/dbs2/admin/players/{userKey}. It takes
// the same field map as the player's own update endpoint, plus a
// {"reset": true} form that restores the default state.
func (h *AdminHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	key := model.UserKey(mux.Vars(r)["userKey"])

	var req request.UpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if raw, ok := req["reset"]; ok {
		var reset bool
		if err := json.Unmarshal(raw, &reset); err != nil || !reset {
			WriteError(w, NewInvalidRequestError("reset must be true"))
			return
		}
		p, err := h.players.Reset(r.Context(), key)
		if err != nil {
			WriteError(w, err)
			return
		}
		response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
		return
	}

	mutations, err := req.Mutations()
	if err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.players.Update(r.Context(), key, mutations)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// DeletePlayer handles DELETE /api/dbs2/admin/players/{userKey}
func (h *AdminHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	key := model.UserKey(mux.Vars(r)["userKey"])

	if err := h.players.Delete(r.Context(), key); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// BulkUpdate handles POST /api/dbs2/admin/bulk
func (h *AdminHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req request.BulkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	affected, err := h.players.BulkUpdate(r.Context(), req.Action, req.Amount)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BulkResponse{Action: req.Action, Affected: affected})
}

// Stats handles GET /api/dbs2/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.players.GetStats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsResponse{Stats: stats})
}

// PurgeGuests handles DELETE /api/dbs2/admin/guests
func (h *AdminHandler) PurgeGuests(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.ashtrail.PurgeGuestRuns(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PurgeResponse{DeletedRuns: deleted})
}
