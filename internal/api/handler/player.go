package handler

import (
	"encoding/json"
	"net/http"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/middleware"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/request"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/response"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/player"
)

// PlayerHandler handles player state endpoints
type PlayerHandler struct {
	players *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players *player.Service) *PlayerHandler {
	return &PlayerHandler{
		players: players,
	}
}

// Get handles GET /api/dbs2/player
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := middleware.MustGetUserKey(r.Context())

	p, err := h.players.GetOrCreate(r.Context(), key)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Update handles PUT /api/dbs2/player
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	key := middleware.MustGetUserKey(r.Context())

	var req request.UpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
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

// GetCrypto handles GET /api/dbs2/crypto
func (h *PlayerHandler) GetCrypto(w http.ResponseWriter, r *http.Request) {
	key := middleware.MustGetUserKey(r.Context())

	p, err := h.players.GetOrCreate(r.Context(), key)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CryptoResponse{Crypto: p.Satoshis})
}

// UpdateCrypto handles PUT /api/dbs2/crypto
func (h *PlayerHandler) UpdateCrypto(w http.ResponseWriter, r *http.Request) {
	key := middleware.MustGetUserKey(r.Context())

	var req request.CryptoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	var mutation model.Mutation
	switch {
	case req.Crypto != nil:
		mutation = model.SetBalance{Coin: model.CoinSatoshis, Amount: float64(*req.Crypto)}
	case req.Add != nil:
		mutation = model.AddBalance{Coin: model.CoinSatoshis, Delta: float64(*req.Add)}
	default:
		WriteError(w, NewInvalidRequestError("crypto or add is required"))
		return
	}

	p, err := h.players.Update(r.Context(), key, []model.Mutation{mutation})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CryptoResponse{Crypto: p.Satoshis})
}

// GetInventory handles GET /api/dbs2/inventory
func (h *PlayerHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	key := middleware.MustGetUserKey(r.Context())

	p, err := h.players.GetOrCreate(r.Context(), key)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.InventoryResponse{Inventory: p.Inventory})
}

// AddInventoryItem handles POST /api/dbs2/inventory
func (h *PlayerHandler) AddInventoryItem(w http.ResponseWriter, r *http.Request) {
	key := middleware.MustGetUserKey(r.Context())

	var req request.AddInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	inventory, err := h.players.AddInventoryItem(r.Context(), key, req.Name, req.FoundAt)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.InventoryResponse{Inventory: inventory})
}

// RemoveInventoryItem handles DELETE /api/dbs2/inventory
func (h *PlayerHandler) RemoveInventoryItem(w http.ResponseWriter, r *http.Request) {
	key := middleware.MustGetUserKey(r.Context())

	var req request.RemoveInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	// An out-of-range index is a no-op; the refreshed inventory is
	// returned either way
	_, _, err := h.players.RemoveInventoryItem(r.Context(), key, req.Index)
	if err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.players.GetOrCreate(r.Context(), key)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.InventoryResponse{Inventory: p.Inventory})
}

// GetScores handles GET /api/dbs2/scores
func (h *PlayerHandler) GetScores(w http.ResponseWriter, r *http.Request) {
	key := middleware.MustGetUserKey(r.Context())

	p, err := h.players.GetOrCreate(r.Context(), key)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoresResponse{Scores: p.Scores})
}

// UpdateScore handles PUT /api/dbs2/scores
func (h *PlayerHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	key := middleware.MustGetUserKey(r.Context())

	var req request.UpdateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Game == "" {
		WriteError(w, NewInvalidRequestError("game is required"))
		return
	}
	if req.Score == nil {
		WriteError(w, NewInvalidRequestError("score is required"))
		return
	}

	isHigh, scores, err := h.players.UpdateScore(r.Context(), key, req.Game, *req.Score)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoresResponse{IsHighScore: isHigh, Scores: scores})
}

// GetMinigames handles GET /api/dbs2/minigames
func (h *PlayerHandler) GetMinigames(w http.ResponseWriter, r *http.Request) {
	key := middleware.MustGetUserKey(r.Context())

	p, err := h.players.GetOrCreate(r.Context(), key)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MinigamesFromModel(p))
}

// UpdateMinigames handles PUT /api/dbs2/minigames
func (h *PlayerHandler) UpdateMinigames(w http.ResponseWriter, r *http.Request) {
	key := middleware.MustGetUserKey(r.Context())

	var req request.MinigamesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	mutations := make([]model.Mutation, 0, len(req))
	for name, completed := range req {
		game := model.MinigameID(name)
		if !game.Valid() {
			WriteError(w, model.ErrInvalidGame)
			return
		}
		// Completion can only be set here, never cleared; clearing is
		// an admin reset capability
		if completed {
			mutations = append(mutations, model.SetCompleted{Game: game, Done: true})
		}
	}

	p, err := h.players.Update(r.Context(), key, mutations)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MinigamesFromModel(p))
}
