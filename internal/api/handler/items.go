package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/request"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/response"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/gamedata"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
)

// ItemsHandler handles the legacy file-backed item store endpoints
type ItemsHandler struct {
	store *gamedata.Store
}

// NewItemsHandler creates a new items handler
func NewItemsHandler(store *gamedata.Store) *ItemsHandler {
	return &ItemsHandler{
		store: store,
	}
}

// List handles GET /api/dbs2/items
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.ItemsResponse{Items: h.store.Items()})
}

// Get handles GET /api/dbs2/items/{itemId}
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["itemId"]
	id, err := strconv.Atoi(rawID)
	if err != nil {
		WriteError(w, NewInvalidRequestError("invalid item id"))
		return
	}

	item, err := h.store.Item(id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, item)
}

// Random handles GET /api/dbs2/items/random
func (h *ItemsHandler) Random(w http.ResponseWriter, r *http.Request) {
	item, ok := h.store.RandomItem()
	if !ok {
		WriteError(w, model.ErrItemNotFound)
		return
	}

	response.JSON(w, http.StatusOK, item)
}

// Count handles GET /api/dbs2/items/count
func (h *ItemsHandler) Count(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.CountResponse{Count: h.store.Count()})
}

// RotatePassword handles POST /api/dbs2/items/passwords/rotate
func (h *ItemsHandler) RotatePassword(w http.ResponseWriter, r *http.Request) {
	var req request.RotatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Old == "" || req.New == "" {
		WriteError(w, NewInvalidRequestError("old and new passwords are required"))
		return
	}

	passwords, err := h.store.RotatePassword(req.Old, req.New)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PasswordsResponse{Passwords: passwords})
}
