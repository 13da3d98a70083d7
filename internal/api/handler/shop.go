package handler

import (
	"encoding/json"
	"net/http"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/middleware"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/request"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/response"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/shop"
)

// ShopHandler handles the scrap shop endpoints
type ShopHandler struct {
	shop *shop.Service
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopService *shop.Service) *ShopHandler {
	return &ShopHandler{
		shop: shopService,
	}
}

// Catalog handles GET /api/dbs2/shop
func (h *ShopHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.ShopResponse{Items: h.shop.Catalog()})
}

// Purchase handles POST /api/dbs2/shop/purchase
func (h *ShopHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	key := middleware.MustGetUserKey(r.Context())

	var req request.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ItemID == "" {
		WriteError(w, NewInvalidRequestError("item_id is required"))
		return
	}

	receipt, err := h.shop.Purchase(r.Context(), key, req.ItemID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PurchaseFromReceipt(receipt))
}
