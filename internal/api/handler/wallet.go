package handler

import (
	"encoding/json"
	"net/http"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/middleware"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/request"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/response"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/prices"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/wallet"
)

// WalletHandler handles wallet and market data endpoints
type WalletHandler struct {
	wallet *wallet.Service
	prices *prices.Cache
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService *wallet.Service, priceCache *prices.Cache) *WalletHandler {
	return &WalletHandler{
		wallet: walletService,
		prices: priceCache,
	}
}

// Get handles GET /api/dbs2/wallet
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := middleware.MustGetUserKey(r.Context())

	balances, err := h.wallet.Wallet(r.Context(), key)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.WalletResponse{Balances: balances})
}

// Convert handles POST /api/dbs2/wallet/convert
func (h *WalletHandler) Convert(w http.ResponseWriter, r *http.Request) {
	key := middleware.MustGetUserKey(r.Context())

	var req request.ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	conversion, err := h.wallet.Convert(r.Context(), key, model.CoinID(req.From), model.CoinID(req.To), req.Amount)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, conversion)
}

// BitcoinBoost handles GET /api/dbs2/bitcoin-boost
func (h *WalletHandler) BitcoinBoost(w http.ResponseWriter, r *http.Request) {
	price, change, boost := h.prices.BitcoinBoost(r.Context())

	response.JSON(w, http.StatusOK, response.BitcoinBoostResponse{
		BTCPriceUSD:     price,
		BTCChange24h:    change,
		BoostMultiplier: boost,
	})
}
