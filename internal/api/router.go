package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/handler"
	apimiddleware "github.com/P4CodeMaxxers/DBS2-Backend/internal/api/middleware"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/gamedata"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/middleware"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/ashtrail"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/leaderboard"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/player"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/prices"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/shop"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/wallet"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	PlayerService      *player.Service
	WalletService      *wallet.Service
	ShopService        *shop.Service
	LeaderboardService *leaderboard.Service
	AshTrailService    *ashtrail.Service
	PriceCache         *prices.Cache
	GameData           *gamedata.Store
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	walletHandler := handler.NewWalletHandler(cfg.WalletService, cfg.PriceCache)
	shopHandler := handler.NewShopHandler(cfg.ShopService)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)
	ashtrailHandler := handler.NewAshTrailHandler(cfg.AshTrailService)
	itemsHandler := handler.NewItemsHandler(cfg.GameData)
	adminHandler := handler.NewAdminHandler(cfg.PlayerService, cfg.AshTrailService)

	// Create middleware
	identityMiddleware := apimiddleware.Identity()
	optionalIdentityMiddleware := apimiddleware.OptionalIdentity()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/dbs2").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Per-player state routes (identity required)
	me := api.NewRoute().Subrouter()
	me.Use(identityMiddleware)
	me.HandleFunc("/player", playerHandler.Get).Methods(http.MethodGet)
	me.HandleFunc("/player", playerHandler.Update).Methods(http.MethodPut)
	me.HandleFunc("/crypto", playerHandler.GetCrypto).Methods(http.MethodGet)
	me.HandleFunc("/crypto", playerHandler.UpdateCrypto).Methods(http.MethodPut)
	me.HandleFunc("/inventory", playerHandler.GetInventory).Methods(http.MethodGet)
	me.HandleFunc("/inventory", playerHandler.AddInventoryItem).Methods(http.MethodPost)
	me.HandleFunc("/inventory", playerHandler.RemoveInventoryItem).Methods(http.MethodDelete)
	me.HandleFunc("/scores", playerHandler.GetScores).Methods(http.MethodGet)
	me.HandleFunc("/scores", playerHandler.UpdateScore).Methods(http.MethodPut)
	me.HandleFunc("/minigames", playerHandler.GetMinigames).Methods(http.MethodGet)
	me.HandleFunc("/minigames", playerHandler.UpdateMinigames).Methods(http.MethodPut)
	me.HandleFunc("/wallet", walletHandler.Get).Methods(http.MethodGet)
	me.HandleFunc("/wallet/convert", walletHandler.Convert).Methods(http.MethodPost)
	me.HandleFunc("/shop/purchase", shopHandler.Purchase).Methods(http.MethodPost)

	// Public routes
	api.HandleFunc("/bitcoin-boost", walletHandler.BitcoinBoost).Methods(http.MethodGet)
	api.HandleFunc("/shop", shopHandler.Catalog).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", leaderboardHandler.Global).Methods(http.MethodGet)
	api.HandleFunc("/ashtrail/leaderboard", leaderboardHandler.Book).Methods(http.MethodGet)

	// Ash trail runs; guests may submit without an identity header
	runs := api.PathPrefix("/ashtrail/runs").Subrouter()
	runs.Use(optionalIdentityMiddleware)
	runs.HandleFunc("", ashtrailHandler.SubmitRun).Methods(http.MethodPost)
	runs.HandleFunc("", ashtrailHandler.ListRuns).Methods(http.MethodGet)
	runs.HandleFunc("/{runId}", ashtrailHandler.GetRun).Methods(http.MethodGet)

	// Legacy item store routes
	api.HandleFunc("/items", itemsHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/items/count", itemsHandler.Count).Methods(http.MethodGet)
	api.HandleFunc("/items/random", itemsHandler.Random).Methods(http.MethodGet)
	api.HandleFunc("/items/{itemId:[0-9]+}", itemsHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/items/passwords/rotate", itemsHandler.RotatePassword).Methods(http.MethodPost)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/players", adminHandler.ListPlayers).Methods(http.MethodGet)
	admin.HandleFunc("/players/{userKey}", adminHandler.GetPlayer).Methods(http.MethodGet)
	admin.HandleFunc("/players/{userKey}", adminHandler.UpdatePlayer).Methods(http.MethodPut)
	admin.HandleFunc("/players/{userKey}", adminHandler.DeletePlayer).Methods(http.MethodDelete)
	admin.HandleFunc("/bulk", adminHandler.BulkUpdate).Methods(http.MethodPost)
	admin.HandleFunc("/stats", adminHandler.Stats).Methods(http.MethodGet)
	admin.HandleFunc("/guests", adminHandler.PurgeGuests).Methods(http.MethodDelete)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
