package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/dependencies/clock"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/gamedata"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/ashtrail"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/leaderboard"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/player"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/prices"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/shop"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/services/wallet"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/storage"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/storage/memory"
	redisstorage "github.com/P4CodeMaxxers/DBS2-Backend/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	PlayerService      *player.Service
	WalletService      *wallet.Service
	ShopService        *shop.Service
	LeaderboardService *leaderboard.Service
	AshTrailService    *ashtrail.Service
	PriceCache         *prices.Cache
	GameData           *gamedata.Store
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// DataDir is where the legacy item data file lives
	// If empty, defaults to the current directory
	DataDir string
	// PriceFeedURL overrides the market data endpoint (optional)
	PriceFeedURL string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()

	var priceSource prices.Source
	if cfg.PriceFeedURL != "" {
		priceSource = prices.NewCoinGeckoClientWithURL(cfg.PriceFeedURL)
	} else {
		priceSource = prices.NewCoinGeckoClient()
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}

	return newWithDependencies(store, clk, priceSource, dataDir, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, priceSource prices.Source, dataDir string, logger *slog.Logger) *App {
	priceCache := prices.NewCache(priceSource, clk, logger)
	gameData := gamedata.NewStore(dataDir, logger)

	playerService := player.New(store, clk, logger)
	walletService := wallet.New(playerService, priceCache, logger)
	shopService := shop.New(playerService, logger)
	leaderboardService := leaderboard.New(store, logger)
	ashtrailService := ashtrail.New(store, clk, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		PlayerService:      playerService,
		WalletService:      walletService,
		ShopService:        shopService,
		LeaderboardService: leaderboardService,
		AshTrailService:    ashtrailService,
		PriceCache:         priceCache,
		GameData:           gameData,
	}
}
