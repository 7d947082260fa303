package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/severedgames/mysteryparty/internal/dependencies/clock"
	"github.com/severedgames/mysteryparty/internal/dependencies/random"
	"github.com/severedgames/mysteryparty/internal/notify"
	"github.com/severedgames/mysteryparty/internal/services/auth"
	"github.com/severedgames/mysteryparty/internal/services/chat"
	"github.com/severedgames/mysteryparty/internal/services/dm"
	"github.com/severedgames/mysteryparty/internal/services/persona"
	"github.com/severedgames/mysteryparty/internal/services/ratelimit"
	"github.com/severedgames/mysteryparty/internal/services/room"
	"github.com/severedgames/mysteryparty/internal/storage"
	"github.com/severedgames/mysteryparty/internal/storage/memory"
	redisstorage "github.com/severedgames/mysteryparty/internal/storage/redis"
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
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService    *auth.Service
	PersonaService *persona.Service
	RoomService    *room.Service
	ChatService    *chat.Service
	DMService      *dm.Service
	RateLimiter    *ratelimit.PerMinuteLimiter
	Hub            *notify.Hub
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// MessagesPerMinute caps each user's message sends (optional)
	// If zero, defaults to ratelimit.DefaultPerMinute
	MessagesPerMinute int
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
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

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.TokenTTL == 0 {
		authCfg = auth.DefaultConfig()
	}

	perMinute := cfg.MessagesPerMinute
	if perMinute == 0 {
		perMinute = ratelimit.DefaultPerMinute
	}

	return NewWithDependencies(store, clk, rnd, authCfg, perMinute, logger), nil
}

// NewWithDependencies creates an App with the given dependencies (useful for testing)
func NewWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, perMinute int, logger *slog.Logger) *App {
	limiter := ratelimit.NewPerMinute(clk, perMinute)
	hub := notify.NewHub(logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		AuthService:    auth.New(store, clk, authCfg, logger),
		PersonaService: persona.New(store, logger),
		RoomService:    room.New(store, clk, rnd, logger),
		ChatService:    chat.New(store, limiter, hub, clk, logger),
		DMService:      dm.New(store, clk, logger),
		RateLimiter:    limiter,
		Hub:            hub,
	}
}
