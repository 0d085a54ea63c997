package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/quizhall/quizhall/internal/dependencies/clock"
	"github.com/quizhall/quizhall/internal/dependencies/random"
	"github.com/quizhall/quizhall/internal/services/auth"
	"github.com/quizhall/quizhall/internal/services/questions"
	"github.com/quizhall/quizhall/internal/services/roles"
	"github.com/quizhall/quizhall/internal/services/scoring"
	"github.com/quizhall/quizhall/internal/storage"
	"github.com/quizhall/quizhall/internal/storage/memory"
	redisstorage "github.com/quizhall/quizhall/internal/storage/redis"
	"github.com/quizhall/quizhall/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSQLite = "sqlite"
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
	RoleResolver    *roles.Resolver
	AuthService     *auth.Service
	QuestionService *questions.Service
	ScoringService  *scoring.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "sqlite" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// SQLitePath is the database file path (required if StorageType is "sqlite")
	SQLitePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
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
		return nil, errors.New("invalid StorageType: must be 'memory', 'sqlite' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	roleResolver := roles.NewResolver(store, logger)
	authService := auth.New(store, clk, rnd, roleResolver, authCfg, logger)
	questionService := questions.New(store, logger)
	scoringService := scoring.New()

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		RoleResolver:    roleResolver,
		AuthService:     authService,
		QuestionService: questionService,
		ScoringService:  scoringService,
	}
}
