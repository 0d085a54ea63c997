package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/csrf"
	"github.com/spf13/cobra"

	"github.com/quizhall/quizhall/internal/config"
	"github.com/quizhall/quizhall/internal/factory"
	"github.com/quizhall/quizhall/internal/services/auth"
	redisstorage "github.com/quizhall/quizhall/internal/storage/redis"
	"github.com/quizhall/quizhall/internal/web"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the QuizHall web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(resolveConfigPath())
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Logging.Level),
	}))
	slog.SetDefault(logger)

	app, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	router := web.NewRouter(web.RouterConfig{
		Logger:          logger,
		Storage:         app.Storage,
		AuthService:     app.AuthService,
		RoleResolver:    app.RoleResolver,
		QuestionService: app.QuestionService,
		ScoringService:  app.ScoringService,
		StaticDir:       cfg.Server.StaticDir,
	})

	handler := wrapCSRF(router, cfg.CSRF, logger)

	serverCfg := web.DefaultServerConfig()
	serverCfg.Host = cfg.Server.Host
	serverCfg.Port = cfg.Server.Port
	server := web.NewServer(handler, serverCfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}

// newApp builds the application factory from file configuration
func newApp(cfg *config.Config, logger *slog.Logger) (*factory.App, error) {
	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.Storage.Type,
		SQLitePath:  cfg.Storage.SQLite.Path,
		AuthConfig: auth.Config{
			SessionDuration: cfg.Session.Duration,
		},
	}

	if cfg.Storage.Type == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Storage.Redis.URL
		if cfg.Storage.Redis.PoolSize > 0 {
			redisCfg.PoolSize = cfg.Storage.Redis.PoolSize
		}
		if cfg.Storage.Redis.MinIdleConns > 0 {
			redisCfg.MinIdleConns = cfg.Storage.Redis.MinIdleConns
		}
		factoryCfg.RedisConfig = &redisCfg
	}

	return factory.New(factoryCfg)
}

// wrapCSRF applies CSRF protection when a key is configured. Without a
// key the router runs unprotected; the startup log makes that loud.
func wrapCSRF(handler http.Handler, cfg config.CSRFConfig, logger *slog.Logger) http.Handler {
	if cfg.Key == "" {
		logger.Warn("csrf.key not set, CSRF protection disabled")
		return handler
	}

	protect := csrf.Protect(
		[]byte(cfg.Key),
		csrf.Secure(cfg.Secure),
		csrf.Path("/"),
	)
	return protect(handler)
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
