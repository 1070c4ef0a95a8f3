package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"askai/client/internal/api"
	"askai/client/internal/backend"
	"askai/client/internal/config"
	"askai/client/internal/database"
	"askai/client/internal/metrics"
	"askai/client/internal/repository"
	"askai/client/internal/service"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
	probeAttempts   = 5
	probeInterval   = 2 * time.Second
)

// App is the assembled web client.
type App struct {
	Config  *config.Config
	DB      *sql.DB
	Redis   *redis.Client
	Store   repository.CredentialRepository
	Backend backend.Client
	Metrics *metrics.Metrics
	Views   *service.ViewService
	Server  *http.Server
}

// Stores groups an opened credential store with whatever must be closed
// after it.
type Stores struct {
	Credentials repository.CredentialRepository
	DB          *sql.DB
	Redis       *redis.Client
}

// Close releases the connections behind the store.
func (s *Stores) Close() error {
	var errs []error
	if s.DB != nil {
		errs = append(errs, s.DB.Close())
	}
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	return errors.Join(errs...)
}

// OpenStores opens the credential store selected by CREDENTIAL_STORE.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.CredentialStore {
	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		slog.Info("Successfully connected to Redis.", "addr", cfg.RedisAddr)
		return &Stores{Credentials: repository.NewRedisRepository(rdb, 0), Redis: rdb}, nil

	case config.StoreMemory:
		slog.Warn("Using in-memory credential store; sessions are lost on restart.")
		return &Stores{Credentials: repository.NewMemoryRepository()}, nil

	default:
		db, err := database.InitDB(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)
		return &Stores{Credentials: repository.NewSQLiteRepository(db), DB: db}, nil
	}
}

// NewApp wires the web client from configuration.
func NewApp(cfg *config.Config) (*App, error) {
	stores, err := OpenStores(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	m := metrics.NewMetrics()
	client := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout)
	views := service.NewViewService(client, stores.Credentials, m, cfg.ViewIdleTTL)

	router := api.NewRouter(
		api.NewAuthHandler(service.NewAuthService(client), views),
		api.NewLandingHandler(service.NewLandingService(), views),
		api.NewDashboardHandler(views),
		api.RouterOptions{
			CookieName:     cfg.ViewCookieName,
			RequestTimeout: cfg.RequestTimeout,
			FrontendDir:    cfg.FrontendDir,
			Metrics:        m.Handler(),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for the event stream
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		Config:  cfg,
		DB:      stores.DB,
		Redis:   stores.Redis,
		Store:   stores.Credentials,
		Backend: client,
		Metrics: m,
		Views:   views,
		Server:  server,
	}, nil
}

// Serve runs the HTTP server and the idle-view sweeper until ctx is cancelled,
// then shuts both down.
func (a *App) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting server", "port", a.Config.AppPort)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return a.Views.Run(gctx, sweepInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.Views.Close()
		return a.Server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close releases the credential store.
func (a *App) Close() error {
	return (&Stores{DB: a.DB, Redis: a.Redis}).Close()
}

// Run is the entry point of the web client. It returns the process exit code.
func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	SetupLogger(os.Stdout, cfg.LogLevel)
	logConfigSource()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Start(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		return 1
	}
	return 0
}

// Start builds the web client from cfg and serves it until ctx is cancelled.
func Start(ctx context.Context, cfg *config.Config) error {
	probeBackend(ctx, cfg.BackendURL, probeAttempts, probeInterval)

	app, err := NewApp(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Error("Failed to close credential store", "error", err)
		}
	}()

	return app.Serve(ctx)
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

// SetupLogger installs a JSON slog logger writing to w as the default logger.
func SetupLogger(w io.Writer, logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// probeBackend checks that the AI service answers before the web client
// starts. It gives up after attempts tries and reports whether the service
// answered.
func probeBackend(ctx context.Context, backendURL string, attempts int, interval time.Duration) bool {
	slog.Info("Checking that the AI service is reachable...", "url", backendURL)
	client := &http.Client{Timeout: 2 * time.Second}
	for i := 1; i <= attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, backendURL, nil)
		if err != nil {
			slog.Warn("Invalid AI service URL", "url", backendURL, "error", err)
			return false
		}
		resp, err := client.Do(req)
		if err == nil {
			if bErr := resp.Body.Close(); bErr != nil {
				slog.Warn("Failed to close response body in AI service probe", "error", bErr)
			}
			// Any HTTP answer, even a 404 for "/", means the service is up.
			slog.Info("AI service is reachable.", "status", resp.StatusCode)
			return true
		}
		slog.Debug("AI service not reachable yet", "url", backendURL, "attempt", i, "error", err)

		select {
		case <-ctx.Done():
			return false
		case <-time.After(interval):
		}
	}
	slog.Warn("AI service is not reachable; starting anyway.", "url", backendURL)
	return false
}
