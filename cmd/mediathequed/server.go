package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vmunix/mediatheque/internal/api"
	"github.com/vmunix/mediatheque/internal/artwork"
	"github.com/vmunix/mediatheque/internal/audiotag"
	"github.com/vmunix/mediatheque/internal/auth"
	"github.com/vmunix/mediatheque/internal/cache"
	"github.com/vmunix/mediatheque/internal/catalog"
	"github.com/vmunix/mediatheque/internal/config"
	"github.com/vmunix/mediatheque/internal/metadata"
	"github.com/vmunix/mediatheque/internal/migrations"
	"github.com/vmunix/mediatheque/internal/progress"
	"github.com/vmunix/mediatheque/internal/server"
	"github.com/vmunix/mediatheque/internal/source"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func runServer(configPath string) error {
	// Load config
	if configPath == "" {
		discovered, err := config.Discover()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		configPath = discovered
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		cfgErr := &config.ConfigError{Path: configPath, Errors: errs}
		return fmt.Errorf("config: %s", cfgErr.Error())
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Run migrations
	if err := migrations.Apply(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// === Media source ===
	var src source.Source
	switch cfg.Source.Type {
	case "ssh":
		sshSrc, err := source.DialSSH(source.SSHConfig{
			Host:     cfg.Source.SSH.Host,
			Port:     cfg.Source.SSH.Port,
			User:     cfg.Source.SSH.User,
			Password: cfg.Source.SSH.Password,
			KeyFile:  cfg.Source.SSH.KeyFile,
			Root:     cfg.Source.Root,
		})
		if err != nil {
			return fmt.Errorf("ssh source: %w", err)
		}
		defer func() { _ = sshSrc.Close() }()
		src = sshSrc
	default:
		src = source.NewLocal(cfg.Source.Root)
	}

	// === Catalog ===
	artworkStore := artwork.NewMemoryStore()
	catalogOpts := []catalog.Option{
		catalog.WithLogger(logger.With("component", "catalog")),
		catalog.WithTagReader(audiotag.Reader{}),
		catalog.WithArtwork(artworkStore),
	}

	var metaCache *metadata.Cache
	if cfg.TMDB.APIKey != "" {
		metaCache = metadata.NewCache(db)
		tmdb := metadata.NewClient(cfg.TMDB.APIKey,
			metadata.WithLanguage(cfg.TMDB.Language),
			metadata.WithCache(metaCache),
		)
		catalogOpts = append(catalogOpts, catalog.WithMetadata(tmdb))
	}

	cat := catalog.New(src, catalogOpts...)

	// === Result cache (optional) ===
	results := cache.New(cfg.Cache.RedisAddr,
		cache.WithTTL(cfg.Cache.TTL.Duration),
		cache.WithLogger(logger.With("component", "cache")),
	)
	defer func() { _ = results.Close() }()

	// === API ===
	apiOpts := []api.Option{
		api.WithLogger(logger.With("component", "api")),
		api.WithArtwork(artworkStore),
		api.WithProgress(progress.NewStore(db)),
		api.WithResultCache(results),
	}

	if cfg.Auth.Secret != "" {
		users := auth.NewUserStore(db)
		tokens := auth.NewService([]byte(cfg.Auth.Secret), cfg.Auth.TokenTTL.Duration)
		if err := bootstrapAdmin(users, logger); err != nil {
			return err
		}
		apiOpts = append(apiOpts, api.WithAuth(users, tokens))
	}

	mux := http.NewServeMux()
	api.New(cat, src, apiOpts...).RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"source", cfg.Source.Type,
		"tmdb", cfg.TMDB.APIKey != "",
		"redis", cfg.Cache.RedisAddr != "",
		"auth", cfg.Auth.Secret != "",
		"log_level", cfg.Server.LogLevel,
	)

	runner := server.NewRunner(logRequests(mux, logger), metaCache, server.Config{
		Addr: addr,
	}, logger.With("component", "server"))

	// Run until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// bootstrapAdmin creates the initial account on an empty user table.
// The generated password is printed once; change it after first login.
func bootstrapAdmin(users *auth.UserStore, logger *slog.Logger) error {
	n, err := users.Count()
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("generate password: %w", err)
	}
	password := hex.EncodeToString(buf)

	if _, err := users.Create("admin", password); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	logger.Warn("created initial admin user", "username", "admin", "password", password)
	return nil
}
