package serverapp

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"ancine-api/internal/api"
	"ancine-api/internal/dbexec"
	"ancine-api/internal/middleware"

	_ "github.com/lib/pq"
)

// Init initializes all runtime resources. It is idempotent. A backend that
// cannot be reached at startup fails Init instead of deferring the failure to
// the first request.
func (a *App) Init(ctx context.Context) error {
	a.stateMu.Lock()
	if a.initialized {
		a.stateMu.Unlock()
		return nil
	}
	a.stateMu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}

	cleanup := cleanupStack{}
	success := false
	defer func() {
		if !success {
			cleanup.run(context.Background(), a.logger)
		}
	}()

	a.logger.Info("connecting to PostgreSQL",
		slog.String("host", a.cfg.Database.Host),
		slog.Int("port", a.cfg.Database.Port),
		slog.String("database", a.cfg.Database.Database),
		slog.Bool("dsn_present", a.cfg.Database.DSN != ""),
	)

	db, err := sql.Open("postgres", a.cfg.Database.ConnString())
	if err != nil {
		return fmt.Errorf("failed to open database handle: %w", err)
	}
	cleanup.push("database", func(context.Context) error {
		return db.Close()
	})

	db.SetMaxOpenConns(a.cfg.Database.Pool.MaxOpen)
	db.SetMaxIdleConns(a.cfg.Database.Pool.MaxIdle)
	db.SetConnMaxLifetime(a.cfg.Database.Pool.MaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, a.cfg.Database.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}

	exec := dbexec.NewStandardExecutor(db)
	handler := api.NewRouter(api.NewServer(exec), a.logger, api.RouterConfig{
		CORS: middleware.CORSConfig{
			Enabled:        a.cfg.Server.CORSEnabled,
			AllowedOrigins: a.cfg.Server.CORSOrigins,
			AllowedMethods: a.cfg.Server.CORSMethods,
			AllowedHeaders: a.cfg.Server.CORSHeaders,
			MaxAge:         a.cfg.Server.CORSMaxAge,
		},
		RateLimit: middleware.RateLimitConfig{
			Enabled: a.cfg.Server.RateLimitEnabled,
			RPS:     a.cfg.Server.RateLimitRPS,
			Burst:   a.cfg.Server.RateLimitBurst,
		},
	})

	serverAddr := fmt.Sprintf(":%d", a.cfg.Server.Port)
	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}
	cleanup.push("HTTP server", func(shutdownCtx context.Context) error {
		return srv.Shutdown(shutdownCtx)
	})

	a.stateMu.Lock()
	a.db = db
	a.exec = exec
	a.handler = handler
	a.serverAddr = serverAddr
	a.srv = srv
	a.cleanup = cleanup
	a.initialized = true
	a.stateMu.Unlock()

	success = true
	return nil
}
