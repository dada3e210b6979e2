package serverapp

import (
	"context"
	"log/slog"

	"ancine-api/internal/logging"
)

// cleanupStack records what Init acquired so Shutdown can release it in
// reverse acquisition order: the HTTP server must stop taking requests
// before the pool it queries is closed.
type cleanupStack struct {
	releases []release
}

type release struct {
	what string
	fn   func(context.Context) error
}

func (s *cleanupStack) push(what string, fn func(context.Context) error) {
	s.releases = append(s.releases, release{what: what, fn: fn})
}

// run releases everything on the stack. A failing release is logged and does
// not stop the remaining ones.
func (s *cleanupStack) run(ctx context.Context, logger *logging.Logger) {
	for i := len(s.releases) - 1; i >= 0; i-- {
		rel := s.releases[i]
		if logger != nil {
			logger.Info("releasing " + rel.what)
		}
		if err := rel.fn(ctx); err != nil && logger != nil {
			logger.Warn("release failed",
				slog.String("resource", rel.what),
				slog.String("error", err.Error()),
			)
		}
	}
}

// Shutdown tears the app down. Repeated calls are no-ops; the first caller's
// context bounds the HTTP server drain.
func (a *App) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a.shutdownOnce.Do(func() {
		a.stateMu.Lock()
		cleanup := a.cleanup
		a.started = false
		a.stateMu.Unlock()

		cleanup.run(ctx, a.logger)
	})

	return nil
}
