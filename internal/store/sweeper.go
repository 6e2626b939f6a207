package store

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sweeper runs the ledger's periodic expired-ban cleanup.
// The sweep bounds memory growth only; ban correctness is carried by the
// expiry check on the read path.
type Sweeper struct {
	ledger   *Ledger
	interval time.Duration
	logger   *slog.Logger

	started bool
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
}

// NewSweeper creates a sweeper for the given ledger.
func NewSweeper(ledger *Ledger, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		ledger:   ledger,
		interval: interval,
		logger:   logger.With("component", "store.sweeper"),
	}
}

// Run starts the sweep loop. Blocks until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.done = make(chan struct{})
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("ban sweeper started", "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("ban sweeper stopping")
			return ctx.Err()
		case <-ticker.C:
			s.ledger.CleanupExpired()
		}
	}
}

// Shutdown stops the sweep loop.
// It implements server.ShutdownFunc for integration with graceful shutdown.
func (s *Sweeper) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
