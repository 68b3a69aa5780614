package server

import (
	"context"
	"log"
	"time"

	"github.com/matthias/cv-wizard/internal/session"
)

// startJanitor sweeps expired sessions on an interval until ctx is cancelled.
// Expired sessions are also rejected on access, so the sweep only reclaims
// storage; missing a tick is harmless.
func startJanitor(ctx context.Context, store session.Store, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := store.DeleteExpired(ctx, time.Now())
				if err != nil {
					log.Printf("janitor: sweep failed: %v", err)
					continue
				}
				if n > 0 {
					log.Printf("janitor: removed %d expired sessions", n)
				}
			}
		}
	}()
}
