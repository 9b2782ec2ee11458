package registry

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
)

// Reaper prunes ended sessions from the registry after a retention period.
// Sessions are kept read-only for a while after ending so late recording
// callbacks still resolve and operators can inspect recent calls.
type Reaper struct {
	registry  call.Registry
	retention time.Duration
	interval  time.Duration
	log       zerolog.Logger
	done      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewReaper creates a new session reaper.
func NewReaper(registry call.Registry, retention, interval time.Duration, log zerolog.Logger) *Reaper {
	return &Reaper{
		registry:  registry,
		retention: retention,
		interval:  interval,
		log:       log.With().Str("component", "session-reaper").Logger(),
		done:      make(chan struct{}),
	}
}

// Start begins the reap loop in background.
// Safe to call multiple times - only the first call starts the reaper.
func (r *Reaper) Start(ctx context.Context) {
	r.startOnce.Do(func() {
		r.wg.Add(1)
		go r.run(ctx)
		r.log.Info().Dur("retention", r.retention).Msg("session reaper started")
	})
}

// Stop gracefully shuts down the reaper.
// Safe to call multiple times - only the first call stops the reaper.
func (r *Reaper) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
		r.wg.Wait()
		r.log.Info().Msg("session reaper stopped")
	})
}

func (r *Reaper) run(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Debug().Msg("context cancelled, shutting down reaper")
			return
		case <-r.done:
			r.log.Debug().Msg("done signal received, shutting down reaper")
			return
		case <-ticker.C:
			r.reap(ctx)
		}
	}
}

// reap removes sessions that ended longer than the retention period ago.
func (r *Reaper) reap(ctx context.Context) {
	sessions, err := r.registry.List(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("failed to list sessions for reaping")
		return
	}

	now := time.Now()
	reaped := 0

	for _, sess := range sessions {
		if !sess.State.IsTerminal() || sess.EndedAt.IsZero() {
			continue
		}
		if now.Sub(sess.EndedAt) < r.retention {
			continue
		}
		if err := r.registry.Remove(ctx, sess.CallID); err == nil {
			reaped++
			r.log.Info().
				Str("call_id", sess.CallID).
				Dur("age", now.Sub(sess.EndedAt)).
				Msg("ended session reaped")
		}
	}

	if reaped > 0 {
		r.log.Info().Int("reaped", reaped).Msg("reap cycle completed")
	}
}
