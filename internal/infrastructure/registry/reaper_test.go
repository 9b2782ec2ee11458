package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
)

func TestReaperRemovesExpiredTerminalSessions(t *testing.T) {
	r := newTestRegistry()
	ctx := context.Background()

	// Ended long ago: reaped.
	if _, err := r.Upsert(ctx, "old-ended"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Transition(ctx, "old-ended", call.StateInitiating, call.StateEnded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.sessions["old-ended"].EndedAt = time.Now().Add(-2 * time.Hour)

	// Ended recently: retained.
	if _, err := r.Upsert(ctx, "fresh-ended"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Transition(ctx, "fresh-ended", call.StateInitiating, call.StateEnded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Still live: retained regardless of age.
	if _, err := r.Upsert(ctx, "live"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.sessions["live"].CreatedAt = time.Now().Add(-2 * time.Hour)

	reaper := NewReaper(r, time.Hour, time.Minute, zerolog.Nop())
	reaper.reap(ctx)

	if _, err := r.Get(ctx, "old-ended"); !errors.Is(err, call.ErrCallNotFound) {
		t.Fatalf("expected old-ended reaped, got %v", err)
	}
	if _, err := r.Get(ctx, "fresh-ended"); err != nil {
		t.Fatalf("expected fresh-ended retained, got %v", err)
	}
	if _, err := r.Get(ctx, "live"); err != nil {
		t.Fatalf("expected live session retained, got %v", err)
	}
}

func TestReaperStartStop(t *testing.T) {
	r := newTestRegistry()
	reaper := NewReaper(r, time.Hour, time.Millisecond, zerolog.Nop())

	ctx := context.Background()
	reaper.Start(ctx)
	reaper.Start(ctx) // second start is a no-op

	time.Sleep(5 * time.Millisecond)

	reaper.Stop()
	reaper.Stop() // second stop is a no-op
}
