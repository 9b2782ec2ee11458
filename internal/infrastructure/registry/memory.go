package registry

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/infrastructure/metrics"
)

// MemoryRegistry is a mutex-based in-memory call registry.
// Thread-safe via sync.RWMutex; callers always receive copies, never the
// stored session, so no caller can observe a partially-updated record.
type MemoryRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*call.Session
	order    []string // call IDs in insertion order, for List
	log      zerolog.Logger
}

var _ call.Registry = (*MemoryRegistry)(nil)

// NewMemoryRegistry creates a new in-memory call registry.
func NewMemoryRegistry(log zerolog.Logger) *MemoryRegistry {
	return &MemoryRegistry{
		sessions: make(map[string]*call.Session),
		log:      log.With().Str("component", "call-registry").Logger(),
	}
}

// Upsert returns the existing session or creates one in StateInitiating.
func (r *MemoryRegistry) Upsert(ctx context.Context, callID string, opts ...call.TransitionOption) (*call.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, ok := r.sessions[callID]; ok {
		return copySession(sess), nil
	}

	sess := &call.Session{
		CallID:    callID,
		State:     call.StateInitiating,
		CreatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(sess)
	}
	// CallID is immutable after insertion; options cannot change it.
	sess.CallID = callID

	r.sessions[callID] = sess
	r.order = append(r.order, callID)

	metrics.RecordSessionCreated()
	r.log.Debug().Str("call_id", callID).Msg("session registered")
	return copySession(sess), nil
}

// Get retrieves a session by call ID.
func (r *MemoryRegistry) Get(ctx context.Context, callID string) (*call.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[callID]
	if !ok {
		return nil, call.ErrCallNotFound
	}
	return copySession(sess), nil
}

// Transition performs the compare-and-set state change. This is the sole
// mutation primitive: it is what makes "transfer at most once" and "ignore
// events after ended" hold under concurrent webhook delivery.
func (r *MemoryRegistry) Transition(ctx context.Context, callID string, expected, next call.State, opts ...call.TransitionOption) (*call.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[callID]
	if !ok {
		return nil, call.ErrCallNotFound
	}
	if sess.State != expected || !expected.CanTransitionTo(next) {
		return nil, call.ErrStateConflict
	}

	sess.State = next
	for _, opt := range opts {
		opt(sess)
	}
	sess.CallID = callID

	now := time.Now()
	if next == call.StateActive && sess.StartedAt.IsZero() {
		sess.StartedAt = now
	}
	if next == call.StateEnded && sess.EndedAt.IsZero() {
		sess.EndedAt = now
		metrics.RecordSessionEnded()
	}

	metrics.RecordStateTransition(string(expected), string(next))
	r.log.Debug().
		Str("call_id", callID).
		Str("from", string(expected)).
		Str("to", string(next)).
		Msg("session transitioned")
	return copySession(sess), nil
}

// List returns all sessions in insertion order.
func (r *MemoryRegistry) List(ctx context.Context) ([]*call.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*call.Session, 0, len(r.order))
	for _, id := range r.order {
		if sess, ok := r.sessions[id]; ok {
			result = append(result, copySession(sess))
		}
	}
	return result, nil
}

// Remove deletes a session by call ID.
func (r *MemoryRegistry) Remove(ctx context.Context, callID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[callID]; !ok {
		return call.ErrCallNotFound
	}

	delete(r.sessions, callID)
	for i, id := range r.order {
		if id == callID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func copySession(sess *call.Session) *call.Session {
	cp := *sess
	return &cp
}
