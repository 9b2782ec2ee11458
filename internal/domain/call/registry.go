package call

import "context"

// TransitionOption attaches extra fields to a successful transition.
// Options are applied under the registry lock, atomically with the state
// change.
type TransitionOption func(*Session)

// WithTransferTarget stores the resolved hand-off destination when arming a
// transfer. The target is not stored until a transfer is requested.
func WithTransferTarget(target string) TransitionOption {
	return func(s *Session) {
		s.TransferTarget = target
	}
}

// WithDial records the dialed and origin numbers on creation.
func WithDial(to, from string) TransitionOption {
	return func(s *Session) {
		s.To = to
		s.From = from
	}
}

// WithStreamPath records the media-bridge path for this call. Fixed in this
// system, but modeled per session.
func WithStreamPath(path string) TransitionOption {
	return func(s *Session) {
		s.StreamPath = path
	}
}

// Registry is the single source of truth for in-flight calls. The
// compare-and-set Transition is the only mutation primitive; every
// higher-level component expresses state changes through it rather than
// unconditional writes.
type Registry interface {
	// Upsert returns the existing session or creates one in
	// StateInitiating. Idempotent; options are applied only on creation.
	Upsert(ctx context.Context, callID string, opts ...TransitionOption) (*Session, error)

	// Get retrieves a session by call ID. Returns ErrCallNotFound if the
	// call was never seen.
	Get(ctx context.Context, callID string) (*Session, error)

	// Transition performs a compare-and-set state change. It returns
	// ErrStateConflict when the current state does not equal expected, and
	// ErrCallNotFound for unknown calls. Transitioning to StateActive sets
	// StartedAt once; transitioning to StateEnded sets EndedAt once.
	Transition(ctx context.Context, callID string, expected, next State, opts ...TransitionOption) (*Session, error)

	// List returns all sessions in insertion order.
	List(ctx context.Context) ([]*Session, error)

	// Remove deletes a session. Used only by the retention reaper after
	// StateEnded.
	Remove(ctx context.Context, callID string) error
}
