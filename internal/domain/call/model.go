package call

import "time"

// State represents the lifecycle state of a call session.
type State string

const (
	// StateInitiating indicates the call was requested but the provider has
	// not yet confirmed the answer stage.
	StateInitiating State = "initiating"
	// StateActive indicates the provider reached the answer stage and media
	// is streaming to the conversational pipeline.
	StateActive State = "active"
	// StateTransferArmed indicates an operator requested a transfer and the
	// next answer-stage callback must return a dial document.
	StateTransferArmed State = "transfer_armed"
	// StateTransferred indicates the provider acknowledged the transfer.
	StateTransferred State = "transferred"
	// StateEnded is terminal. Events on an ended call are no-ops.
	StateEnded State = "ended"
)

// IsTerminal reports whether the state is absorbing.
func (s State) IsTerminal() bool {
	return s == StateEnded
}

// Transferable reports whether a transfer may be armed from this state.
func (s State) Transferable() bool {
	return s == StateActive
}

// CanTransitionTo reports whether the transition s -> next is legal.
// Legal transitions are the forward chain, the compensating rollback
// transfer_armed -> active, and any non-terminal state -> ended.
func (s State) CanTransitionTo(next State) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StateEnded {
		return true
	}
	switch s {
	case StateInitiating:
		return next == StateActive
	case StateActive:
		return next == StateTransferArmed
	case StateTransferArmed:
		return next == StateTransferred || next == StateActive
	}
	return false
}

// Session represents one active or recently-ended call.
//
// CallID is assigned by the telephony provider and is the primary key of the
// registry. The registry is the only component that mutates a session; all
// other components observe copies.
type Session struct {
	CallID         string    `json:"call_id"`
	State          State     `json:"state"`
	To             string    `json:"to,omitempty"`
	From           string    `json:"from,omitempty"`
	StreamPath     string    `json:"stream_path,omitempty"`
	TransferTarget string    `json:"transfer_target,omitempty"`
	StartedAt      time.Time `json:"started_at,omitempty"`
	EndedAt        time.Time `json:"ended_at,omitempty"`
	CreatedAt      time.Time `json:"-"`
}

// TransferPending reports whether provider-facing callbacks should return a
// dial-to-human document instead of a stream document.
func (s *Session) TransferPending() bool {
	return s.State == StateTransferArmed || s.State == StateTransferred
}

// InitiateCallRequest carries the operator parameters for an outbound call.
type InitiateCallRequest struct {
	To   string         `json:"to"`
	From string         `json:"from,omitempty"`
	Body map[string]any `json:"body,omitempty"`
}

// InitiateCallResult is returned to the operator after the provider accepted
// the outbound call request.
type InitiateCallResult struct {
	CallID string `json:"call_id"`
	Status string `json:"status"`
	To     string `json:"to"`
}

// TransferResult carries the provider's transfer acknowledgment payload.
type TransferResult struct {
	CallID  string         `json:"call_id"`
	Target  string         `json:"target"`
	Payload map[string]any `json:"payload,omitempty"`
}

// RecordingMetadata holds the fields the provider reports when a recording
// stops. Logged for operator visibility; no state transition.
type RecordingMetadata struct {
	RecordingID string
	RecordURL   string
	Duration    string
	DurationMs  string
	StartMs     string
	EndMs       string
	EndReason   string
}
