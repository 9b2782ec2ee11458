package call_test

import (
	"testing"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
)

func TestState_IsTerminal(t *testing.T) {
	tests := []struct {
		name     string
		state    call.State
		expected bool
	}{
		{"initiating is not terminal", call.StateInitiating, false},
		{"active is not terminal", call.StateActive, false},
		{"transfer_armed is not terminal", call.StateTransferArmed, false},
		{"transferred is not terminal", call.StateTransferred, false},
		{"ended is terminal", call.StateEnded, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.expected {
				t.Errorf("State.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestState_Transferable(t *testing.T) {
	tests := []struct {
		name     string
		state    call.State
		expected bool
	}{
		{"initiating is not transferable", call.StateInitiating, false},
		{"active is transferable", call.StateActive, true},
		{"transfer_armed is not transferable", call.StateTransferArmed, false},
		{"transferred is not transferable", call.StateTransferred, false},
		{"ended is not transferable", call.StateEnded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Transferable(); got != tt.expected {
				t.Errorf("State.Transferable() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name  string
		from  call.State
		to    call.State
		canDo bool
	}{
		// Forward lifecycle
		{"initiating to active", call.StateInitiating, call.StateActive, true},
		{"active to transfer_armed", call.StateActive, call.StateTransferArmed, true},
		{"transfer_armed to transferred", call.StateTransferArmed, call.StateTransferred, true},

		// Rollback after a failed transfer attempt
		{"transfer_armed back to active", call.StateTransferArmed, call.StateActive, true},

		// Hangup can arrive in any non-terminal state
		{"initiating to ended", call.StateInitiating, call.StateEnded, true},
		{"active to ended", call.StateActive, call.StateEnded, true},
		{"transfer_armed to ended", call.StateTransferArmed, call.StateEnded, true},
		{"transferred to ended", call.StateTransferred, call.StateEnded, true},

		// Skipping and reversing are rejected
		{"initiating to transfer_armed - invalid", call.StateInitiating, call.StateTransferArmed, false},
		{"initiating to transferred - invalid", call.StateInitiating, call.StateTransferred, false},
		{"active to transferred - invalid", call.StateActive, call.StateTransferred, false},
		{"active to initiating - invalid", call.StateActive, call.StateInitiating, false},
		{"transferred to active - invalid", call.StateTransferred, call.StateActive, false},
		{"transferred to transfer_armed - invalid", call.StateTransferred, call.StateTransferArmed, false},

		// Ended absorbs everything
		{"ended to active - invalid", call.StateEnded, call.StateActive, false},
		{"ended to transferred - invalid", call.StateEnded, call.StateTransferred, false},
		{"ended to ended - invalid", call.StateEnded, call.StateEnded, false},

		// Self-transitions are not transitions
		{"active to active - invalid", call.StateActive, call.StateActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.canDo {
				t.Errorf("State(%q).CanTransitionTo(%q) = %v, want %v", tt.from, tt.to, got, tt.canDo)
			}
		})
	}
}

func TestSession_TransferPending(t *testing.T) {
	tests := []struct {
		name     string
		state    call.State
		expected bool
	}{
		{"active has no pending transfer", call.StateActive, false},
		{"transfer_armed is pending", call.StateTransferArmed, true},
		{"transferred is pending", call.StateTransferred, true},
		{"ended is not pending", call.StateEnded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &call.Session{CallID: "c1", State: tt.state}
			if got := sess.TransferPending(); got != tt.expected {
				t.Errorf("Session.TransferPending() = %v, want %v", got, tt.expected)
			}
		})
	}
}
