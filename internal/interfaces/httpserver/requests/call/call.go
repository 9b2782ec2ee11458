// Package callreq contains HTTP request DTOs for call endpoints.
package callreq

// InitiateCallRequest is the request body for starting an outbound call.
type InitiateCallRequest struct {
	// To is the destination number to dial, E.164 format.
	To string `json:"to" binding:"required"`
	// From overrides the configured origin number.
	From string `json:"from,omitempty"`
	// Body is opaque data handed to the conversational pipeline when the
	// media stream opens.
	Body map[string]any `json:"body,omitempty"`
}

// TransferRequest is the request body for redirecting a call to a human.
type TransferRequest struct {
	// Target overrides the configured transfer destination.
	Target string `json:"target,omitempty"`
}
