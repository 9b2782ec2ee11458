// Package callres contains HTTP response DTOs for call endpoints.
package callres

import (
	"time"

	domaincall "github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
)

// CallResponse represents a call session in API responses.
type CallResponse struct {
	CallID    string     `json:"call_id"`
	State     string     `json:"state"`
	To        string     `json:"to,omitempty"`
	From      string     `json:"from,omitempty"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// ListCallsResponse represents the response for listing calls.
type ListCallsResponse struct {
	Object string          `json:"object"`
	Data   []*CallResponse `json:"data"`
}

// InitiateCallResponse represents the response after initiating a call.
type InitiateCallResponse struct {
	CallID string `json:"call_id"`
	Status string `json:"status"`
	To     string `json:"to"`
}

// TransferResponse represents the response after a transfer was
// acknowledged by the provider.
type TransferResponse struct {
	CallID  string         `json:"call_id"`
	Target  string         `json:"target"`
	Status  string         `json:"status"`
	Payload map[string]any `json:"provider_payload,omitempty"`
}

// NewCallResponse creates a CallResponse from a domain Session.
func NewCallResponse(sess *domaincall.Session) *CallResponse {
	resp := &CallResponse{
		CallID: sess.CallID,
		State:  string(sess.State),
		To:     sess.To,
		From:   sess.From,
	}
	if !sess.StartedAt.IsZero() {
		t := sess.StartedAt
		resp.StartedAt = &t
	}
	if !sess.EndedAt.IsZero() {
		t := sess.EndedAt
		resp.EndedAt = &t
	}
	return resp
}

// NewListCallsResponse creates a ListCallsResponse from domain Sessions.
func NewListCallsResponse(sessions []*domaincall.Session) *ListCallsResponse {
	data := make([]*CallResponse, len(sessions))
	for i, s := range sessions {
		data[i] = NewCallResponse(s)
	}
	return &ListCallsResponse{
		Object: "list",
		Data:   data,
	}
}

// NewInitiateCallResponse creates an InitiateCallResponse.
func NewInitiateCallResponse(res *domaincall.InitiateCallResult) *InitiateCallResponse {
	return &InitiateCallResponse{
		CallID: res.CallID,
		Status: res.Status,
		To:     res.To,
	}
}

// NewTransferResponse creates a TransferResponse.
func NewTransferResponse(res *domaincall.TransferResult) *TransferResponse {
	return &TransferResponse{
		CallID:  res.CallID,
		Target:  res.Target,
		Status:  "transfer_accepted",
		Payload: res.Payload,
	}
}
