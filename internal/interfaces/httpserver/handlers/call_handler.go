package handlers

import (
	"context"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
)

// CallHandler handles operator-facing call requests.
type CallHandler struct {
	service call.Service
}

// NewCallHandler creates a new call handler.
func NewCallHandler(service call.Service) *CallHandler {
	return &CallHandler{service: service}
}

// InitiateCall starts a new outbound call via the provider.
func (h *CallHandler) InitiateCall(ctx context.Context, req *call.InitiateCallRequest) (*call.InitiateCallResult, error) {
	return h.service.InitiateCall(ctx, req)
}

// GetCall retrieves a call session by ID.
func (h *CallHandler) GetCall(ctx context.Context, callID string) (*call.Session, error) {
	return h.service.GetCall(ctx, callID)
}

// ListCalls retrieves all call sessions in insertion order.
func (h *CallHandler) ListCalls(ctx context.Context) ([]*call.Session, error) {
	return h.service.ListCalls(ctx)
}

// RequestTransfer redirects an active call to a human agent.
func (h *CallHandler) RequestTransfer(ctx context.Context, callID, target string) (*call.TransferResult, error) {
	return h.service.RequestTransfer(ctx, callID, target)
}
