package handlers

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/config"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
)

// Provider holds all HTTP handlers.
type Provider struct {
	Call    *CallHandler
	Webhook *WebhookHandler
}

// NewProvider creates a new handler provider.
func NewProvider(callService call.Service, cfg *config.Config, log zerolog.Logger) *Provider {
	return &Provider{
		Call:    NewCallHandler(callService),
		Webhook: NewWebhookHandler(callService, cfg, log),
	}
}

// HandlerProvider provides all handlers for wire.
var HandlerProvider = wire.NewSet(
	NewCallHandler,
	NewWebhookHandler,
	NewProvider,
)
