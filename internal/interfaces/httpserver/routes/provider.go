package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/interfaces/httpserver/handlers"
	v1 "github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/interfaces/httpserver/routes/v1"
)

// Provider holds all route providers.
type Provider struct {
	V1       *v1.Routes
	handlers *handlers.Provider
}

// NewProvider creates a new route provider.
func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{
		V1:       v1.NewRoutes(handlerProvider),
		handlers: handlerProvider,
	}
}

// Register registers all routes on the engine. Webhook callbacks live on the
// engine root because the provider's callback URLs are not versioned.
func (p *Provider) Register(engine *gin.Engine) {
	p.V1.Register(engine)
	RegisterWebhookRoutes(engine, p.handlers.Webhook)
}

// RouteProvider provides all routes for wire.
var RouteProvider = wire.NewSet(
	NewProvider,
)
