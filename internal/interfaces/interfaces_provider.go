package interfaces

import (
	"github.com/google/wire"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/interfaces/httpserver"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/interfaces/httpserver/handlers"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/interfaces/httpserver/routes"
)

// InterfacesProvider provides all interface dependencies.
var InterfacesProvider = wire.NewSet(
	handlers.HandlerProvider,
	routes.RouteProvider,
	httpserver.New,
)
