//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/config"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/infrastructure/bridge"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/infrastructure/recordings"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/infrastructure/registry"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/infrastructure/vobiz"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/interfaces/httpserver"
)

// ProviderSet is the wire provider set for the application.
var ProviderSet = wire.NewSet(
	// Infrastructure providers
	ProvideRegistry,
	ProvideControlClient,
	ProvideMediaBridge,
	ProvideDownloader,
	wire.Bind(new(call.RecordingFetcher), new(*recordings.Downloader)),
	ProvideReaper,

	// Domain providers
	domain.ServiceProvider,

	// Interface providers
	httpserver.New,

	// Application
	NewApplication,
)

// ProvideRegistry provides the in-memory call session registry.
func ProvideRegistry(log zerolog.Logger) call.Registry {
	return registry.NewMemoryRegistry(log)
}

// ProvideControlClient provides the Vobiz control API client.
func ProvideControlClient(cfg *config.Config, log zerolog.Logger) call.ControlClient {
	return vobiz.NewClient(cfg, log)
}

// ProvideMediaBridge provides the media bridge detacher.
func ProvideMediaBridge(log zerolog.Logger) call.MediaBridge {
	return bridge.NewLogDetacher(log)
}

// ProvideDownloader provides the recording downloader.
func ProvideDownloader(cfg *config.Config, log zerolog.Logger) (*recordings.Downloader, error) {
	return recordings.NewDownloader(cfg, log)
}

// ProvideReaper provides the terminal-session reaper.
func ProvideReaper(reg call.Registry, cfg *config.Config, log zerolog.Logger) *registry.Reaper {
	return registry.NewReaper(reg, cfg.CallRetentionTTL, cfg.CallReaperInterval, log)
}

// CreateApplication creates the application with all dependencies wired.
func CreateApplication(
	cfg *config.Config,
	log zerolog.Logger,
) (*Application, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
