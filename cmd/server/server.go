// @title           Vobiz Call Broker
// @version         1.0
// @description     Session broker between the Vobiz telephony provider, the
// @description     media-streaming bridge and the conversational agent.
// @description     Supports operator-initiated transfer to a human agent.

// @contact.name   Piyush Sahoo
// @contact.url    https://github.com/Piyush-sahoo/Vobiz-X-Pipecat

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:7860
// @BasePath  /v1

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/config"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/infrastructure/bridge"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/infrastructure/logger"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/infrastructure/observability"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/infrastructure/recordings"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/infrastructure/registry"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/infrastructure/vobiz"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/interfaces/httpserver"
)

// Application holds the main application components.
type Application struct {
	httpServer *httpserver.HTTPServer
	reaper     *registry.Reaper
	downloader *recordings.Downloader
	log        zerolog.Logger
}

// NewApplication creates a new application instance.
func NewApplication(
	httpServer *httpserver.HTTPServer,
	reaper *registry.Reaper,
	downloader *recordings.Downloader,
	log zerolog.Logger,
) *Application {
	return &Application{
		httpServer: httpServer,
		reaper:     reaper,
		downloader: downloader,
		log:        log,
	}
}

// Start runs the application.
func (a *Application) Start(ctx context.Context) error {
	// Start the terminal-session reaper
	a.reaper.Start(ctx)

	// Run HTTP server (blocks until context cancelled)
	err := a.httpServer.Run(ctx)

	// Stop background work; in-flight recording downloads drain before exit
	a.reaper.Stop()
	a.downloader.Wait()

	return err
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Setup observability
	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown telemetry")
		}
	}()

	// Initialize the call session registry (mutex-based, no goroutine)
	callRegistry := registry.NewMemoryRegistry(log)

	// Initialize the reaper that prunes ended sessions past retention
	reaper := registry.NewReaper(callRegistry, cfg.CallRetentionTTL, cfg.CallReaperInterval, log)

	// Initialize the Vobiz control client
	vobizClient := vobiz.NewClient(cfg, log)

	// Initialize the recording downloader
	downloader, err := recordings.NewDownloader(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize recording downloader")
	}

	// Initialize the media bridge detacher
	mediaBridge := bridge.NewLogDetacher(log)

	// Initialize the call service
	callService := call.NewService(
		callRegistry,
		vobizClient,
		mediaBridge,
		downloader,
		call.ServiceParams{
			AnswerURL:     cfg.AnswerURL(),
			TransferURL:   cfg.TransferURL(),
			StreamPath:    cfg.StreamPath,
			DefaultFrom:   cfg.VobizPhoneNumber,
			DefaultTarget: cfg.TransferTarget,
		},
		log,
	)

	// Initialize HTTP server
	httpServer := httpserver.New(cfg, log, callService)

	// Create and start application
	app := NewApplication(httpServer, reaper, downloader, log)

	log.Info().
		Str("service", cfg.ServiceName).
		Int("port", cfg.HTTPPort).
		Str("environment", cfg.Environment).
		Msg("starting application")

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env", "../../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
