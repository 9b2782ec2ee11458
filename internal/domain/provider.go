package domain

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/config"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
)

// ProvideCallService provides a call service.
func ProvideCallService(
	registry call.Registry,
	control call.ControlClient,
	bridge call.MediaBridge,
	recordings call.RecordingFetcher,
	cfg *config.Config,
	log zerolog.Logger,
) call.Service {
	return call.NewService(
		registry,
		control,
		bridge,
		recordings,
		call.ServiceParams{
			AnswerURL:     cfg.AnswerURL(),
			TransferURL:   cfg.TransferURL(),
			StreamPath:    cfg.StreamPath,
			DefaultFrom:   cfg.VobizPhoneNumber,
			DefaultTarget: cfg.TransferTarget,
		},
		log,
	)
}

// ServiceProvider provides all domain services.
var ServiceProvider = wire.NewSet(
	ProvideCallService,
)
