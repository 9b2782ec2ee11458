// Package bridge holds the broker-side media bridge implementations. The
// real detach behavior belongs to the conversational pipeline consumer; the
// broker ships a logging default so transfers work without one attached.
package bridge

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
)

// LogDetacher is a MediaBridge that only records detach requests.
type LogDetacher struct {
	log zerolog.Logger
}

var _ call.MediaBridge = (*LogDetacher)(nil)

// NewLogDetacher creates a logging media bridge.
func NewLogDetacher(log zerolog.Logger) *LogDetacher {
	return &LogDetacher{log: log.With().Str("component", "media-bridge").Logger()}
}

// Detach logs the hand-off. The provider-side dial proceeds regardless.
func (b *LogDetacher) Detach(ctx context.Context, callID, streamPath string) error {
	b.log.Info().
		Str("call_id", callID).
		Str("stream_path", streamPath).
		Msg("pipeline detach requested")
	return nil
}
