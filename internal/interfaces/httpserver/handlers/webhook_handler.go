package handlers

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/config"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/infrastructure/vobiz"
)

// WebhookHandler translates provider callbacks into registry mutations and
// produces the control document the provider executes next.
//
// Webhook operations never fail toward the provider: an unknown or
// inconsistent call ID is logged and acknowledged with a neutral document,
// because duplicate and late callbacks are expected traffic.
type WebhookHandler struct {
	service call.Service
	cfg     *config.Config
	log     zerolog.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(service call.Service, cfg *config.Config, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		cfg:     cfg,
		log:     log.With().Str("component", "webhook-handler").Logger(),
	}
}

// Answer handles the answer-stage callback. It returns the stream-and-record
// document, or the transfer document when a transfer was armed before the
// provider (re-)invoked the answer stage.
func (h *WebhookHandler) Answer(ctx context.Context, callID string, bodyData map[string]any) string {
	sess, err := h.service.HandleAnswer(ctx, callID)
	if err != nil {
		h.log.Error().Err(err).Str("call_id", callID).Msg("answer webhook failed, returning neutral document")
		return vobiz.EmptyDocument()
	}

	if sess.TransferPending() {
		return h.transferDocument(ctx, callID)
	}

	doc, err := vobiz.StreamDocument(vobiz.StreamDocumentParams{
		Greeting:             h.cfg.AnswerGreeting,
		StreamURL:            h.cfg.StreamURL(),
		RecordingFinishedURL: h.cfg.RecordingFinishedURL(),
		RecordingReadyURL:    h.cfg.RecordingReadyURL(),
		BodyData:             bodyData,
	})
	if err != nil {
		h.log.Error().Err(err).Str("call_id", callID).Msg("failed to build stream document")
		return vobiz.EmptyDocument()
	}
	return doc
}

// Transfer handles the callback the provider fetches while executing an
// armed transfer. Shares the dial-document logic with the armed branch of
// Answer.
func (h *WebhookHandler) Transfer(ctx context.Context, callID string) string {
	return h.transferDocument(ctx, callID)
}

// Hangup handles the terminal callback. Idempotent.
func (h *WebhookHandler) Hangup(ctx context.Context, callID string) string {
	if err := h.service.HandleHangup(ctx, callID); err != nil {
		h.log.Error().Err(err).Str("call_id", callID).Msg("hangup webhook failed")
	}
	return vobiz.EmptyDocument()
}

// RecordingFinished handles the recording-stopped callback.
func (h *WebhookHandler) RecordingFinished(ctx context.Context, callID string, meta call.RecordingMetadata) string {
	h.service.HandleRecordingFinished(ctx, callID, meta)
	return vobiz.EmptyDocument()
}

// RecordingReady handles the artifact-available callback. Retrieval runs in
// the background; the provider is acknowledged immediately.
func (h *WebhookHandler) RecordingReady(ctx context.Context, callID, downloadURL string) string {
	h.service.HandleRecordingReady(ctx, callID, downloadURL)
	return vobiz.EmptyDocument()
}

func (h *WebhookHandler) transferDocument(ctx context.Context, callID string) string {
	target := h.service.TransferTarget(ctx, callID)
	if target == "" {
		h.log.Error().Str("call_id", callID).Msg("transfer callback without resolvable target")
		return vobiz.EmptyDocument()
	}

	doc, err := vobiz.TransferDocument(h.cfg.TransferAnnouncement, target)
	if err != nil {
		h.log.Error().Err(err).Str("call_id", callID).Msg("failed to build transfer document")
		return vobiz.EmptyDocument()
	}
	return doc
}
