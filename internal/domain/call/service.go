package call

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ControlClient issues outbound control requests to the telephony provider.
// Both operations are synchronous request/response over the provider's HTTP
// control API.
type ControlClient interface {
	// MakeCall initiates an outbound call and returns the provider-assigned
	// call ID.
	MakeCall(ctx context.Context, to, from, answerURL string) (string, map[string]any, error)

	// TransferCall redirects an active call to the transfer callback URL and
	// returns the provider's acknowledgment payload.
	TransferCall(ctx context.Context, callID, transferURL string) (map[string]any, error)
}

// RecordingFetcher retrieves finished recording artifacts in the background.
// Fetch must return immediately; download and retry happen detached from the
// caller.
type RecordingFetcher interface {
	Fetch(callID, downloadURL string)
}

// ServiceParams carries the resolved callback addresses and defaults the
// service needs. All URLs are absolute and externally reachable.
type ServiceParams struct {
	AnswerURL     string
	TransferURL   string
	StreamPath    string
	DefaultFrom   string
	DefaultTarget string
}

// Service defines the business operations for call brokering.
type Service interface {
	// Operator-facing operations.
	InitiateCall(ctx context.Context, req *InitiateCallRequest) (*InitiateCallResult, error)
	GetCall(ctx context.Context, callID string) (*Session, error)
	ListCalls(ctx context.Context) ([]*Session, error)
	RequestTransfer(ctx context.Context, callID, target string) (*TransferResult, error)

	// Provider webhook operations. These never fail on unknown or stale
	// call IDs; duplicate and out-of-order callbacks are expected traffic.
	HandleAnswer(ctx context.Context, callID string) (*Session, error)
	HandleHangup(ctx context.Context, callID string) error
	HandleRecordingFinished(ctx context.Context, callID string, meta RecordingMetadata)
	HandleRecordingReady(ctx context.Context, callID, downloadURL string)

	// TransferTarget resolves the dial destination for a call, falling back
	// to the configured default. Used by the transfer-callback webhook.
	TransferTarget(ctx context.Context, callID string) string
}

// ErrNoFromNumber is returned when neither the request nor the configuration
// provides an origin number for an outbound call.
var ErrNoFromNumber = errors.New("no origin number configured")

type service struct {
	registry   Registry
	control    ControlClient
	bridge     MediaBridge
	recordings RecordingFetcher
	params     ServiceParams
	log        zerolog.Logger
}

// NewService creates a new call service.
func NewService(
	registry Registry,
	control ControlClient,
	bridge MediaBridge,
	recordings RecordingFetcher,
	params ServiceParams,
	log zerolog.Logger,
) Service {
	return &service{
		registry:   registry,
		control:    control,
		bridge:     bridge,
		recordings: recordings,
		params:     params,
		log:        log.With().Str("component", "call-service").Logger(),
	}
}

func (s *service) InitiateCall(ctx context.Context, req *InitiateCallRequest) (*InitiateCallResult, error) {
	from := req.From
	if from == "" {
		from = s.params.DefaultFrom
	}
	if from == "" {
		return nil, ErrNoFromNumber
	}

	answerURL, err := AnswerURLWithBody(s.params.AnswerURL, req.Body)
	if err != nil {
		return nil, fmt.Errorf("encode body data: %w", err)
	}

	callID, _, err := s.control.MakeCall(ctx, req.To, from, answerURL)
	if err != nil {
		s.log.Error().Err(err).Str("to", req.To).Msg("provider rejected outbound call")
		return nil, err
	}

	// Registered here so pending dials are operator-visible; the answer
	// webhook upsert covers calls first seen via callback.
	if _, err := s.registry.Upsert(ctx, callID, WithDial(req.To, from), WithStreamPath(s.params.StreamPath)); err != nil {
		s.log.Error().Err(err).Str("call_id", callID).Msg("failed to register session")
		return nil, err
	}

	s.log.Info().
		Str("call_id", callID).
		Str("to", req.To).
		Str("from", from).
		Msg("outbound call initiated")

	return &InitiateCallResult{
		CallID: callID,
		Status: "call_initiated",
		To:     req.To,
	}, nil
}

func (s *service) GetCall(ctx context.Context, callID string) (*Session, error) {
	return s.registry.Get(ctx, callID)
}

func (s *service) ListCalls(ctx context.Context) ([]*Session, error) {
	return s.registry.List(ctx)
}

// RequestTransfer arms the one-shot transfer flag and asks the provider to
// redirect the call to the transfer callback. The registry is never locked
// across the provider round-trip: the compare-and-set happens first, the
// outbound call second, and the compensating rollback as a separate
// compare-and-set.
func (s *service) RequestTransfer(ctx context.Context, callID, target string) (*TransferResult, error) {
	sess, err := s.registry.Get(ctx, callID)
	if err != nil {
		return nil, err
	}

	if target == "" {
		target = s.params.DefaultTarget
	}
	if target == "" {
		return nil, ErrNoTransferTarget
	}

	if _, err := s.registry.Transition(ctx, callID, StateActive, StateTransferArmed, WithTransferTarget(target)); err != nil {
		if errors.Is(err, ErrStateConflict) {
			// Re-read so the rejection names the state that actually won.
			if cur, gerr := s.registry.Get(ctx, callID); gerr == nil {
				sess = cur
			}
			return nil, fmt.Errorf("call %s is not transferable in state %q: %w", callID, sess.State, ErrStateConflict)
		}
		return nil, err
	}

	ack, err := s.control.TransferCall(ctx, callID, s.params.TransferURL)
	if err != nil {
		// Roll back so the call stays eligible for a retry. A hangup may
		// have landed in the meantime; that conflict is final and silent.
		if _, rbErr := s.registry.Transition(ctx, callID, StateTransferArmed, StateActive); rbErr != nil && !errors.Is(rbErr, ErrStateConflict) {
			s.log.Error().Err(rbErr).Str("call_id", callID).Msg("transfer rollback failed")
		}
		s.log.Warn().Err(err).Str("call_id", callID).Str("target", target).Msg("provider transfer failed, rolled back")
		return nil, err
	}

	if _, err := s.registry.Transition(ctx, callID, StateTransferArmed, StateTransferred); err != nil && !errors.Is(err, ErrStateConflict) {
		s.log.Error().Err(err).Str("call_id", callID).Msg("failed to record transfer acknowledgment")
	}

	// Fire-and-forget: the provider-side dial takes effect regardless of
	// whether the local pipeline detaches cleanly.
	go func() {
		if err := s.bridge.Detach(context.WithoutCancel(ctx), callID, sess.StreamPath); err != nil {
			s.log.Warn().Err(err).Str("call_id", callID).Msg("media bridge detach failed")
		}
	}()

	s.log.Info().
		Str("call_id", callID).
		Str("target", target).
		Msg("transfer acknowledged by provider")

	return &TransferResult{CallID: callID, Target: target, Payload: ack}, nil
}

// HandleAnswer registers the session if needed and advances it to active.
// A conflict means the call is already active or beyond, which is fine.
func (s *service) HandleAnswer(ctx context.Context, callID string) (*Session, error) {
	sess, err := s.registry.Upsert(ctx, callID, WithStreamPath(s.params.StreamPath))
	if err != nil {
		return nil, err
	}

	updated, err := s.registry.Transition(ctx, callID, StateInitiating, StateActive)
	switch {
	case err == nil:
		sess = updated
		s.log.Info().Str("call_id", callID).Msg("call answered")
	case errors.Is(err, ErrStateConflict):
		// Duplicate answer callback or transfer already armed; return the
		// current session so the caller picks the right document.
		if sess, err = s.registry.Get(ctx, callID); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return sess, nil
}

// HandleHangup drives the session to ended from whatever state it is in.
// Idempotent against duplicate terminal callbacks.
func (s *service) HandleHangup(ctx context.Context, callID string) error {
	for {
		sess, err := s.registry.Get(ctx, callID)
		if err != nil {
			if errors.Is(err, ErrCallNotFound) {
				s.log.Warn().Str("call_id", callID).Msg("hangup for unknown call")
				return nil
			}
			return err
		}
		if sess.State.IsTerminal() {
			return nil
		}

		_, err = s.registry.Transition(ctx, callID, sess.State, StateEnded)
		if err == nil {
			s.log.Info().Str("call_id", callID).Str("from_state", string(sess.State)).Msg("call ended")
			return nil
		}
		if !errors.Is(err, ErrStateConflict) {
			return err
		}
		// Lost the race to a concurrent transition; re-read and retry.
	}
}

func (s *service) HandleRecordingFinished(ctx context.Context, callID string, meta RecordingMetadata) {
	event := s.log.Info()
	if _, err := s.registry.Get(ctx, callID); errors.Is(err, ErrCallNotFound) {
		event = s.log.Warn().Bool("unknown_call", true)
	}
	event.
		Str("call_id", callID).
		Str("recording_id", meta.RecordingID).
		Str("record_url", meta.RecordURL).
		Str("duration_s", meta.Duration).
		Str("duration_ms", meta.DurationMs).
		Str("start_ms", meta.StartMs).
		Str("end_ms", meta.EndMs).
		Str("end_reason", meta.EndReason).
		Msg("recording finished")
}

func (s *service) HandleRecordingReady(ctx context.Context, callID, downloadURL string) {
	if _, err := s.registry.Get(ctx, callID); err != nil {
		s.log.Warn().Str("call_id", callID).Msg("recording ready for unknown call, skipping retrieval")
		return
	}
	if downloadURL == "" {
		s.log.Warn().Str("call_id", callID).Msg("recording ready without download URL")
		return
	}
	s.recordings.Fetch(callID, downloadURL)
}

func (s *service) TransferTarget(ctx context.Context, callID string) string {
	if sess, err := s.registry.Get(ctx, callID); err == nil && sess.TransferTarget != "" {
		return sess.TransferTarget
	}
	return s.params.DefaultTarget
}
