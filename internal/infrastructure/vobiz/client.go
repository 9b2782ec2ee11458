package vobiz

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/config"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
)

const defaultRequestTimeout = 15 * time.Second

// APIError is a rejection from the Vobiz control API, carrying the
// provider's own status and message. Distinct from transport errors so the
// operator-facing message can differentiate them.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vobiz API error (%d): %s", e.StatusCode, e.Body)
}

// Client wraps the two provider control operations: initiate an outbound
// call and transfer an active call. Requests authenticate with the
// X-Auth-ID / X-Auth-Token header pair.
type Client struct {
	http      *resty.Client
	authID    string
	hangupURL string
	log       zerolog.Logger
}

var _ call.ControlClient = (*Client)(nil)

// NewClient creates a Vobiz control client from configuration.
func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	timeout := cfg.VobizRequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	http := resty.New().
		SetBaseURL(cfg.VobizAPIBaseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Auth-ID", cfg.VobizAuthID).
		SetHeader("X-Auth-Token", cfg.VobizAuthToken)

	return &Client{
		http:      http,
		authID:    cfg.VobizAuthID,
		hangupURL: cfg.HangupURL(),
		log:       log.With().Str("component", "vobiz-client").Logger(),
	}
}

type makeCallRequest struct {
	To           string `json:"to"`
	From         string `json:"from"`
	AnswerURL    string `json:"answer_url"`
	AnswerMethod string `json:"answer_method"`
	HangupURL    string `json:"hangup_url,omitempty"`
	HangupMethod string `json:"hangup_method,omitempty"`
}

// MakeCall initiates an outbound call. The provider accepts with 201 and
// returns the request/call UUID used as the session key.
func (c *Client) MakeCall(ctx context.Context, to, from, answerURL string) (string, map[string]any, error) {
	req := makeCallRequest{
		To:           to,
		From:         from,
		AnswerURL:    answerURL,
		AnswerMethod: "POST",
		HangupURL:    c.hangupURL,
		HangupMethod: "POST",
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(fmt.Sprintf("/api/v1/Account/%s/Call/", c.authID))
	if err != nil {
		return "", nil, fmt.Errorf("vobiz call request: %w", err)
	}
	if resp.StatusCode() != 201 {
		return "", nil, &APIError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	payload := map[string]any{}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return "", nil, fmt.Errorf("decode vobiz call response: %w", err)
	}

	callID := stringField(payload, "request_uuid")
	if callID == "" {
		callID = stringField(payload, "call_uuid")
	}
	if callID == "" {
		return "", nil, &APIError{StatusCode: resp.StatusCode(), Body: "response missing call UUID"}
	}

	c.log.Info().Str("call_uuid", callID).Str("to", to).Msg("vobiz call created")
	return callID, payload, nil
}

type transferCallRequest struct {
	Legs       string `json:"legs"`
	AlegURL    string `json:"aleg_url"`
	AlegMethod string `json:"aleg_method"`
}

// TransferCall redirects the A leg of an active call to the given callback
// URL. The provider fetches the dial document from that URL.
func (c *Client) TransferCall(ctx context.Context, callID, transferURL string) (map[string]any, error) {
	req := transferCallRequest{
		Legs:       "aleg",
		AlegURL:    transferURL,
		AlegMethod: "POST",
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(fmt.Sprintf("/api/v1/Account/%s/Call/%s/", c.authID, callID))
	if err != nil {
		return nil, fmt.Errorf("vobiz transfer request: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	payload := map[string]any{}
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &payload); err != nil {
			return nil, fmt.Errorf("decode vobiz transfer response: %w", err)
		}
	}

	c.log.Info().Str("call_uuid", callID).Msg("vobiz transfer accepted")
	return payload, nil
}

func stringField(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}
