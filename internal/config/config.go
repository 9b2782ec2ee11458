package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the call broker.
type Config struct {
	// Service settings
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"vobiz-call-broker"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"PORT" envDefault:"7860"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// OpenTelemetry
	EnableTracing bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`

	// Vobiz control API
	VobizAuthID         string        `env:"VOBIZ_AUTH_ID"`
	VobizAuthToken      string        `env:"VOBIZ_AUTH_TOKEN"`
	VobizAPIBaseURL     string        `env:"VOBIZ_API_BASE_URL" envDefault:"https://api.vobiz.ai"`
	VobizPhoneNumber    string        `env:"VOBIZ_PHONE_NUMBER"`
	VobizRequestTimeout time.Duration `env:"VOBIZ_REQUEST_TIMEOUT" envDefault:"15s"`

	// Public addresses. PublicURL is this system's externally reachable base
	// address; Vobiz fetches callback documents from it. StreamWsURL
	// overrides the media stream address (the hosted pipeline endpoint in
	// production).
	PublicURL   string `env:"PUBLIC_URL"`
	StreamWsURL string `env:"STREAM_WS_URL"`
	StreamPath  string `env:"STREAM_PATH" envDefault:"/ws"`

	// Transfer
	TransferTarget       string `env:"TRANSFER_TARGET"`
	TransferAnnouncement string `env:"TRANSFER_ANNOUNCEMENT" envDefault:"Please hold while we connect you to an agent."`
	AnswerGreeting       string `env:"ANSWER_GREETING" envDefault:"Hello, you are connected to our voice assistant."`

	// Recordings
	RecordingsDir          string        `env:"RECORDINGS_DIR" envDefault:"recordings"`
	RecordingMaxAttempts   int           `env:"RECORDING_MAX_ATTEMPTS" envDefault:"5"`
	RecordingRetryDelay    time.Duration `env:"RECORDING_RETRY_DELAY" envDefault:"500ms"`
	RecordingRetryMaxDelay time.Duration `env:"RECORDING_RETRY_MAX_DELAY" envDefault:"10s"`

	// Session retention
	CallRetentionTTL   time.Duration `env:"CALL_RETENTION_TTL" envDefault:"1h"`
	CallReaperInterval time.Duration `env:"CALL_REAPER_INTERVAL" envDefault:"1m"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if strings.TrimSpace(cfg.VobizAuthID) == "" {
		return nil, fmt.Errorf("VOBIZ_AUTH_ID is required")
	}
	if strings.TrimSpace(cfg.VobizAuthToken) == "" {
		return nil, fmt.Errorf("VOBIZ_AUTH_TOKEN is required")
	}
	if strings.TrimSpace(cfg.PublicURL) == "" {
		return nil, fmt.Errorf("PUBLIC_URL is required; Vobiz cannot reach this server without it")
	}
	cfg.PublicURL = normalizeBaseURL(cfg.PublicURL)

	return cfg, nil
}

// Addr returns the HTTP server address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// AnswerURL is the answer-stage callback address handed to Vobiz.
func (c *Config) AnswerURL() string {
	return c.PublicURL + "/webhooks/answer"
}

// TransferURL is the callback Vobiz fetches the dial document from when
// executing an armed transfer.
func (c *Config) TransferURL() string {
	return c.PublicURL + "/webhooks/transfer"
}

// HangupURL is the terminal-event callback address.
func (c *Config) HangupURL() string {
	return c.PublicURL + "/webhooks/hangup"
}

// RecordingFinishedURL is the recording-stopped callback address.
func (c *Config) RecordingFinishedURL() string {
	return c.PublicURL + "/webhooks/recording-finished"
}

// RecordingReadyURL is the artifact-available callback address.
func (c *Config) RecordingReadyURL() string {
	return c.PublicURL + "/webhooks/recording-ready"
}

// StreamURL is the media stream address placed in answer documents. The
// STREAM_WS_URL override wins; otherwise it is derived from PUBLIC_URL with
// a websocket scheme.
func (c *Config) StreamURL() string {
	if c.StreamWsURL != "" {
		return c.StreamWsURL
	}

	base := c.PublicURL
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + c.StreamPath
}

// normalizeBaseURL trims trailing slashes and defaults the scheme to https,
// since Vobiz requires reachable TLS callbacks outside local development.
func normalizeBaseURL(raw string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return raw
}
