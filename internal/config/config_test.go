package config

import "testing"

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"already normalized", "https://broker.example.com", "https://broker.example.com"},
		{"trailing slash trimmed", "https://broker.example.com/", "https://broker.example.com"},
		{"scheme defaulted to https", "broker.example.com", "https://broker.example.com"},
		{"http preserved for local development", "http://localhost:7860", "http://localhost:7860"},
		{"surrounding whitespace trimmed", "  https://broker.example.com  ", "https://broker.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeBaseURL(tt.raw); got != tt.expected {
				t.Errorf("normalizeBaseURL(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestCallbackURLs(t *testing.T) {
	cfg := &Config{PublicURL: "https://broker.example.com"}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"answer", cfg.AnswerURL(), "https://broker.example.com/webhooks/answer"},
		{"transfer", cfg.TransferURL(), "https://broker.example.com/webhooks/transfer"},
		{"hangup", cfg.HangupURL(), "https://broker.example.com/webhooks/hangup"},
		{"recording finished", cfg.RecordingFinishedURL(), "https://broker.example.com/webhooks/recording-finished"},
		{"recording ready", cfg.RecordingReadyURL(), "https://broker.example.com/webhooks/recording-ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}

func TestStreamURL(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{
			name:     "derived from https public URL",
			cfg:      Config{PublicURL: "https://broker.example.com", StreamPath: "/ws"},
			expected: "wss://broker.example.com/ws",
		},
		{
			name:     "derived from http public URL",
			cfg:      Config{PublicURL: "http://localhost:7860", StreamPath: "/ws"},
			expected: "ws://localhost:7860/ws",
		},
		{
			name:     "explicit override wins",
			cfg:      Config{PublicURL: "https://broker.example.com", StreamPath: "/ws", StreamWsURL: "wss://pipeline.example.com/stream"},
			expected: "wss://pipeline.example.com/stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.StreamURL(); got != tt.expected {
				t.Errorf("StreamURL() = %q, want %q", got, tt.expected)
			}
		})
	}
}
