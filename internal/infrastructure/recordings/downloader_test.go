package recordings

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/config"
)

func newTestDownloader(t *testing.T, maxAttempts int) *Downloader {
	t.Helper()
	cfg := &config.Config{
		RecordingsDir:          t.TempDir(),
		RecordingMaxAttempts:   maxAttempts,
		RecordingRetryDelay:    time.Millisecond,
		RecordingRetryMaxDelay: 5 * time.Millisecond,
		VobizRequestTimeout:    2 * time.Second,
		VobizAuthID:            "AUTH123",
		VobizAuthToken:         "secret",
	}
	d, err := NewDownloader(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return d
}

func TestDownloaderFetchStoresRecording(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Auth-ID") != "AUTH123" {
			t.Error("missing auth header")
		}
		_, _ = w.Write([]byte("audio-bytes"))
	}))
	defer server.Close()

	d := newTestDownloader(t, 3)
	d.Fetch("call-1", server.URL+"/rec/call-1.mp3")
	d.Wait()

	data, err := os.ReadFile(filepath.Join(d.dir, "call-1.mp3"))
	if err != nil {
		t.Fatalf("expected stored recording: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Fatalf("unexpected file content: %q", data)
	}
}

func TestDownloaderRetriesUntilSuccess(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("audio-bytes"))
	}))
	defer server.Close()

	d := newTestDownloader(t, 5)
	d.Fetch("call-1", server.URL+"/rec/call-1.wav")
	d.Wait()

	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
	if _, err := os.Stat(filepath.Join(d.dir, "call-1.wav")); err != nil {
		t.Fatalf("expected stored recording: %v", err)
	}
}

func TestDownloaderAbandonsAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	d := newTestDownloader(t, 3)
	d.Fetch("call-1", server.URL+"/rec/call-1.mp3")
	d.Wait()

	if got := calls.Load(); got != 3 {
		t.Fatalf("expected %d attempts, got %d", 3, got)
	}
	if _, err := os.Stat(filepath.Join(d.dir, "call-1.mp3")); !os.IsNotExist(err) {
		t.Fatal("expected no file after abandoned download")
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"mp3 path", "https://cdn.example.com/rec/abc.mp3", ".mp3"},
		{"wav path", "https://cdn.example.com/rec/abc.wav", ".wav"},
		{"query string ignored", "https://cdn.example.com/rec/abc.wav?token=x.y", ".wav"},
		{"no extension defaults to mp3", "https://cdn.example.com/rec/abc", ".mp3"},
		{"unparseable defaults to mp3", "://bad", ".mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extension(tt.url); got != tt.expected {
				t.Errorf("extension(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestBackoff(t *testing.T) {
	initial := 100 * time.Millisecond
	max := 400 * time.Millisecond

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 400 * time.Millisecond}, // capped
	}

	for _, tt := range tests {
		if got := backoff(tt.attempt, initial, max); got != tt.expected {
			t.Errorf("backoff(%d) = %v, want %v", tt.attempt, got, tt.expected)
		}
	}
}
