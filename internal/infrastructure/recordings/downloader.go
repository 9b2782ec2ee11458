package recordings

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/config"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/infrastructure/metrics"
)

const defaultExtension = ".mp3"

// Downloader fetches finished recording artifacts from the provider's media
// server and stores them under a configured directory, one file per call,
// named {call_id}.<ext>.
//
// Fetch is detached from the webhook response path: the provider callback is
// acknowledged immediately and download plus retry run in the background. A
// missed recording never blocks or fails the call lifecycle.
type Downloader struct {
	http         *resty.Client
	dir          string
	maxAttempts  int
	initialDelay time.Duration
	maxDelay     time.Duration
	log          zerolog.Logger
	wg           sync.WaitGroup
}

var _ call.RecordingFetcher = (*Downloader)(nil)

// NewDownloader creates a recording downloader and ensures the target
// directory exists.
func NewDownloader(cfg *config.Config, log zerolog.Logger) (*Downloader, error) {
	if err := os.MkdirAll(cfg.RecordingsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create recordings directory: %w", err)
	}

	http := resty.New().
		SetTimeout(cfg.VobizRequestTimeout).
		SetHeader("X-Auth-ID", cfg.VobizAuthID).
		SetHeader("X-Auth-Token", cfg.VobizAuthToken)

	return &Downloader{
		http:         http,
		dir:          cfg.RecordingsDir,
		maxAttempts:  cfg.RecordingMaxAttempts,
		initialDelay: cfg.RecordingRetryDelay,
		maxDelay:     cfg.RecordingRetryMaxDelay,
		log:          log.With().Str("component", "recording-downloader").Logger(),
	}, nil
}

// Fetch schedules a background download and returns immediately.
func (d *Downloader) Fetch(callID, downloadURL string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.download(context.Background(), callID, downloadURL)
	}()
}

// Wait blocks until all in-flight downloads have finished. Called on
// shutdown so completed recordings are not lost to process exit.
func (d *Downloader) Wait() {
	d.wg.Wait()
}

func (d *Downloader) download(ctx context.Context, callID, downloadURL string) {
	dest := filepath.Join(d.dir, callID+extension(downloadURL))
	start := time.Now()

	var lastErr error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		err := d.attempt(ctx, downloadURL, dest)
		if err == nil {
			metrics.RecordRecordingDownloaded(time.Since(start))
			d.log.Info().
				Str("call_id", callID).
				Str("path", dest).
				Int("attempt", attempt).
				Msg("recording stored")
			return
		}

		lastErr = err
		if attempt == d.maxAttempts {
			break
		}

		delay := backoff(attempt, d.initialDelay, d.maxDelay)
		d.log.Warn().
			Err(err).
			Str("call_id", callID).
			Int("attempt", attempt).
			Int("max_attempts", d.maxAttempts).
			Dur("retry_delay", delay).
			Msg("recording download failed, retrying")

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}

	// Reported and abandoned; the call lifecycle is unaffected.
	metrics.RecordRecordingDownloadError()
	d.log.Error().
		Err(lastErr).
		Str("call_id", callID).
		Str("url", downloadURL).
		Int("attempts", d.maxAttempts).
		Msg("recording download abandoned")
}

func (d *Downloader) attempt(ctx context.Context, downloadURL, dest string) error {
	resp, err := d.http.R().
		SetContext(ctx).
		SetOutput(dest).
		Get(downloadURL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		// resty wrote the error body to dest; drop it.
		_ = os.Remove(dest)
		return fmt.Errorf("download failed: HTTP %d", resp.StatusCode())
	}
	return nil
}

func extension(downloadURL string) string {
	if u, err := url.Parse(downloadURL); err == nil {
		if ext := path.Ext(u.Path); ext != "" {
			return ext
		}
	}
	return defaultExtension
}

// backoff computes the exponential retry delay, capped at max.
func backoff(attempt int, initial, max time.Duration) time.Duration {
	delay := float64(initial) * math.Pow(2, float64(attempt-1))
	if delay > float64(max) {
		delay = float64(max)
	}
	return time.Duration(delay)
}
