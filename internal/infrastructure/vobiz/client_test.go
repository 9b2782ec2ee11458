package vobiz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		VobizAuthID:         "AUTH123",
		VobizAuthToken:      "secret",
		VobizAPIBaseURL:     server.URL,
		VobizRequestTimeout: 2 * time.Second,
	}
	return NewClient(cfg, zerolog.Nop()), server
}

func TestClientMakeCall(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/Account/AUTH123/Call/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Auth-ID") != "AUTH123" || r.Header.Get("X-Auth-Token") != "secret" {
			t.Error("missing auth headers")
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if body["to"] != "+15550100" {
			t.Errorf("unexpected to: %v", body["to"])
		}
		if body["answer_method"] != "POST" {
			t.Errorf("unexpected answer_method: %v", body["answer_method"])
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"request_uuid": "req-uuid-1",
			"message":      "call fired",
		})
	})

	callID, payload, err := client.MakeCall(context.Background(), "+15550100", "+15550199", "https://broker.example.com/webhooks/answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if callID != "req-uuid-1" {
		t.Fatalf("expected call ID req-uuid-1, got %s", callID)
	}
	if payload["message"] != "call fired" {
		t.Fatalf("expected provider payload passed through, got %v", payload)
	}
}

func TestClientMakeCallFallsBackToCallUUID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"call_uuid": "call-uuid-2"})
	})

	callID, _, err := client.MakeCall(context.Background(), "+15550100", "+15550199", "https://broker.example.com/webhooks/answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if callID != "call-uuid-2" {
		t.Fatalf("expected call-uuid-2, got %s", callID)
	}
}

func TestClientMakeCallProviderRejection(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "invalid destination"}`))
	})

	_, _, err := client.MakeCall(context.Background(), "bogus", "+15550199", "https://broker.example.com/webhooks/answer")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", apiErr.StatusCode)
	}
}

func TestClientMakeCallMissingUUID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message": "ok"}`))
	})

	_, _, err := client.MakeCall(context.Background(), "+15550100", "+15550199", "https://broker.example.com/webhooks/answer")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError for missing UUID, got %v", err)
	}
}

func TestClientTransferCall(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/Account/AUTH123/Call/call-1/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if body["legs"] != "aleg" {
			t.Errorf("expected legs=aleg, got %v", body["legs"])
		}
		if body["aleg_url"] != "https://broker.example.com/webhooks/transfer" {
			t.Errorf("unexpected aleg_url: %v", body["aleg_url"])
		}

		_ = json.NewEncoder(w).Encode(map[string]any{"message": "transferred"})
	})

	payload, err := client.TransferCall(context.Background(), "call-1", "https://broker.example.com/webhooks/transfer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["message"] != "transferred" {
		t.Fatalf("expected ack payload, got %v", payload)
	}
}

func TestClientTransferCallProviderRejection(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "call not found"}`))
	})

	_, err := client.TransferCall(context.Background(), "gone", "https://broker.example.com/webhooks/transfer")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", apiErr.StatusCode)
	}
}

func TestClientTransferCallTransportError(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close() // connection refused from here on

	_, err := client.TransferCall(context.Background(), "call-1", "https://broker.example.com/webhooks/transfer")
	if err == nil {
		t.Fatal("expected transport error")
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatal("transport failure must not be reported as a provider rejection")
	}
}
