package vobiz

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"
	"testing"
)

func TestStreamDocument(t *testing.T) {
	doc, err := StreamDocument(StreamDocumentParams{
		Greeting:             "Hello there",
		StreamURL:            "wss://broker.example.com/ws",
		RecordingFinishedURL: "https://broker.example.com/webhooks/recording-finished",
		RecordingReadyURL:    "https://broker.example.com/webhooks/recording-ready",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"<Response>",
		"<Speak>Hello there</Speak>",
		`recordSession="true"`,
		`action="https://broker.example.com/webhooks/recording-finished"`,
		`callbackUrl="https://broker.example.com/webhooks/recording-ready"`,
		`bidirectional="true"`,
		`keepCallAlive="true"`,
		`contentType="audio/x-mulaw;rate=8000"`,
		"wss://broker.example.com/ws</Stream>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestStreamDocumentWithoutOptionalVerbs(t *testing.T) {
	doc, err := StreamDocument(StreamDocumentParams{
		StreamURL: "wss://broker.example.com/ws",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(doc, "<Speak>") {
		t.Errorf("unexpected Speak verb without greeting:\n%s", doc)
	}
	if strings.Contains(doc, "<Record") {
		t.Errorf("unexpected Record verb without callback URL:\n%s", doc)
	}
	if !strings.Contains(doc, "<Stream") {
		t.Errorf("expected Stream verb:\n%s", doc)
	}
}

func TestStreamDocumentBodyData(t *testing.T) {
	doc, err := StreamDocument(StreamDocumentParams{
		StreamURL: "wss://broker.example.com/ws",
		BodyData:  map[string]any{"lead_id": "L-77"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx := strings.Index(doc, "?body=")
	if idx < 0 {
		t.Fatalf("expected body parameter on the stream URL:\n%s", doc)
	}
	raw := doc[idx+len("?body="):]
	raw = raw[:strings.Index(raw, "</Stream>")]

	unescaped, err := url.QueryUnescape(raw)
	if err != nil {
		t.Fatalf("unescape body parameter: %v", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(unescaped)
	if err != nil {
		t.Fatalf("decode body parameter: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(decoded, &body); err != nil {
		t.Fatalf("unmarshal body parameter: %v", err)
	}
	if body["lead_id"] != "L-77" {
		t.Fatalf("body data did not round-trip: %v", body)
	}
}

func TestTransferDocument(t *testing.T) {
	doc, err := TransferDocument("Please hold.", "+15550911")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(doc, "<Speak>Please hold.</Speak>") {
		t.Errorf("missing announcement:\n%s", doc)
	}
	if !strings.Contains(doc, "<Number>+15550911</Number>") {
		t.Errorf("missing dial target:\n%s", doc)
	}

	// Speak must precede Dial so the caller hears the announcement.
	if strings.Index(doc, "<Speak>") > strings.Index(doc, "<Dial>") {
		t.Errorf("announcement after dial:\n%s", doc)
	}
}

func TestTransferDocumentWithoutAnnouncement(t *testing.T) {
	doc, err := TransferDocument("", "+15550911")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(doc, "<Speak>") {
		t.Errorf("unexpected Speak verb:\n%s", doc)
	}
}

func TestEmptyDocument(t *testing.T) {
	doc := EmptyDocument()
	if !strings.Contains(doc, "<Response></Response>") {
		t.Fatalf("unexpected empty document: %s", doc)
	}
}
