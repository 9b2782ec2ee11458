package call_test

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
)

func TestAnswerURLWithBody(t *testing.T) {
	base := "https://broker.example.com/webhooks/answer"

	t.Run("no body leaves URL untouched", func(t *testing.T) {
		got, err := call.AnswerURLWithBody(base, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != base {
			t.Fatalf("expected %q, got %q", base, got)
		}
	})

	t.Run("body rides as query parameter and round-trips", func(t *testing.T) {
		got, err := call.AnswerURLWithBody(base, map[string]any{"lead_id": "L-77", "retry": true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(got, base+"?body_data=") {
			t.Fatalf("unexpected URL shape: %q", got)
		}

		u, err := url.Parse(got)
		if err != nil {
			t.Fatalf("parse result: %v", err)
		}
		var body map[string]any
		if err := json.Unmarshal([]byte(u.Query().Get("body_data")), &body); err != nil {
			t.Fatalf("unmarshal body_data: %v", err)
		}
		if body["lead_id"] != "L-77" || body["retry"] != true {
			t.Fatalf("body did not round-trip: %v", body)
		}
	})
}
