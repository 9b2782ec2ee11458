package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	domaincall "github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/interfaces/httpserver/handlers"
)

const xmlContentType = "application/xml"

// RegisterWebhookRoutes registers the provider callback routes on the engine
// root. The provider invokes these with form-encoded POSTs but may retry some
// stages as GETs, so both methods are accepted on every path.
func RegisterWebhookRoutes(engine *gin.Engine, handler *handlers.WebhookHandler) {
	routes := map[string]gin.HandlerFunc{
		"/webhooks/answer":             answerWebhook(handler),
		"/webhooks/transfer":           transferWebhook(handler),
		"/webhooks/hangup":             hangupWebhook(handler),
		"/webhooks/recording-finished": recordingFinishedWebhook(handler),
		"/webhooks/recording-ready":    recordingReadyWebhook(handler),
	}
	for path, fn := range routes {
		engine.POST(path, fn)
		engine.GET(path, fn)
	}
}

func answerWebhook(handler *handlers.WebhookHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		callID := webhookParam(c, "CallUUID")
		doc := handler.Answer(c.Request.Context(), callID, parseBodyData(c))
		c.Data(http.StatusOK, xmlContentType, []byte(doc))
	}
}

func transferWebhook(handler *handlers.WebhookHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		callID := webhookParam(c, "CallUUID")
		doc := handler.Transfer(c.Request.Context(), callID)
		c.Data(http.StatusOK, xmlContentType, []byte(doc))
	}
}

func hangupWebhook(handler *handlers.WebhookHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		callID := webhookParam(c, "CallUUID")
		doc := handler.Hangup(c.Request.Context(), callID)
		c.Data(http.StatusOK, xmlContentType, []byte(doc))
	}
}

func recordingFinishedWebhook(handler *handlers.WebhookHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		callID := webhookParam(c, "CallUUID")
		meta := domaincall.RecordingMetadata{
			RecordingID: webhookParam(c, "RecordingID"),
			RecordURL:   webhookParam(c, "RecordUrl"),
			Duration:    webhookParam(c, "RecordingDuration"),
			DurationMs:  webhookParam(c, "RecordingDurationMs"),
			StartMs:     webhookParam(c, "RecordingStartMs"),
			EndMs:       webhookParam(c, "RecordingEndMs"),
			EndReason:   webhookParam(c, "RecordingEndReason"),
		}
		doc := handler.RecordingFinished(c.Request.Context(), callID, meta)
		c.Data(http.StatusOK, xmlContentType, []byte(doc))
	}
}

func recordingReadyWebhook(handler *handlers.WebhookHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		callID := webhookParam(c, "CallUUID")
		doc := handler.RecordingReady(c.Request.Context(), callID, webhookParam(c, "RecordUrl"))
		c.Data(http.StatusOK, xmlContentType, []byte(doc))
	}
}

// webhookParam reads a callback field from the form body, falling back to the
// query string for GET retries.
func webhookParam(c *gin.Context, name string) string {
	if v := c.PostForm(name); v != "" {
		return v
	}
	return c.Query(name)
}

// parseBodyData decodes the body_data query parameter that the initiate
// operation appended to the answer URL.
func parseBodyData(c *gin.Context) map[string]any {
	raw := c.Query("body_data")
	if raw == "" {
		return nil
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("malformed body_data parameter, ignoring")
		return nil
	}
	return body
}
