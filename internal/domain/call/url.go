package call

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// AnswerURLWithBody appends the caller-supplied body data to the answer
// callback URL as a body_data query parameter, so the provider hands it back
// on the answer-stage webhook.
func AnswerURLWithBody(answerURL string, body map[string]any) (string, error) {
	if len(body) == 0 {
		return answerURL, nil
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal body data: %w", err)
	}
	return fmt.Sprintf("%s?body_data=%s", answerURL, url.QueryEscape(string(raw))), nil
}
