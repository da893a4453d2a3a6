package openai

import (
	"encoding/json"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// apiErrorDetail extracts the upstream status and a human-readable detail from a client error.
// Status is 0 when no HTTP response was received.
func apiErrorDetail(err error) (int, string) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode, apiErr.Message
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return reqErr.HTTPStatusCode, detail
		}
		if len(reqErr.Body) > 0 {
			return reqErr.HTTPStatusCode, string(reqErr.Body)
		}
		return reqErr.HTTPStatusCode, reqErr.Error()
	}

	return 0, err.Error()
}

// extractDetail extracts the "detail" field from a JSON error body (FastAPI style servers).
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
