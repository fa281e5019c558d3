package contentapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// HTTPError is a non-2xx answer from the worker.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "content api http error"
	}
	if e.Body == "" {
		return fmt.Sprintf("content api http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("content api http error: status=%d body=%s", e.StatusCode, e.Body)
}

// Message extracts the worker's error text from the body, if it sent one.
func (e *HTTPError) Message() string {
	if e == nil || strings.TrimSpace(e.Body) == "" {
		return ""
	}
	var env struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(e.Body), &env); err != nil {
		return ""
	}
	switch v := env.Error.(type) {
	case string:
		return v
	case map[string]any:
		if msg, ok := v["message"].(string); ok {
			return msg
		}
	}
	return env.Message
}
