package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// APIError is the single error kind for non-success responses. Message is
// extracted best-effort from the response body; StatusCode is always set.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// newAPIError drains the response body and builds an *APIError from it.
func newAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(resp.StatusCode, body),
	}
}

// errorMessage extracts a human-readable message from an error body.
// The service reports errors as {"detail": "..."}; "message" and "error"
// envelopes are accepted for compatibility. Unparsable bodies fall back to the
// status line — a local-recovery boundary, parse failures are never re-raised.
func errorMessage(status int, body []byte) string {
	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if len(envelope.Detail) > 0 {
			var s string
			if err := json.Unmarshal(envelope.Detail, &s); err == nil && s != "" {
				return s
			}
			// Validation errors arrive as structured detail; surface them raw.
			if d := string(envelope.Detail); d != "null" {
				return d
			}
		}
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return fmt.Sprintf("request failed: %d %s", status, http.StatusText(status))
}
