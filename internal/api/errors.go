package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// FieldError is a structured validation failure for one request field.
type FieldError struct {
	Field   string
	Message string
}

// ServerError is the single error shape constructed at the client boundary
// for every non-2xx response. The backend reports failures in a `detail`
// field that is either a list of per-field errors or a single string; both
// shapes land here so callers never inspect raw response bodies.
type ServerError struct {
	Status      int
	Message     string
	FieldErrors []FieldError
}

// Error renders the most specific message available: the first field error,
// then the detail string, then a generic fallback.
func (e *ServerError) Error() string {
	if len(e.FieldErrors) > 0 {
		fe := e.FieldErrors[0]
		if fe.Field != "" {
			return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
		}
		return fe.Message
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// IsUnauthorized reports whether the server rejected the session token.
func (e *ServerError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// errorBody matches the backend's error envelope. `detail` is decoded
// leniently because its JSON type varies by endpoint.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// detailEntry is one element of a structured `detail` list.
type detailEntry struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

func newServerError(status int, body []byte) *ServerError {
	serverErr := &ServerError{Status: status}

	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err != nil {
		return serverErr
	}

	if len(envelope.Detail) > 0 {
		// detail may be a plain string
		var detail string
		if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
			serverErr.Message = detail
			return serverErr
		}

		// or a list of field errors
		var entries []detailEntry
		if err := json.Unmarshal(envelope.Detail, &entries); err == nil {
			for _, entry := range entries {
				serverErr.FieldErrors = append(serverErr.FieldErrors, FieldError{
					Field:   fieldFromLoc(entry.Loc),
					Message: entry.Msg,
				})
			}
			return serverErr
		}
	}

	if envelope.Error != "" {
		serverErr.Message = envelope.Error
	} else if envelope.Message != "" {
		serverErr.Message = envelope.Message
	}

	return serverErr
}

// fieldFromLoc extracts the field name from a detail location path like
// ["body", "email"]. Non-string segments (array indices) are skipped.
func fieldFromLoc(loc []json.RawMessage) string {
	var parts []string
	for _, raw := range loc {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		if s == "body" || s == "query" || s == "path" {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ".")
}
