package devserver

import (
	"encoding/json"
	"net/http"
)

// Reason codes carried in error responses.
const (
	ReasonBadRequest   = "bad_request"
	ReasonInvalidField = "invalid_field"
	ReasonNotFound     = "not_found"
	ReasonOffline      = "offline"
	ReasonInternal     = "internal_error"
)

// ErrorEnvelope is the error response body.
type ErrorEnvelope struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code       string `json:"code"`
	ReasonCode string `json:"reason_code"`
	Message    string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, reason, message string) {
	writeJSON(w, status, ErrorEnvelope{Error: ErrorDetail{
		Code:       http.StatusText(status),
		ReasonCode: reason,
		Message:    message,
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
