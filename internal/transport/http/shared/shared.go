// Package shared holds the JSON envelope helpers used by every handler so
// success and failure render identically across features.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "taskdeck/pkg/domain-errors"
)

// errorBody is the uniform failure envelope. The message is the domain
// error's caller-facing message; causes never leak here.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON renders v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the uniform JSON failure
// envelope. Errors without a code render as a generic 500.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	WriteJSON(w, dErrors.ToHTTPStatus(code), errorBody{
		Error:   string(code),
		Message: dErrors.MessageOf(err),
	})
}
