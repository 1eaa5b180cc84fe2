// ABOUTME: Error response helpers for API handlers
// ABOUTME: Maps typed core errors to HTTP status codes and a structured error body

package handlers

import (
	"net/http"

	coreerrors "microfeed-api/core/errors"

	"github.com/goccy/go-json"
)

// ErrorBody is the structured error payload returned by every endpoint.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable code and human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a core error onto an HTTP response.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"

	switch {
	case coreerrors.IsNotFound(err):
		status = http.StatusNotFound
		code = "not_found"
	case coreerrors.IsValidation(err):
		status = http.StatusBadRequest
		code = "invalid_request"
	case coreerrors.IsExternalAPI(err):
		status = http.StatusBadGateway
		code = "upstream_error"
	}

	writeJSON(w, status, ErrorBody{Error: ErrorDetail{Code: code, Message: err.Error()}})
}

// writeJSON serializes a payload and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		// The payload is built from our own types; a marshal failure is a bug.
		http.Error(w, `{"error":{"code":"internal_error","message":"serialization failed"}}`,
			http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}
