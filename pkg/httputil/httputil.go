// Package httputil centralizes JSON response writing so every handler
// returns the same envelopes.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"orgvet/internal/dataset"
	"orgvet/pkg/sentinel"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// BadRequest writes a 400 with a description.
func BadRequest(w http.ResponseWriter, description string) {
	WriteJSON(w, http.StatusBadRequest, map[string]string{
		"error":             "bad_request",
		"error_description": description,
	})
}

// WriteError translates domain errors to HTTP responses. Internal errors
// omit the description so infrastructure detail never leaks to callers.
func WriteError(w http.ResponseWriter, err error) {
	var cooldown *dataset.CooldownError
	switch {
	case errors.As(err, &cooldown):
		WriteJSON(w, http.StatusTooManyRequests, map[string]string{
			"error":             "cooldown_active",
			"error_description": cooldown.Error(),
		})
	case errors.Is(err, sentinel.ErrUnavailable):
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "upstream_unavailable",
		})
	case errors.Is(err, sentinel.ErrIntegrity):
		WriteJSON(w, http.StatusBadGateway, map[string]string{
			"error": "upstream_data_rejected",
		})
	default:
		WriteJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal_error",
		})
	}
}
