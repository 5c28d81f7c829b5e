package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/chotta-app/chotta/internal/auth"
	"github.com/chotta-app/chotta/internal/invite"
	"github.com/chotta-app/chotta/internal/service"
	"github.com/chotta-app/chotta/internal/storage"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, invite.ErrInvalidToken):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrRoomExpired):
		status = http.StatusGone
	case errors.Is(err, auth.ErrInvalidPasscode):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrUnknownParticipant),
		errors.Is(err, service.ErrNoOwers),
		errors.Is(err, service.ErrPercentSum),
		errors.Is(err, service.ErrShareSum),
		errors.Is(err, service.ErrRateUnavailable),
		errors.Is(err, service.ErrSelfTransfer),
		errors.Is(err, auth.ErrWeakPasscode):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "error", err)
		// Do not leak internals to the client.
		writeJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeBody decodes a JSON request body into dst, rejecting trailing garbage.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}
