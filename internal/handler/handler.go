// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pairdojo/pairdojo/internal/gateway"
	"github.com/pairdojo/pairdojo/internal/handler/dto"
	"github.com/pairdojo/pairdojo/internal/service"
)

// NotFound handles 404 responses.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already on the wire; an encode failure here
	// can only be logged by the transport, not reported to the client.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeServiceError maps service errors to HTTP responses. Handlers
// share the mapping so a given error always produces the same status.
func writeServiceError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, "ROOM_NOT_FOUND", "room not found")
	case errors.Is(err, service.ErrKickedFromRoom):
		writeError(w, http.StatusForbidden, "KICKED", "you are temporarily banned from this room")
	case errors.Is(err, service.ErrRoomFull):
		writeError(w, http.StatusBadRequest, "ROOM_FULL", "room is full")
	case errors.Is(err, service.ErrInvalidInvite):
		writeError(w, http.StatusForbidden, "INVALID_INVITE", "invalid invite code")
	case errors.Is(err, service.ErrInvalidLanguage):
		writeError(w, http.StatusBadRequest, "INVALID_LANGUAGE", "unsupported language")
	case errors.Is(err, service.ErrInvalidCapacity):
		writeError(w, http.StatusBadRequest, "INVALID_CAPACITY", "room capacity out of range")
	case errors.Is(err, service.ErrNotRoomOwner):
		writeError(w, http.StatusForbidden, "NOT_ROOM_OWNER", "only the room owner can do this")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "EMAIL_TAKEN", "email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	case errors.Is(err, service.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "ACCOUNT_NOT_FOUND", "account not found")
	case errors.Is(err, service.ErrEventNotOwn):
		writeError(w, http.StatusForbidden, "EVENT_NOT_OWN", "cannot log events for other users")
	case errors.Is(err, service.ErrInvalidEventType):
		writeError(w, http.StatusBadRequest, "INVALID_EVENT_TYPE", "unknown event type")
	case errors.Is(err, gateway.ErrProviderFailure):
		writeError(w, http.StatusBadGateway, "PROVIDER_ERROR", "upstream provider request failed")
	default:
		return false
	}
	return true
}
