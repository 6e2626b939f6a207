package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pairdojo/pairdojo/internal/auth"
	"github.com/pairdojo/pairdojo/internal/gateway"
	"github.com/pairdojo/pairdojo/internal/handler/dto"
	"github.com/pairdojo/pairdojo/internal/service"
)

// ProviderHandler issues credentials for the real-time providers after
// verifying room access.
type ProviderHandler struct {
	rooms  *service.RoomService
	collab *gateway.CollabClient
	voice  *gateway.VoiceClient
	logger *slog.Logger
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(rooms *service.RoomService, collab *gateway.CollabClient, voice *gateway.VoiceClient, logger *slog.Logger) *ProviderHandler {
	return &ProviderHandler{
		rooms:  rooms,
		collab: collab,
		voice:  voice,
		logger: logger,
	}
}

// CollabAuth handles POST /api/v1/collab/auth. It checks room access
// and relays the collab provider's token response verbatim.
func (h *ProviderHandler) CollabAuth(w http.ResponseWriter, r *http.Request) {
	var req dto.CollabAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	account := auth.MustAccountFromContext(r.Context())

	if _, err := h.rooms.AuthorizeRoomAccess(r.Context(), req.RoomID, account.ID); err != nil {
		h.handleError(w, err)
		return
	}

	raw, err := h.collab.Authorize(r.Context(), req.RoomID, gateway.Identity{
		UserID: account.ID,
		Name:   account.DisplayName,
		Email:  account.Email,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// VoiceToken handles POST /api/v1/voice/token. It ensures the provider
// room exists, mints a meeting token and returns it with the room URL.
func (h *ProviderHandler) VoiceToken(w http.ResponseWriter, r *http.Request) {
	var req dto.VoiceTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	account := auth.MustAccountFromContext(r.Context())

	room, err := h.rooms.AuthorizeRoomAccess(r.Context(), req.RoomID, account.ID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	providerRoom := h.voice.RoomName(room.RoomID)

	if err := h.voice.EnsureRoom(r.Context(), providerRoom, room.MaxUsers); err != nil {
		h.handleError(w, err)
		return
	}

	token, err := h.voice.CreateMeetingToken(r.Context(), providerRoom, account.DisplayName)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.rooms.RecordVoiceJoin(r.Context(), account.ID, room.RoomID)

	writeJSON(w, http.StatusOK, dto.VoiceTokenResponse{
		Token:   token,
		RoomURL: h.voice.RoomURL(providerRoom),
	})
}

func (h *ProviderHandler) handleError(w http.ResponseWriter, err error) {
	if writeServiceError(w, err) {
		return
	}
	h.logger.Error("internal_error", "error", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
}
