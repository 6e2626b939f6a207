package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pairdojo/pairdojo/internal/auth"
	"github.com/pairdojo/pairdojo/internal/handler/dto"
	"github.com/pairdojo/pairdojo/internal/service"
)

// RoomHandler handles HTTP requests for room operations.
type RoomHandler struct {
	svc    *service.RoomService
	logger *slog.Logger
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(svc *service.RoomService, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/rooms.
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	account := auth.MustAccountFromContext(r.Context())

	room, err := h.svc.CreateRoom(r.Context(), service.CreateRoomInput{
		Title:    req.Title,
		Language: req.Language,
		IsPublic: req.IsPublic,
		MaxUsers: req.MaxUsers,
		Creator:  account,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToRoomResponse(room))
}

// List handles GET /api/v1/rooms.
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms := h.svc.ListPublicRooms(r.Context())
	writeJSON(w, http.StatusOK, dto.ToRoomListResponse(rooms))
}

// Get handles GET /api/v1/rooms/{roomID}.
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	room, err := h.svc.GetRoom(r.Context(), roomID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRoomResponse(room))
}

// Join handles POST /api/v1/rooms/{roomID}/join.
// The body is optional; private rooms require an invite code in it.
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	var req dto.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	account := auth.MustAccountFromContext(r.Context())

	room, err := h.svc.JoinRoom(r.Context(), roomID, req.InviteCode, account)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRoomResponse(room))
}

// Leave handles POST /api/v1/rooms/{roomID}/leave.
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	account := auth.MustAccountFromContext(r.Context())

	if err := h.svc.LeaveRoom(r.Context(), roomID, account); err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "left room"})
}

// QuickJoin handles GET /api/v1/rooms/quick-join/find.
// It joins an available public room or creates one for the user.
func (h *RoomHandler) QuickJoin(w http.ResponseWriter, r *http.Request) {
	account := auth.MustAccountFromContext(r.Context())

	room, created, err := h.svc.QuickJoin(r.Context(), account)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.QuickJoinResponse{
		Room:    dto.ToRoomResponse(room),
		Created: created,
	})
}

func (h *RoomHandler) handleError(w http.ResponseWriter, err error) {
	if writeServiceError(w, err) {
		return
	}
	h.logger.Error("internal_error", "error", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
}
