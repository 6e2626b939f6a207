package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pairdojo/pairdojo/internal/auth"
	"github.com/pairdojo/pairdojo/internal/handler/dto"
	"github.com/pairdojo/pairdojo/internal/model"
	"github.com/pairdojo/pairdojo/internal/service"
)

// ModerationHandler handles kick, report and event-log requests.
type ModerationHandler struct {
	svc    *service.RoomService
	logger *slog.Logger
}

// NewModerationHandler creates a new ModerationHandler.
func NewModerationHandler(svc *service.RoomService, logger *slog.Logger) *ModerationHandler {
	return &ModerationHandler{
		svc:    svc,
		logger: logger,
	}
}

// Kick handles POST /api/v1/moderation/kick. Room owner only.
func (h *ModerationHandler) Kick(w http.ResponseWriter, r *http.Request) {
	var req dto.KickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	account := auth.MustAccountFromContext(r.Context())

	err := h.svc.Kick(r.Context(), service.KickInput{
		RoomID:    req.RoomID,
		TargetID:  req.UserID,
		Requester: account,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("user kicked for %s", h.svc.KickDuration()),
	})
}

// Report handles POST /api/v1/moderation/report.
func (h *ModerationHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req dto.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	account := auth.MustAccountFromContext(r.Context())

	err := h.svc.Report(r.Context(), service.ReportInput{
		RoomID:         req.RoomID,
		ReportedUserID: req.ReportedUserID,
		Reason:         req.Reason,
		Reporter:       account,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "report submitted"})
}

// LogEvent handles POST /api/v1/events/log.
// Users may only log events about themselves.
func (h *ModerationHandler) LogEvent(w http.ResponseWriter, r *http.Request) {
	var req dto.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	account := auth.MustAccountFromContext(r.Context())

	err := h.svc.LogEvent(r.Context(), service.EventInput{
		EventType: model.EventType(req.EventType),
		UserID:    req.UserID,
		RoomID:    req.RoomID,
		Metadata:  req.Metadata,
		Requester: account,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "event logged"})
}

func (h *ModerationHandler) handleError(w http.ResponseWriter, err error) {
	if writeServiceError(w, err) {
		return
	}
	h.logger.Error("internal_error", "error", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
}
