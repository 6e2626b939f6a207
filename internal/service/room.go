package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pairdojo/pairdojo/internal/analytics"
	"github.com/pairdojo/pairdojo/internal/metrics"
	"github.com/pairdojo/pairdojo/internal/model"
	"github.com/pairdojo/pairdojo/internal/store"
)

// Room service errors.
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrKickedFromRoom   = errors.New("temporarily banned from this room")
	ErrInvalidInvite    = errors.New("invalid invite code")
	ErrInvalidLanguage  = errors.New("unsupported language")
	ErrInvalidCapacity  = errors.New("room capacity out of range")
	ErrNotRoomOwner     = errors.New("only the room owner can do this")
	ErrEventNotOwn      = errors.New("cannot log events for other users")
	ErrInvalidEventType = errors.New("unknown event type")
)

// Quick-join auto-created rooms use these settings.
const (
	quickJoinLanguage = model.LanguageJavaScript
	quickJoinMaxUsers = 6
)

// RoomService handles room lifecycle, occupancy and moderation flows.
type RoomService struct {
	registry  *store.Registry
	ledger    *store.Ledger
	publisher *analytics.Publisher
	metrics   metrics.Recorder
	logger    *slog.Logger

	kickDuration       time.Duration
	quickJoinThreshold int
}

// NewRoomService creates a new RoomService.
func NewRoomService(
	registry *store.Registry,
	ledger *store.Ledger,
	publisher *analytics.Publisher,
	recorder metrics.Recorder,
	logger *slog.Logger,
	kickDuration time.Duration,
	quickJoinThreshold int,
) *RoomService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RoomService{
		registry:           registry,
		ledger:             ledger,
		publisher:          publisher,
		metrics:            recorder,
		logger:             logger.With("component", "service.room"),
		kickDuration:       kickDuration,
		quickJoinThreshold: quickJoinThreshold,
	}
}

// CreateRoomInput defines input for creating a room.
type CreateRoomInput struct {
	Title    string
	Language string
	IsPublic bool
	MaxUsers int
	Creator  *model.Account
}

// CreateRoom creates a room and records a room-session analytics record.
// Language and capacity are re-checked here so the registry only ever
// holds well-formed rooms, whatever the caller.
func (s *RoomService) CreateRoom(ctx context.Context, input CreateRoomInput) (*model.Room, error) {
	lang := model.Language(input.Language)
	if !lang.IsValid() {
		return nil, ErrInvalidLanguage
	}
	if input.MaxUsers < model.MinRoomUsers || input.MaxUsers > model.MaxRoomUsers {
		return nil, ErrInvalidCapacity
	}

	room := s.registry.CreateRoom(store.CreateRoomParams{
		Title:       input.Title,
		Language:    lang,
		IsPublic:    input.IsPublic,
		MaxUsers:    input.MaxUsers,
		CreatorID:   input.Creator.ID,
		CreatorName: input.Creator.DisplayName,
	})

	s.publisher.RoomSession(room)
	s.metrics.IncRoomCreated()
	s.logger.Info("room_created",
		"room_id", room.RoomID,
		"is_public", room.IsPublic,
		"max_users", room.MaxUsers,
	)

	return room, nil
}

// ListPublicRooms returns all public rooms, newest first.
func (s *RoomService) ListPublicRooms(ctx context.Context) []*model.Room {
	return s.registry.PublicRooms()
}

// GetRoom retrieves a room by id.
func (s *RoomService) GetRoom(ctx context.Context, roomID string) (*model.Room, error) {
	room, err := s.registry.GetRoom(roomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// JoinRoom adds the user to the room after the moderation, capacity and
// invite-code guards pass. Returns a fresh snapshot of the room.
func (s *RoomService) JoinRoom(ctx context.Context, roomID, inviteCode string, user *model.Account) (*model.Room, error) {
	room, err := s.registry.GetRoom(roomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	if s.ledger.IsKicked(roomID, user.ID) {
		return nil, ErrKickedFromRoom
	}

	if s.registry.IsFull(roomID) {
		return nil, ErrRoomFull
	}

	if !room.IsPublic && (inviteCode == "" || inviteCode != room.InviteCode) {
		return nil, ErrInvalidInvite
	}

	// The insert re-checks capacity under the registry's write lock, so
	// two joins racing for the last slot cannot both get in.
	if err := s.registry.TryAddParticipant(roomID, user.ID); err != nil {
		return nil, mapJoinError(err)
	}

	s.publisher.Event(model.EventRoomJoin, user.ID, roomID, map[string]string{
		"display_name": user.DisplayName,
	})
	s.metrics.IncRoomJoined()

	room, err = s.registry.GetRoom(roomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// LeaveRoom removes the user from the room's participant set.
func (s *RoomService) LeaveRoom(ctx context.Context, roomID string, user *model.Account) error {
	if _, err := s.registry.GetRoom(roomID); err != nil {
		return ErrRoomNotFound
	}

	s.registry.RemoveParticipant(roomID, user.ID)

	s.publisher.Event(model.EventRoomLeave, user.ID, roomID, nil)
	s.metrics.IncRoomLeft()
	return nil
}

// QuickJoin finds a sparse public room and joins it, or creates a fresh
// public room for the user. Returns the room and whether it was created.
func (s *RoomService) QuickJoin(ctx context.Context, user *model.Account) (*model.Room, bool, error) {
	// A room found sparse may fill before the insert; losing that race
	// just means creating a fresh room instead.
	if room, ok := s.registry.FindAvailablePublicRoom(s.quickJoinThreshold); ok {
		if err := s.registry.TryAddParticipant(room.RoomID, user.ID); err == nil {
			s.publisher.Event(model.EventRoomJoin, user.ID, room.RoomID, map[string]string{
				"quick_join": "true",
			})
			s.metrics.IncQuickJoin(false)

			joined, err := s.registry.GetRoom(room.RoomID)
			if err != nil {
				return nil, false, ErrRoomNotFound
			}
			return joined, false, nil
		}
	}

	room, err := s.CreateRoom(ctx, CreateRoomInput{
		Title:    fmt.Sprintf("%s's Room", user.DisplayName),
		Language: string(quickJoinLanguage),
		IsPublic: true,
		MaxUsers: quickJoinMaxUsers,
		Creator:  user,
	})
	if err != nil {
		return nil, false, err
	}

	if err := s.registry.TryAddParticipant(room.RoomID, user.ID); err != nil {
		return nil, false, mapJoinError(err)
	}

	s.publisher.Event(model.EventRoomJoin, user.ID, room.RoomID, map[string]string{
		"quick_join":   "true",
		"auto_created": "true",
	})
	s.metrics.IncQuickJoin(true)

	created, err := s.registry.GetRoom(room.RoomID)
	if err != nil {
		return nil, false, ErrRoomNotFound
	}
	return created, true, nil
}

// mapJoinError translates registry insert errors to service errors.
func mapJoinError(err error) error {
	switch {
	case errors.Is(err, store.ErrRoomNotFound):
		return ErrRoomNotFound
	case errors.Is(err, store.ErrRoomFull):
		return ErrRoomFull
	default:
		return err
	}
}

// AuthorizeRoomAccess verifies the room exists and the user is not
// banned from it. Used before delegating to the real-time providers.
func (s *RoomService) AuthorizeRoomAccess(ctx context.Context, roomID, userID string) (*model.Room, error) {
	room, err := s.registry.GetRoom(roomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}
	if s.ledger.IsKicked(roomID, userID) {
		return nil, ErrKickedFromRoom
	}
	return room, nil
}

// KickInput defines input for kicking a user from a room.
type KickInput struct {
	RoomID    string
	TargetID  string
	Requester *model.Account
}

// Kick bans the target from the room for the configured duration and
// removes them from the participant set. Owner-only.
func (s *RoomService) Kick(ctx context.Context, input KickInput) error {
	room, err := s.registry.GetRoom(input.RoomID)
	if err != nil {
		return ErrRoomNotFound
	}

	if room.CreatedBy != input.Requester.ID {
		return ErrNotRoomOwner
	}

	s.ledger.Kick(input.RoomID, input.TargetID, s.kickDuration)
	s.registry.RemoveParticipant(input.RoomID, input.TargetID)

	s.publisher.Event(model.EventUserKicked, input.TargetID, input.RoomID, map[string]string{
		"kicked_by": input.Requester.ID,
	})
	s.metrics.IncKick()
	s.logger.Info("user_kicked",
		"room_id", input.RoomID,
		"target_id", input.TargetID,
		"duration", s.kickDuration,
	)
	return nil
}

// KickDuration exposes the configured ban length for response messages.
func (s *RoomService) KickDuration() time.Duration {
	return s.kickDuration
}

// ReportInput defines input for reporting a user.
type ReportInput struct {
	RoomID         string
	ReportedUserID string
	Reason         string
	Reporter       *model.Account
}

// Report records an abuse report for later review.
func (s *RoomService) Report(ctx context.Context, input ReportInput) error {
	if _, err := s.registry.GetRoom(input.RoomID); err != nil {
		return ErrRoomNotFound
	}

	s.publisher.Report(input.Reporter.ID, input.ReportedUserID, input.RoomID, input.Reason)
	s.publisher.Event(model.EventUserReported, input.ReportedUserID, input.RoomID, map[string]string{
		"reporter_id": input.Reporter.ID,
		"reason":      input.Reason,
	})
	s.metrics.IncReport()
	return nil
}

// EventInput defines input for client-submitted analytics events.
type EventInput struct {
	EventType model.EventType
	UserID    string
	RoomID    string
	Metadata  map[string]string
	Requester *model.Account
}

// LogEvent publishes a client analytics event.
// Users may only log events about themselves.
func (s *RoomService) LogEvent(ctx context.Context, input EventInput) error {
	if input.UserID != input.Requester.ID {
		return ErrEventNotOwn
	}
	if !input.EventType.IsValid() {
		return ErrInvalidEventType
	}

	s.publisher.Event(input.EventType, input.UserID, input.RoomID, input.Metadata)
	return nil
}

// RecordVoiceJoin publishes the voice_join event after a successful
// voice-token grant.
func (s *RoomService) RecordVoiceJoin(ctx context.Context, userID, roomID string) {
	s.publisher.Event(model.EventVoiceJoin, userID, roomID, nil)
}
