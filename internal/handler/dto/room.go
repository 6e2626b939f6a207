package dto

import (
	"time"

	"github.com/pairdojo/pairdojo/internal/model"
)

// CreateRoomRequest represents the request body for creating a room.
type CreateRoomRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=100"`
	Language string `json:"language" validate:"required,oneof=javascript python java cpp go rust"`
	IsPublic bool   `json:"is_public"`
	MaxUsers int    `json:"max_users" validate:"required,gte=2,lte=20"`
}

// JoinRoomRequest represents the request body for joining a room.
// The invite code is only required for private rooms.
type JoinRoomRequest struct {
	InviteCode string `json:"invite_code,omitempty"`
}

// RoomResponse represents a room in API responses.
// The invite code only appears for private rooms.
type RoomResponse struct {
	RoomID        string    `json:"room_id"`
	Title         string    `json:"title"`
	Language      string    `json:"language"`
	IsPublic      bool      `json:"is_public"`
	MaxUsers      int       `json:"max_users"`
	CreatedBy     string    `json:"created_by"`
	CreatedByName string    `json:"created_by_name"`
	CreatedAt     time.Time `json:"created_at"`
	ActiveCount   int       `json:"active_count"`
	InviteCode    string    `json:"invite_code,omitempty"`
}

// RoomListResponse represents a list of public rooms.
type RoomListResponse struct {
	Data []RoomResponse `json:"data"`
}

// QuickJoinResponse is returned from the quick-join endpoint.
type QuickJoinResponse struct {
	Room    RoomResponse `json:"room"`
	Created bool         `json:"created"`
}

// ToRoomResponse converts a Room model to RoomResponse DTO.
func ToRoomResponse(room *model.Room) RoomResponse {
	return RoomResponse{
		RoomID:        room.RoomID,
		Title:         room.Title,
		Language:      string(room.Language),
		IsPublic:      room.IsPublic,
		MaxUsers:      room.MaxUsers,
		CreatedBy:     room.CreatedBy,
		CreatedByName: room.CreatedByName,
		CreatedAt:     room.CreatedAt,
		ActiveCount:   room.ActiveCount,
		InviteCode:    room.InviteCode,
	}
}

// ToRoomListResponse converts a slice of Room models to RoomListResponse.
func ToRoomListResponse(rooms []*model.Room) *RoomListResponse {
	responses := make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		responses[i] = ToRoomResponse(room)
	}
	return &RoomListResponse{Data: responses}
}
