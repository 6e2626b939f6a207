package dto

// KickRequest represents the request body for kicking a user.
type KickRequest struct {
	RoomID string `json:"room_id" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
}

// ReportRequest represents the request body for reporting a user.
type ReportRequest struct {
	RoomID         string `json:"room_id" validate:"required"`
	ReportedUserID string `json:"reported_user_id" validate:"required"`
	Reason         string `json:"reason" validate:"required,max=500"`
}

// EventRequest represents a client-submitted analytics event.
type EventRequest struct {
	EventType string            `json:"event_type" validate:"required"`
	UserID    string            `json:"user_id" validate:"required"`
	RoomID    string            `json:"room_id" validate:"required"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// CollabAuthRequest represents the request body for collab authorization.
type CollabAuthRequest struct {
	RoomID string `json:"room_id" validate:"required"`
}

// VoiceTokenRequest represents the request body for a voice token grant.
type VoiceTokenRequest struct {
	RoomID string `json:"room_id" validate:"required"`
}

// VoiceTokenResponse is returned from the voice token endpoint.
type VoiceTokenResponse struct {
	Token   string `json:"token"`
	RoomURL string `json:"room_url"`
}
