package model

// EventType classifies a client or server analytics event.
type EventType string

const (
	EventRoomJoin     EventType = "room_join"
	EventRoomLeave    EventType = "room_leave"
	EventVoiceJoin    EventType = "voice_join"
	EventVoiceLeave   EventType = "voice_leave"
	EventMessageSent  EventType = "message_sent"
	EventUserKicked   EventType = "user_kicked"
	EventUserReported EventType = "user_reported"
)

// IsValid checks if the event type is one of the known kinds.
func (e EventType) IsValid() bool {
	switch e {
	case EventRoomJoin, EventRoomLeave, EventVoiceJoin, EventVoiceLeave,
		EventMessageSent, EventUserKicked, EventUserReported:
		return true
	}
	return false
}
