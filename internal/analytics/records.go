// Package analytics captures product events for an out-of-process
// analytics consumer. Records are published to capped Redis streams when
// a transport is configured and to the log otherwise; publishing is
// fire-and-forget and never affects request handling.
package analytics

import (
	"time"

	"github.com/pairdojo/pairdojo/internal/model"
)

// Stream keys for the three record kinds.
const (
	EventStream       = "stream:events"
	RoomSessionStream = "stream:room_sessions"
	ReportStream      = "stream:reports"
)

// EventRecord is a single analytics event.
type EventRecord struct {
	EventID   string            `json:"event_id"`
	EventType model.EventType   `json:"event_type"`
	UserID    string            `json:"user_id"`
	RoomID    string            `json:"room_id"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// RoomSessionRecord marks the start of a room's lifetime.
type RoomSessionRecord struct {
	SessionID string    `json:"session_id"`
	RoomID    string    `json:"room_id"`
	RoomTitle string    `json:"room_title"`
	CreatedBy string    `json:"created_by"`
	StartedAt time.Time `json:"started_at"`
}

// ReportRecord is a user-submitted abuse report.
type ReportRecord struct {
	ReportID       string    `json:"report_id"`
	ReporterID     string    `json:"reporter_id"`
	ReportedUserID string    `json:"reported_user_id"`
	RoomID         string    `json:"room_id"`
	Reason         string    `json:"reason"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}
