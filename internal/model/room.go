package model

import "time"

// Language is a supported collaboration language tag.
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguagePython     Language = "python"
	LanguageJava       Language = "java"
	LanguageCpp        Language = "cpp"
	LanguageGo         Language = "go"
	LanguageRust       Language = "rust"
)

// IsValid checks if the language tag is supported.
func (l Language) IsValid() bool {
	switch l {
	case LanguageJavaScript, LanguagePython, LanguageJava, LanguageCpp, LanguageGo, LanguageRust:
		return true
	}
	return false
}

// Room capacity bounds, enforced at room creation.
const (
	MinRoomUsers = 2
	MaxRoomUsers = 20
)

// Room is a snapshot of a collaboration room.
// ActiveCount is derived from the participant set at read time and is
// never stored independently. InviteCode is empty for public rooms and
// always present for private ones.
type Room struct {
	RoomID        string    `json:"room_id"`
	Title         string    `json:"title"`
	Language      Language  `json:"language"`
	IsPublic      bool      `json:"is_public"`
	MaxUsers      int       `json:"max_users"`
	CreatedBy     string    `json:"created_by"`
	CreatedByName string    `json:"created_by_name"`
	CreatedAt     time.Time `json:"created_at"`
	ActiveCount   int       `json:"active_count"`
	InviteCode    string    `json:"invite_code,omitempty"`
}
