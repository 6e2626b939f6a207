package store

import (
	"sync"
	"time"
)

// Ledger tracks time-bounded room-scoped bans.
// A user is banned iff a record exists and its expiry is strictly in the
// future. Expired records are purged lazily on read; the periodic sweep
// only bounds memory and never affects correctness.
type Ledger struct {
	mu   sync.Mutex
	bans map[string]map[string]time.Time // room id -> user id -> expiry
	now  func() time.Time
}

// NewLedger creates an empty moderation ledger.
func NewLedger() *Ledger {
	return &Ledger{
		bans: make(map[string]map[string]time.Time),
		now:  time.Now,
	}
}

// Kick bans the user from the room until now+duration.
// Repeated kicks overwrite the expiry (last write wins, no accumulation).
func (l *Ledger) Kick(roomID, userID string, duration time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	room, ok := l.bans[roomID]
	if !ok {
		room = make(map[string]time.Time)
		l.bans[roomID] = room
	}
	room[userID] = l.now().Add(duration)
}

// IsKicked reports whether the user is currently banned from the room.
// A record observed expired is removed before returning false.
func (l *Ledger) IsKicked(roomID, userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	room, ok := l.bans[roomID]
	if !ok {
		return false
	}

	expiry, ok := room[userID]
	if !ok {
		return false
	}

	if !l.now().Before(expiry) {
		delete(room, userID)
		if len(room) == 0 {
			delete(l.bans, roomID)
		}
		return false
	}
	return true
}

// CleanupExpired sweeps all records, dropping expired bans and room
// entries left empty. Covers bans that are never re-checked.
func (l *Ledger) CleanupExpired() {
	l.mu.Lock()
	defer l.mu.Unlock()

	current := l.now()
	for roomID, room := range l.bans {
		for userID, expiry := range room {
			if !current.Before(expiry) {
				delete(room, userID)
			}
		}
		if len(room) == 0 {
			delete(l.bans, roomID)
		}
	}
}

// banCount returns the number of recorded bans, expired or not.
// Test helper.
func (l *Ledger) banCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, room := range l.bans {
		n += len(room)
	}
	return n
}
