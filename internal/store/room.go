package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pairdojo/pairdojo/internal/model"
)

// inviteCodeLength is the length of the opaque token gating private rooms.
const inviteCodeLength = 8

// roomState is the authoritative record for one room.
// The exported Room snapshots derive ActiveCount from participants.
type roomState struct {
	room         model.Room
	participants map[string]struct{}
	seq          uint64 // insertion order, breaks created_at ties newest-first
}

// Registry owns room existence, occupancy and discovery.
// Rooms are never deleted; occupancy changes only through
// AddParticipant/RemoveParticipant.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]*roomState
	nextSeq uint64
}

// NewRegistry creates an empty room registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*roomState)}
}

// CreateRoomParams carries the caller-validated inputs for CreateRoom.
type CreateRoomParams struct {
	Title       string
	Language    model.Language
	IsPublic    bool
	MaxUsers    int
	CreatorID   string
	CreatorName string
}

// CreateRoom registers a new room with an empty participant set.
// Private rooms get a fresh 8-character invite code; collisions are
// statistically negligible at this scale and not enforced against.
func (r *Registry) CreateRoom(p CreateRoomParams) *model.Room {
	inviteCode := ""
	if !p.IsPublic {
		inviteCode = uuid.NewString()[:inviteCodeLength]
	}

	room := model.Room{
		RoomID:        uuid.NewString(),
		Title:         p.Title,
		Language:      p.Language,
		IsPublic:      p.IsPublic,
		MaxUsers:      p.MaxUsers,
		CreatedBy:     p.CreatorID,
		CreatedByName: p.CreatorName,
		CreatedAt:     time.Now().UTC(),
		InviteCode:    inviteCode,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSeq++
	r.rooms[room.RoomID] = &roomState{
		room:         room,
		participants: make(map[string]struct{}),
		seq:          r.nextSeq,
	}

	snapshot := room
	return &snapshot
}

// snapshot returns a copy of the room with ActiveCount recomputed.
// Callers must hold at least a read lock.
func (st *roomState) snapshot() *model.Room {
	room := st.room
	room.ActiveCount = len(st.participants)
	return &room
}

// GetRoom returns a snapshot of the room, or ErrRoomNotFound.
func (r *Registry) GetRoom(roomID string) (*model.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return st.snapshot(), nil
}

// PublicRooms returns all public rooms sorted by creation time, newest
// first. The list is recomputed on every call.
func (r *Registry) PublicRooms() []*model.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.publicRoomsLocked()
}

// publicRoomsLocked builds the sorted public room list.
// Equal timestamps fall back to insertion order so iteration is
// deterministic for a fixed room set.
func (r *Registry) publicRoomsLocked() []*model.Room {
	type entry struct {
		room *model.Room
		seq  uint64
	}

	entries := make([]entry, 0, len(r.rooms))
	for _, st := range r.rooms {
		if st.room.IsPublic {
			entries = append(entries, entry{room: st.snapshot(), seq: st.seq})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].room.CreatedAt.Equal(entries[j].room.CreatedAt) {
			return entries[i].room.CreatedAt.After(entries[j].room.CreatedAt)
		}
		return entries[i].seq > entries[j].seq
	})

	rooms := make([]*model.Room, len(entries))
	for i, e := range entries {
		rooms[i] = e.room
	}
	return rooms
}

// AddParticipant inserts the user into the room's participant set.
// Idempotent; unknown rooms are silently ignored.
func (r *Registry) AddParticipant(roomID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.rooms[roomID]; ok {
		st.participants[userID] = struct{}{}
	}
}

// TryAddParticipant checks capacity and inserts the user in a single
// critical section, so two concurrent joins cannot both claim the last
// slot. Re-joining a room the user is already in succeeds without
// consuming capacity.
func (r *Registry) TryAddParticipant(roomID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	if _, joined := st.participants[userID]; joined {
		return nil
	}
	if len(st.participants) >= st.room.MaxUsers {
		return ErrRoomFull
	}
	st.participants[userID] = struct{}{}
	return nil
}

// RemoveParticipant removes the user from the room's participant set.
// Idempotent; unknown rooms are silently ignored.
func (r *Registry) RemoveParticipant(roomID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.rooms[roomID]; ok {
		delete(st.participants, userID)
	}
}

// IsFull reports whether the room is at or above capacity.
// Unknown rooms are reported full as the fail-safe answer.
func (r *Registry) IsFull(roomID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.rooms[roomID]
	if !ok {
		return true
	}
	return len(st.participants) >= st.room.MaxUsers
}

// FindAvailablePublicRoom scans public rooms newest-first and returns the
// first whose occupancy is below both the threshold and its own capacity.
// Used by quick join to pack users into sparse rooms before creating new
// ones.
func (r *Registry) FindAvailablePublicRoom(threshold int) (*model.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, room := range r.publicRoomsLocked() {
		if room.ActiveCount < threshold && room.ActiveCount < room.MaxUsers {
			return room, true
		}
	}
	return nil, false
}
