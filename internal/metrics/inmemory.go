package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Signups            uint64
	LoginSuccesses     uint64
	LoginFailures      uint64
	RoomsCreated       uint64
	RoomsJoined        uint64
	RoomsLeft          uint64
	QuickJoinsMatched  uint64
	QuickJoinsCreated  uint64
	Kicks              uint64
	Reports            uint64
	AnalyticsPublished uint64
	AnalyticsDropped   uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	signups            uint64
	loginSuccesses     uint64
	loginFailures      uint64
	roomsCreated       uint64
	roomsJoined        uint64
	roomsLeft          uint64
	quickJoinsMatched  uint64
	quickJoinsCreated  uint64
	kicks              uint64
	reports            uint64
	analyticsPublished uint64
	analyticsDropped   uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		Signups:            atomic.LoadUint64(&m.signups),
		LoginSuccesses:     atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:      atomic.LoadUint64(&m.loginFailures),
		RoomsCreated:       atomic.LoadUint64(&m.roomsCreated),
		RoomsJoined:        atomic.LoadUint64(&m.roomsJoined),
		RoomsLeft:          atomic.LoadUint64(&m.roomsLeft),
		QuickJoinsMatched:  atomic.LoadUint64(&m.quickJoinsMatched),
		QuickJoinsCreated:  atomic.LoadUint64(&m.quickJoinsCreated),
		Kicks:              atomic.LoadUint64(&m.kicks),
		Reports:            atomic.LoadUint64(&m.reports),
		AnalyticsPublished: atomic.LoadUint64(&m.analyticsPublished),
		AnalyticsDropped:   atomic.LoadUint64(&m.analyticsDropped),
	}
}

// IncSignup increments the signup counter.
func (m *InMemoryRecorder) IncSignup() {
	atomic.AddUint64(&m.signups, 1)
}

// IncLogin increments the login counter for the given status.
func (m *InMemoryRecorder) IncLogin(status string) {
	if status == "success" {
		atomic.AddUint64(&m.loginSuccesses, 1)
		return
	}
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncRoomCreated increments the room created counter.
func (m *InMemoryRecorder) IncRoomCreated() {
	atomic.AddUint64(&m.roomsCreated, 1)
}

// IncRoomJoined increments the room joined counter.
func (m *InMemoryRecorder) IncRoomJoined() {
	atomic.AddUint64(&m.roomsJoined, 1)
}

// IncRoomLeft increments the room left counter.
func (m *InMemoryRecorder) IncRoomLeft() {
	atomic.AddUint64(&m.roomsLeft, 1)
}

// IncQuickJoin increments the quick join counter for the outcome.
func (m *InMemoryRecorder) IncQuickJoin(created bool) {
	if created {
		atomic.AddUint64(&m.quickJoinsCreated, 1)
		return
	}
	atomic.AddUint64(&m.quickJoinsMatched, 1)
}

// IncKick increments the kick counter.
func (m *InMemoryRecorder) IncKick() {
	atomic.AddUint64(&m.kicks, 1)
}

// IncReport increments the report counter.
func (m *InMemoryRecorder) IncReport() {
	atomic.AddUint64(&m.reports, 1)
}

// IncAnalyticsPublished increments the analytics publish counter.
func (m *InMemoryRecorder) IncAnalyticsPublished(status string) {
	if status == "success" {
		atomic.AddUint64(&m.analyticsPublished, 1)
		return
	}
	atomic.AddUint64(&m.analyticsDropped, 1)
}
