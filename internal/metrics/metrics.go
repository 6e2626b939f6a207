// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Auth metrics
	IncSignup()
	IncLogin(status string) // status: "success" or "failed"

	// Room metrics
	IncRoomCreated()
	IncRoomJoined()
	IncRoomLeft()
	IncQuickJoin(created bool) // created: a new room was auto-created

	// Moderation metrics
	IncKick()
	IncReport()

	// Analytics pipeline metrics
	IncAnalyticsPublished(status string) // status: "success" or "dropped"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
