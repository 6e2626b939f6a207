package metrics

// NoopRecorder discards all metric events.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

func (NoopRecorder) IncSignup()                   {}
func (NoopRecorder) IncLogin(string)              {}
func (NoopRecorder) IncRoomCreated()              {}
func (NoopRecorder) IncRoomJoined()               {}
func (NoopRecorder) IncRoomLeft()                 {}
func (NoopRecorder) IncQuickJoin(bool)            {}
func (NoopRecorder) IncKick()                     {}
func (NoopRecorder) IncReport()                   {}
func (NoopRecorder) IncAnalyticsPublished(string) {}
