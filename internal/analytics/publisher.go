package analytics

import (
	"context"
	"crypto/rand"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/pairdojo/pairdojo/internal/metrics"
	"github.com/pairdojo/pairdojo/internal/model"
)

// PublishTimeout is the max time an async publish may take.
const PublishTimeout = 100 * time.Millisecond

// Publisher assembles analytics records and hands them to a sink.
type Publisher struct {
	sink    Sink
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewPublisher creates an analytics publisher over the given sink.
func NewPublisher(sink Sink, logger *slog.Logger, recorder metrics.Recorder) *Publisher {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Publisher{
		sink:    sink,
		logger:  logger.With("component", "analytics.publisher"),
		metrics: recorder,
	}
}

// newID returns a fresh ULID string.
func newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// Event publishes an analytics event without blocking the caller.
// Errors are logged and counted but not returned (fire-and-forget).
func (p *Publisher) Event(eventType model.EventType, userID, roomID string, metadata map[string]string) {
	record := EventRecord{
		EventID:   newID(),
		EventType: eventType,
		UserID:    userID,
		RoomID:    roomID,
		Metadata:  metadata,
		Timestamp: time.Now().UTC(),
	}
	p.publishAsync(EventStream, record, string(eventType))
}

// RoomSession publishes a room-session record for a newly created room.
func (p *Publisher) RoomSession(room *model.Room) {
	record := RoomSessionRecord{
		SessionID: newID(),
		RoomID:    room.RoomID,
		RoomTitle: room.Title,
		CreatedBy: room.CreatedBy,
		StartedAt: room.CreatedAt,
	}
	p.publishAsync(RoomSessionStream, record, "room_session")
}

// Report publishes an abuse report record.
func (p *Publisher) Report(reporterID, reportedUserID, roomID, reason string) {
	record := ReportRecord{
		ReportID:       newID(),
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		RoomID:         roomID,
		Reason:         reason,
		Status:         "pending",
		Timestamp:      time.Now().UTC(),
	}
	p.publishAsync(ReportStream, record, "report")
}

func (p *Publisher) publishAsync(stream string, payload any, kind string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
		defer cancel()

		if err := p.sink.Publish(ctx, stream, payload); err != nil {
			p.logger.Warn("failed to publish analytics record",
				"stream", stream,
				"kind", kind,
				"error", err,
			)
			p.metrics.IncAnalyticsPublished("dropped")
			return
		}
		p.metrics.IncAnalyticsPublished("success")
	}()
}
