package analytics

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/pairdojo/pairdojo/internal/metrics"
	"github.com/pairdojo/pairdojo/internal/model"
)

// captureSink records published payloads on a channel.
type captureSink struct {
	published chan capturedRecord
	err       error
}

type capturedRecord struct {
	stream  string
	payload any
}

func newCaptureSink(err error) *captureSink {
	return &captureSink{published: make(chan capturedRecord, 8), err: err}
}

func (s *captureSink) Publish(ctx context.Context, stream string, payload any) error {
	if s.err != nil {
		return s.err
	}
	s.published <- capturedRecord{stream: stream, payload: payload}
	return nil
}

func (s *captureSink) Ping(ctx context.Context) error { return nil }

func waitForRecord(t *testing.T, sink *captureSink) capturedRecord {
	t.Helper()
	select {
	case rec := <-sink.published:
		return rec
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published record")
		return capturedRecord{}
	}
}

func waitForSnapshot(t *testing.T, rec *metrics.InMemoryRecorder, done func(metrics.Snapshot) bool) metrics.Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if snap := rec.Snapshot(); done(snap) {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for metrics")
	return metrics.Snapshot{}
}

func TestPublisher_Event(t *testing.T) {
	t.Parallel()

	sink := newCaptureSink(nil)
	recorder := metrics.NewInMemory()
	pub := NewPublisher(sink, slog.Default(), recorder)

	pub.Event(model.EventRoomJoin, "user-1", "room-1", map[string]string{"quick_join": "true"})

	rec := waitForRecord(t, sink)
	if rec.stream != EventStream {
		t.Errorf("stream = %s, want %s", rec.stream, EventStream)
	}

	event, ok := rec.payload.(EventRecord)
	if !ok {
		t.Fatalf("payload type = %T, want EventRecord", rec.payload)
	}
	if event.EventType != model.EventRoomJoin {
		t.Errorf("EventType = %s, want room_join", event.EventType)
	}
	if event.EventID == "" {
		t.Error("EventID should be generated")
	}
	if event.Metadata["quick_join"] != "true" {
		t.Errorf("Metadata = %v, want quick_join=true", event.Metadata)
	}

	waitForSnapshot(t, recorder, func(s metrics.Snapshot) bool {
		return s.AnalyticsPublished == 1
	})
}

func TestPublisher_Report(t *testing.T) {
	t.Parallel()

	sink := newCaptureSink(nil)
	pub := NewPublisher(sink, slog.Default(), nil)

	pub.Report("reporter-1", "bad-actor", "room-1", "spamming the editor")

	rec := waitForRecord(t, sink)
	if rec.stream != ReportStream {
		t.Errorf("stream = %s, want %s", rec.stream, ReportStream)
	}

	report, ok := rec.payload.(ReportRecord)
	if !ok {
		t.Fatalf("payload type = %T, want ReportRecord", rec.payload)
	}
	if report.Status != "pending" {
		t.Errorf("Status = %s, want pending", report.Status)
	}
}

func TestPublisher_RoomSession(t *testing.T) {
	t.Parallel()

	sink := newCaptureSink(nil)
	pub := NewPublisher(sink, slog.Default(), nil)

	room := &model.Room{RoomID: "room-1", Title: "Test Room", CreatedBy: "user-1", CreatedAt: time.Now()}
	pub.RoomSession(room)

	rec := waitForRecord(t, sink)
	if rec.stream != RoomSessionStream {
		t.Errorf("stream = %s, want %s", rec.stream, RoomSessionStream)
	}
	session, ok := rec.payload.(RoomSessionRecord)
	if !ok {
		t.Fatalf("payload type = %T, want RoomSessionRecord", rec.payload)
	}
	if session.RoomID != "room-1" {
		t.Errorf("RoomID = %s, want room-1", session.RoomID)
	}
}

func TestPublisher_SinkFailureIsDropped(t *testing.T) {
	t.Parallel()

	sink := newCaptureSink(errors.New("stream unavailable"))
	recorder := metrics.NewInMemory()
	pub := NewPublisher(sink, slog.Default(), recorder)

	pub.Event(model.EventRoomLeave, "user-1", "room-1", nil)

	snap := waitForSnapshot(t, recorder, func(s metrics.Snapshot) bool {
		return s.AnalyticsDropped == 1
	})
	if snap.AnalyticsPublished != 0 {
		t.Errorf("AnalyticsPublished = %d, want 0", snap.AnalyticsPublished)
	}
}

func TestLogSink_PublishNeverFails(t *testing.T) {
	t.Parallel()

	sink := NewLogSink(slog.Default())
	if err := sink.Publish(context.Background(), EventStream, EventRecord{EventID: "x"}); err != nil {
		t.Errorf("LogSink.Publish error = %v, want nil", err)
	}
	if err := sink.Ping(context.Background()); err != nil {
		t.Errorf("LogSink.Ping error = %v, want nil", err)
	}
}
