package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Emit(_ context.Context, event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type blockingSink struct {
	release chan struct{}
	sink    recordingSink
}

func (s *blockingSink) Emit(ctx context.Context, event Event) {
	<-s.release
	s.sink.Emit(ctx, event)
}

func TestDispatcherDisabledIsNil(t *testing.T) {
	d := NewDispatcher(Config{Enabled: false}, &recordingSink{})
	if d != nil {
		t.Fatal("disabled config must produce a nil dispatcher")
	}

	// Nil dispatcher methods are no-ops.
	d.Emit(context.Background(), Event{EventType: "x"})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher reported drops")
	}
}

func TestDispatcherDrainsOnClose(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 16}, sink)

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		d.Emit(ctx, Event{EventType: "login.success"})
	}
	d.Close()

	if got := sink.count(); got != 10 {
		t.Fatalf("delivered %d events after Close, want 10", got)
	}
}

func TestDispatcherDropIfFull(t *testing.T) {
	sink := &blockingSink{release: make(chan struct{})}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 2, DropIfFull: true}, sink)

	ctx := context.Background()

	// One event occupies the delivery goroutine, two fill the buffer, the
	// rest must be counted as dropped rather than blocking the caller.
	for i := 0; i < 8; i++ {
		d.Emit(ctx, Event{EventType: "logout"})
	}

	// The delivery goroutine may or may not have taken one event off the
	// buffer before it blocked, so 5 or 6 emits had nowhere to go.
	if dropped := d.Dropped(); dropped < 5 || dropped > 6 {
		t.Fatalf("Dropped = %d, want 5 or 6", dropped)
	}

	close(sink.release)
	d.Close()

	if got := uint64(sink.sink.count()); got != 8-d.Dropped() {
		t.Fatalf("delivered %d events, dropped %d, emitted 8", got, d.Dropped())
	}
}

func TestDispatcherCloseIdempotent(t *testing.T) {
	d := NewDispatcher(Config{Enabled: true, BufferSize: 1}, &recordingSink{})
	d.Close()
	d.Close()

	// Emit after Close drops silently.
	d.Emit(context.Background(), Event{EventType: "x"})
}

func TestJSONWriterSinkLineFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), Event{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		EventType: "role.assign",
		Role:      "merchant",
		Success:   true,
		Metadata:  map[string]string{"previous": "user"},
	})

	line := buf.Bytes()
	if n := bytes.Count(line, []byte("\n")); n != 1 {
		t.Fatalf("expected one line, got %d newlines", n)
	}

	var decoded Event
	if err := json.Unmarshal(bytes.TrimSpace(line), &decoded); err != nil {
		t.Fatalf("line is not valid JSON: %v", err)
	}
	if decoded.EventType != "role.assign" || decoded.Role != "merchant" || !decoded.Success {
		t.Fatalf("decoded event = %+v", decoded)
	}
	if decoded.Metadata["previous"] != "user" {
		t.Fatalf("metadata lost: %+v", decoded.Metadata)
	}
}

func TestChannelSinkBuffers(t *testing.T) {
	sink := NewChannelSink(2)

	ctx := context.Background()
	sink.Emit(ctx, Event{EventType: "a"})
	sink.Emit(ctx, Event{EventType: "b"})

	if got := (<-sink.Events()).EventType; got != "a" {
		t.Fatalf("first event = %q", got)
	}
	if got := (<-sink.Events()).EventType; got != "b" {
		t.Fatalf("second event = %q", got)
	}

	// A full channel honors context cancellation instead of blocking.
	sink.Emit(ctx, Event{EventType: "c"})
	sink.Emit(ctx, Event{EventType: "d"})
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	done := make(chan struct{})
	go func() {
		sink.Emit(cancelled, Event{EventType: "e"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Emit blocked on a full channel despite cancelled context")
	}
}
