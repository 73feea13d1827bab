package signal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrBridgeUnavailable is returned when the pub/sub backend rejects a publish.
var ErrBridgeUnavailable = errors.New("signal bridge unavailable")

// ErrBridgeClosed is returned by Publish after Close.
var ErrBridgeClosed = errors.New("signal bridge closed")

// Bridge relays change notices between processes over a Redis pub/sub
// channel. Each Bridge tags outgoing messages with its own origin ID and
// drops incoming messages carrying that ID, so the emitting process never
// hears its own write — same-process listeners are served by the Hub,
// exactly as in-tab listeners covered the storage-event gap in the source
// system.
//
// Cross-process delivery is asynchronous and best effort: there is no
// ordering or delivery guarantee between processes.
type Bridge struct {
	redis   redis.UniversalClient
	channel string
	origin  string
	hub     *Hub

	sub       *redis.PubSub
	wg        sync.WaitGroup
	closed    atomic.Bool
	closeOnce sync.Once
	dropped   atomic.Uint64
}

// NewBridge starts a Bridge on the given channel, forwarding remote notices
// into hub. The receive loop runs until Close.
func NewBridge(client redis.UniversalClient, channel string, hub *Hub) (*Bridge, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	if channel == "" {
		return nil, errors.New("channel name required")
	}
	if hub == nil {
		return nil, errors.New("hub required")
	}

	b := &Bridge{
		redis:   client,
		channel: channel,
		origin:  uuid.NewString(),
		hub:     hub,
	}

	b.sub = client.Subscribe(context.Background(), channel)

	b.wg.Add(1)
	go b.run()

	return b, nil
}

// Origin returns the instance ID stamped on this Bridge's outgoing messages.
func (b *Bridge) Origin() string {
	if b == nil {
		return ""
	}
	return b.origin
}

// Publish sends a change notice carrying payload to every other process
// subscribed to the channel. The caller's own process is not notified.
func (b *Bridge) Publish(ctx context.Context, payload []byte) error {
	if b == nil || b.closed.Load() {
		return ErrBridgeClosed
	}

	frame, err := encodeFrame(b.origin, payload)
	if err != nil {
		return err
	}

	if err := b.redis.Publish(ctx, b.channel, frame).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBridgeUnavailable, err)
	}
	return nil
}

func (b *Bridge) run() {
	defer b.wg.Done()

	for msg := range b.sub.Channel() {
		origin, payload, err := decodeFrame([]byte(msg.Payload))
		if err != nil {
			b.dropped.Add(1)
			continue
		}
		if origin == b.origin {
			continue
		}
		if b.closed.Load() {
			return
		}
		b.hub.Emit(payload)
	}
}

// Dropped reports how many malformed frames the receive loop discarded.
func (b *Bridge) Dropped() uint64 {
	if b == nil {
		return 0
	}
	return b.dropped.Load()
}

// Close stops the receive loop and waits for it to drain. Close is
// idempotent.
func (b *Bridge) Close() {
	if b == nil {
		return
	}
	b.closeOnce.Do(func() {
		b.closed.Store(true)
		_ = b.sub.Close()
		b.wg.Wait()
	})
}

const frameVersionV1 = 1

func encodeFrame(origin string, payload []byte) ([]byte, error) {
	if len(origin) > 255 {
		return nil, errors.New("origin too long")
	}

	frame := make([]byte, 0, 2+len(origin)+len(payload))
	frame = append(frame, frameVersionV1)
	frame = append(frame, byte(len(origin)))
	frame = append(frame, origin...)
	frame = append(frame, payload...)
	return frame, nil
}

func decodeFrame(frame []byte) (origin string, payload []byte, err error) {
	if len(frame) < 2 {
		return "", nil, errors.New("frame too short")
	}
	if frame[0] != frameVersionV1 {
		return "", nil, errors.New("invalid frame version")
	}

	originLen := int(frame[1])
	if len(frame) < 2+originLen {
		return "", nil, errors.New("frame truncated")
	}

	return string(frame[2 : 2+originLen]), frame[2+originLen:], nil
}
