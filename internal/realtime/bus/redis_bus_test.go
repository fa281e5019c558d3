package bus

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/realtime"
)

func TestNewSSEBusWithoutAddr(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	b, err := NewSSEBus(logger.Nop())
	if err != nil || b != nil {
		t.Fatalf("NewSSEBus=%v,%v want nil,nil", b, err)
	}
	if _, err := NewRedisBus(logger.Nop(), RedisConfig{}); err == nil {
		t.Fatalf("expected error for missing addr")
	}
	if _, err := NewRedisBus(nil, RedisConfig{Addr: "localhost:6379"}); err == nil {
		t.Fatalf("expected error for missing logger")
	}
}

func TestDecodeMessage(t *testing.T) {
	msg, err := decodeMessage(`{"channel":"category-view:x","event":"CategoryFrame","data":{"tick":3}}`)
	if err != nil {
		t.Fatalf("decodeMessage: %v", err)
	}
	if msg.Channel != "category-view:x" || msg.Event != realtime.SSEEventCategoryFrame {
		t.Fatalf("msg=%+v", msg)
	}
	if _, err := decodeMessage(`{"event":"CategoryFrame"}`); err == nil {
		t.Fatalf("expected error for missing channel")
	}
	if _, err := decodeMessage(`nope`); err == nil {
		t.Fatalf("expected error for bad json")
	}
}

// Runs against a real server when REDIS_TEST_ADDR is set.
func TestRedisBusRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	b, err := NewRedisBus(logger.Nop(), RedisConfig{Addr: addr, Channel: "sse-test"})
	if err != nil {
		t.Fatalf("NewRedisBus: %v", err)
	}
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan realtime.SSEMessage, 1)
	if err := b.StartForwarder(ctx, func(m realtime.SSEMessage) { got <- m }); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}
	want := realtime.SSEMessage{Channel: "category-view:t", Event: realtime.SSEEventCategoryState}
	if err := b.Publish(ctx, want); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	select {
	case m := <-got:
		if m.Channel != want.Channel || m.Event != want.Event {
			t.Fatalf("got=%+v", m)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for forwarded message")
	}
}
