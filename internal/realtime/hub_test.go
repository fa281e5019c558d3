package realtime

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/blog-backend/internal/platform/logger"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func recvMessage(t *testing.T, ch <-chan SSEMessage, timeout time.Duration) SSEMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for SSE message")
	}
	return SSEMessage{}
}

func TestSSEHubReconnectAndOrdering(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	channel := CategoryViewChannel(uuid.New())

	clientA := hub.NewSSEClient(uuid.Nil)
	hub.AddChannel(clientA, channel)

	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventCategoryFrame, Data: map[string]any{"tick": 1}})
	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventCategorySelection, Data: []string{"react"}})

	if got := recvMessage(t, clientA.Outbound, time.Second); got.Event != SSEEventCategoryFrame {
		t.Fatalf("first event: want=%s got=%s", SSEEventCategoryFrame, got.Event)
	}
	if got := recvMessage(t, clientA.Outbound, time.Second); got.Event != SSEEventCategorySelection {
		t.Fatalf("second event: want=%s got=%s", SSEEventCategorySelection, got.Event)
	}

	hub.CloseClient(clientA)
	hub.CloseClient(clientA)
	if _, ok := <-clientA.Outbound; ok {
		t.Fatalf("clientA outbound should be closed after disconnect")
	}
	if n := hub.Subscribers(channel); n != 0 {
		t.Fatalf("subscribers=%d after close", n)
	}

	clientB := hub.NewSSEClient(uuid.Nil)
	hub.AddChannel(clientB, channel)
	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventCategoryState})
	if got := recvMessage(t, clientB.Outbound, time.Second); got.Event != SSEEventCategoryState {
		t.Fatalf("reconnect event: want=%s got=%s", SSEEventCategoryState, got.Event)
	}
}

func TestSSEHubDropsWhenBufferFull(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	channel := "c"
	client := hub.NewSSEClient(uuid.Nil)
	hub.AddChannel(client, channel)

	for i := 0; i < outboundBuffer+5; i++ {
		hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventCategoryFrame, Data: i})
	}
	if got := len(client.Outbound); got != outboundBuffer {
		t.Fatalf("buffered=%d want=%d", got, outboundBuffer)
	}
	first := recvMessage(t, client.Outbound, time.Second)
	if first.Data != 0 {
		t.Fatalf("oldest message should be kept, got %v", first.Data)
	}
}

func TestSSEHubRemoveChannel(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	client := hub.NewSSEClient(uuid.Nil)
	hub.AddChannel(client, "a")
	hub.AddChannel(client, " ")
	hub.RemoveChannel(client, "a")
	hub.Broadcast(SSEMessage{Channel: "a", Event: SSEEventCategoryFrame})
	select {
	case msg := <-client.Outbound:
		t.Fatalf("unexpected message %+v", msg)
	default:
	}
	if len(client.Channels) != 0 {
		t.Fatalf("channels=%v", client.Channels)
	}
}

func TestSSEHubServeHTTPWritesEvents(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	client := hub.NewSSEClient(uuid.Nil)
	hub.AddChannel(client, "c")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeHTTP(w, r, client)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content-type=%q", ct)
	}

	hub.Broadcast(SSEMessage{Channel: "c", Event: SSEEventCategoryFrame, Data: map[string]any{"tick": 7}})

	sc := bufio.NewScanner(resp.Body)
	var event, data string
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
		if data != "" {
			break
		}
	}
	if event != string(SSEEventCategoryFrame) {
		t.Fatalf("event=%q", event)
	}
	var msg SSEMessage
	if err := json.Unmarshal([]byte(data), &msg); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if msg.Channel != "c" {
		t.Fatalf("msg=%+v", msg)
	}
	hub.CloseClient(client)
}
