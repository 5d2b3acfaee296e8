package websocket

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"voicedraft-be/internal/constant"
	"voicedraft-be/internal/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type captureLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *captureLogger) Debug(module, message string, details map[string]interface{}) {}
func (l *captureLogger) Info(module, message string, details map[string]interface{})  {}
func (l *captureLogger) Error(module, message string, details map[string]interface{}) {}
func (l *captureLogger) Sync() error                                                  { return nil }

func (l *captureLogger) Warn(module, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, message)
}

func (l *captureLogger) hasWarn(message string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, w := range l.warns {
		if w == message {
			return true
		}
	}
	return false
}

func waitForClientCount(t *testing.T, h *Hub, sessionID uuid.UUID, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		h.mu.RLock()
		got := len(h.clients[sessionID])
		h.mu.RUnlock()
		if got == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("session %s never reached %d clients", sessionID, want)
}

func TestHubDropsSlowClientAndClosesSendOnce(t *testing.T) {
	log := &captureLogger{}
	h := NewHub(nil, log)
	go h.Run()

	sessionID := uuid.New()
	client := &Client{Hub: h, SessionID: sessionID, Send: make(chan []byte, 1)}
	h.register <- client
	waitForClientCount(t, h, sessionID, 1)

	// Fill the buffer so the next delivery overflows and drops the client.
	client.Send <- []byte("stale")
	h.Push(sessionID, &dto.DictationPush{Type: constant.WsTypeContent, Data: "one"})
	waitForClientCount(t, h, sessionID, 0)

	if got := string(<-client.Send); got != "stale" {
		t.Fatalf("buffered message lost, got %q", got)
	}
	if _, open := <-client.Send; open {
		t.Fatal("send channel must be closed after the drop")
	}

	// The session is gone from the hub; another push must be a no-op.
	h.Push(sessionID, &dto.DictationPush{Type: constant.WsTypeContent, Data: "two"})

	if !log.hasWarn("client send buffer full, dropping connection") {
		t.Error("drop was not logged")
	}
}

func TestHubPushStillDeliversToResponsiveClients(t *testing.T) {
	h := NewHub(nil, &captureLogger{})
	go h.Run()

	sessionID := uuid.New()
	slow := &Client{Hub: h, SessionID: sessionID, Send: make(chan []byte, 1)}
	fast := &Client{Hub: h, SessionID: sessionID, Send: make(chan []byte, 4)}
	h.register <- slow
	h.register <- fast
	waitForClientCount(t, h, sessionID, 2)

	slow.Send <- []byte("stale")
	h.Push(sessionID, &dto.DictationPush{Type: constant.WsTypeContent, Data: "update"})
	waitForClientCount(t, h, sessionID, 1)

	var push dto.DictationPush
	if err := json.Unmarshal(<-fast.Send, &push); err != nil {
		t.Fatalf("unmarshal push: %v", err)
	}
	if push.Data != "update" {
		t.Errorf("fast client got %q, want %q", push.Data, "update")
	}
}

func TestHubPushLogsClusterPublishFailure(t *testing.T) {
	log := &captureLogger{}
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	h := NewHub(rdb, log)
	h.Push(uuid.New(), &dto.DictationPush{Type: constant.WsTypeContent, Data: "x"})

	if !log.hasWarn("failed to publish cluster event") {
		t.Fatal("publish failure was not logged")
	}
}
