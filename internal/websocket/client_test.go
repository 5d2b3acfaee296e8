package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"voicedraft-be/internal/constant"
	"voicedraft-be/internal/dto"
	"voicedraft-be/internal/repository/memory"
	"voicedraft-be/pkg/dictation/ingest"

	"github.com/google/uuid"
)

// failingService rejects every utterance, standing in for a pipeline whose
// record store is unreachable.
type failingService struct{}

func (failingService) ResolveState(ctx context.Context, sessionID uuid.UUID) (*memory.DocumentState, error) {
	return nil, errors.New("record store unavailable")
}

func (failingService) ProcessUtterance(ctx context.Context, sessionID uuid.UUID, u ingest.Utterance) (*dto.DictationPush, error) {
	return nil, errors.New("record store unavailable")
}

func (failingService) EndSession(ctx context.Context, sessionID uuid.UUID, reason string) {}

func TestIsExitWord(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"exit", true},
		{"EXIT", true},
		{"Quit", true},
		{"  exit  ", true},
		{"exited", false},
		{"please exit", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isExitWord(tt.content); got != tt.want {
			t.Errorf("isExitWord(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}

func TestHandleFrameSurfacesPipelineFailure(t *testing.T) {
	c := &Client{
		SessionID: uuid.New(),
		Send:      make(chan []byte, 1),
		service:   failingService{},
		window:    ingest.NewWindow(1, 16000, 1),
		logger:    &captureLogger{},
	}

	c.handleFrame(dto.DictationFrame{Content: "add a line about budgets"})

	select {
	case data := <-c.Send:
		var push dto.DictationPush
		if err := json.Unmarshal(data, &push); err != nil {
			t.Fatalf("unmarshal push: %v", err)
		}
		if push.Type != constant.WsTypeError {
			t.Errorf("push type = %q, want %q", push.Type, constant.WsTypeError)
		}
		if push.Data != constant.SoftErrorMessage {
			t.Errorf("push data = %q, want the generic notice", push.Data)
		}
	default:
		t.Fatal("no frame queued for the connection after a pipeline failure")
	}
}

func TestBuildUtteranceText(t *testing.T) {
	c := &Client{window: ingest.NewWindow(1, 16000, 1)}

	u, ok := c.buildUtterance(dto.DictationFrame{Content: "hello world", Tone: "brief"})
	if !ok {
		t.Fatal("expected a text utterance")
	}
	if u.IsAudio() {
		t.Error("text frame must not yield an audio utterance")
	}
	if u.Text != "hello world" || u.Tone != "brief" {
		t.Errorf("unexpected utterance: %+v", u)
	}
}

func TestBuildUtteranceEmptyContentSealsWindow(t *testing.T) {
	c := &Client{window: ingest.NewWindow(1, 16000, 1)}

	// Nothing captured: the frame is ignored.
	if _, ok := c.buildUtterance(dto.DictationFrame{Content: "  "}); ok {
		t.Fatal("empty window must not yield an utterance")
	}

	c.window.Append(make([]byte, 640))
	u, ok := c.buildUtterance(dto.DictationFrame{Content: "", Tone: "friendly"})
	if !ok {
		t.Fatal("expected a sealed audio utterance")
	}
	if !u.IsAudio() {
		t.Error("sealed window must yield an audio utterance")
	}
	if u.Tone != "friendly" {
		t.Errorf("tone not carried: %+v", u.Tone)
	}
}
