package websocket

import (
	"context"
	"encoding/json"

	"voicedraft-be/internal/constant"
	"voicedraft-be/internal/dto"
	"voicedraft-be/internal/pkg/logger"
	"voicedraft-be/internal/service"
	"voicedraft-be/pkg/dictation/ingest"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WindowConfig sizes the per-connection audio capture window.
type WindowConfig struct {
	Seconds    int
	SampleRate int
	Channels   int
}

// ServeWs attaches a websocket connection to a dictation session and runs
// its loop until the client leaves.
func ServeWs(
	hub *Hub,
	conn *websocket.Conn,
	sessionID, userID uuid.UUID,
	svc service.IDictationService,
	windowCfg WindowConfig,
	log logger.ILogger,
) {
	client := &Client{
		Hub:       hub,
		Conn:      conn,
		SessionID: sessionID,
		UserID:    userID,
		Send:      make(chan []byte, 256),
		service:   svc,
		window:    ingest.NewWindow(windowCfg.Seconds, windowCfg.SampleRate, windowCfg.Channels),
		logger:    log,
	}
	client.Hub.register <- client

	go client.writePump()

	// Late joiners start from the current document, not a blank screen.
	if state, err := svc.ResolveState(context.Background(), sessionID); err == nil {
		initial, _ := json.Marshal(&dto.DictationPush{
			Type: constant.WsTypeContent,
			Data: state.Document(),
			Seq:  state.Seq(),
		})
		client.Send <- initial
	}

	client.readPump() // runs in the handler goroutine
}
