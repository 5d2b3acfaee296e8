package websocket

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"voicedraft-be/internal/constant"
	"voicedraft-be/internal/dto"
	"voicedraft-be/internal/pkg/logger"
	"voicedraft-be/internal/service"
	"voicedraft-be/pkg/dictation/ingest"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20 // binary audio frames are large
)

// Client is one websocket connection on a dictation session.
//
// Inbound protocol: binary frames carry raw PCM that accumulates in the
// sliding audio window; text frames carry {"content","tone"}. A text frame
// with empty content seals the window and processes the captured audio as
// one utterance. Utterances on a connection are processed strictly in
// order; the readPump goroutine is the only caller of the service.
type Client struct {
	Hub *Hub

	Conn *websocket.Conn

	SessionID uuid.UUID
	UserID    uuid.UUID

	// Buffered channel of outbound messages.
	Send chan []byte

	service service.IDictationService
	window  *ingest.Window
	logger  logger.ILogger
}

func (c *Client) readPump() {
	ended := false
	defer func() {
		if !ended {
			c.service.EndSession(context.Background(), c.SessionID, "disconnect")
		}
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("ws_client", "unexpected close", map[string]interface{}{
					"session_id": c.SessionID,
					"error":      err.Error(),
				})
			}
			break
		}

		if msgType == websocket.BinaryMessage {
			c.window.Append(data)
			continue
		}

		var frame dto.DictationFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			c.logger.Warn("ws_client", "malformed text frame", map[string]interface{}{
				"session_id": c.SessionID,
				"error":      err.Error(),
			})
			continue
		}

		if isExitWord(frame.Content) {
			// Farewell goes to this connection only; other devices on the
			// session keep dictating.
			c.sendDirect(&dto.DictationPush{
				Type: constant.WsTypeContent,
				Data: constant.FarewellMessage,
			})
			c.service.EndSession(context.Background(), c.SessionID, "exit")
			ended = true
			break
		}

		c.handleFrame(frame)
	}
}

// handleFrame runs one inbound frame through the pipeline. Successful
// results fan out to every device on the session; failures that never
// reached the mutator still surface the generic notice, but only here.
func (c *Client) handleFrame(frame dto.DictationFrame) {
	utterance, ok := c.buildUtterance(frame)
	if !ok {
		return
	}

	push, err := c.service.ProcessUtterance(context.Background(), c.SessionID, utterance)
	if err != nil {
		c.logger.Error("ws_client", "utterance rejected", map[string]interface{}{
			"session_id": c.SessionID,
			"error":      err.Error(),
		})
		c.sendDirect(&dto.DictationPush{
			Type: constant.WsTypeError,
			Data: constant.SoftErrorMessage,
		})
		return
	}
	c.Hub.Push(c.SessionID, push)
}

// sendDirect queues a frame for this connection only, dropping it if the
// buffer is full.
func (c *Client) sendDirect(push *dto.DictationPush) {
	data, err := json.Marshal(push)
	if err != nil {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

// buildUtterance turns a text frame into the next utterance. Empty content
// means "process what the microphone captured": the audio window is sealed
// if it holds anything, otherwise the frame is ignored.
func (c *Client) buildUtterance(frame dto.DictationFrame) (ingest.Utterance, bool) {
	if strings.TrimSpace(frame.Content) != "" {
		return ingest.FromText(frame.Content, frame.Tone), true
	}
	return c.window.Seal(frame.Tone)
}

func isExitWord(content string) bool {
	normalized := strings.ToLower(strings.TrimSpace(content))
	for _, word := range constant.ExitWords {
		if normalized == word {
			return true
		}
	}
	return false
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
