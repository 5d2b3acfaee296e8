package handler

import (
	"os"

	"voicedraft-be/internal/pkg/logger"
	"voicedraft-be/internal/service"
	internalWS "voicedraft-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type DictationHandler struct {
	service   service.IDictationService
	hub       *internalWS.Hub
	windowCfg internalWS.WindowConfig
	logger    logger.ILogger
}

func NewDictationHandler(svc service.IDictationService, hub *internalWS.Hub, windowCfg internalWS.WindowConfig, log logger.ILogger) *DictationHandler {
	return &DictationHandler{
		service:   svc,
		hub:       hub,
		windowCfg: windowCfg,
		logger:    log,
	}
}

// ServeWs upgrades a dictation connection. Browsers cannot set headers on
// websocket handshakes, so the token is read from the query first.
func (h *DictationHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("dictation_handler", "invalid token in ws handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	// Resolve before upgrading so an unknown session fails the handshake
	// with a status code instead of an immediate close frame.
	if _, err := h.service.ResolveState(c.UserContext(), sessionID); err != nil {
		if err == service.ErrSessionNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("dictation_handler", "starting dictation session", map[string]interface{}{
				"session_id": sessionID,
				"user_id":    userID,
			})
			internalWS.ServeWs(h.hub, conn, sessionID, userID, h.service, h.windowCfg, h.logger)
			h.logger.Info("dictation_handler", "dictation session ended", map[string]interface{}{
				"session_id": sessionID,
				"user_id":    userID,
			})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the dictation websocket route.
func (h *DictationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/dictation/:sessionId", h.ServeWs)
}
