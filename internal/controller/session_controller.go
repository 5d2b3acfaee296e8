package controller

import (
	"voicedraft-be/internal/dto"
	"voicedraft-be/internal/pkg/serverutils"
	"voicedraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Get(":id/history", c.History)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	userID, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.CreateSession(ctx.Context(), userID, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *sessionController) GetAll(ctx *fiber.Ctx) error {
	userID, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetAllSessions(ctx.Context(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all sessions", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	userID, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewHTTPError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.service.GetSession(ctx.Context(), userID, sessionID)
	if err != nil {
		if err == service.ErrSessionNotFound {
			return serverutils.NewHTTPError(fiber.StatusNotFound, "session not found")
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	userID, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewHTTPError(fiber.StatusBadRequest, "invalid session id")
	}

	if err := c.service.DeleteSession(ctx.Context(), userID, sessionID); err != nil {
		if err == service.ErrSessionNotFound {
			return serverutils.NewHTTPError(fiber.StatusNotFound, "session not found")
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session deleted", nil))
}

func (c *sessionController) History(ctx *fiber.Ctx) error {
	userID, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewHTTPError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.service.GetTranscriptHistory(ctx.Context(), userID, sessionID)
	if err != nil {
		if err == service.ErrSessionNotFound {
			return serverutils.NewHTTPError(fiber.StatusNotFound, "session not found")
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get transcript history", res))
}
