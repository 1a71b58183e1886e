// FILE: internal/controller/conversation_controller.go
package controller

import (
	"ai-docauthor-be/internal/pkg/serverutils"
	"ai-docauthor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	ShowByProject(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type conversationController struct {
	service service.IConversationService
}

func NewConversationController(service service.IConversationService) IConversationController {
	return &conversationController{service: service}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversations")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/", c.List)
	h.Delete("/:conversationId", c.Delete)

	p := r.Group("/projects/:projectId/conversation")
	p.Use(serverutils.JwtMiddleware)
	p.Get("/", c.ShowByProject)
}

func (c *conversationController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversations", res))
}

func (c *conversationController) ShowByProject(ctx *fiber.Ctx) error {
	projectId, err := uuid.Parse(ctx.Params("projectId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid project id")
	}

	res, err := c.service.GetByProject(ctx.Context(), projectId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation detail", res))
}

func (c *conversationController) Delete(ctx *fiber.Ctx) error {
	conversationId, err := uuid.Parse(ctx.Params("conversationId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid conversation id")
	}

	if err := c.service.Delete(ctx.Context(), conversationId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation deleted", nil))
}
