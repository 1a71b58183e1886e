// FILE: internal/controller/section_controller.go
package controller

import (
	"ai-docauthor-be/internal/dto"
	"ai-docauthor-be/internal/pkg/serverutils"
	"ai-docauthor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISectionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
	Improve(ctx *fiber.Ctx) error
}

type sectionController struct {
	service service.ISectionService
}

func NewSectionController(service service.ISectionService) ISectionController {
	return &sectionController{service: service}
}

func (c *sectionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/projects/:projectId/sections")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/", c.Create)
	h.Put("/:sectionId", c.Update)
	h.Delete("/:sectionId", c.Delete)
	h.Post("/:sectionId/ask", c.Ask)
	h.Post("/:sectionId/improve", c.Improve)
}

func parseSectionParams(ctx *fiber.Ctx) (projectId, sectionId uuid.UUID, err error) {
	projectId, err = uuid.Parse(ctx.Params("projectId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid project id")
	}
	sectionId, err = uuid.Parse(ctx.Params("sectionId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid section id")
	}
	return projectId, sectionId, nil
}

func (c *sectionController) Create(ctx *fiber.Ctx) error {
	projectId, err := uuid.Parse(ctx.Params("projectId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid project id")
	}

	var req dto.CreateSectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), projectId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Section created", res))
}

func (c *sectionController) Update(ctx *fiber.Ctx) error {
	projectId, sectionId, err := parseSectionParams(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateSectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Update(ctx.Context(), projectId, sectionId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Section updated", nil))
}

func (c *sectionController) Delete(ctx *fiber.Ctx) error {
	projectId, sectionId, err := parseSectionParams(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), projectId, sectionId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Section deleted", nil))
}

func (c *sectionController) Ask(ctx *fiber.Ctx) error {
	projectId, sectionId, err := parseSectionParams(ctx)
	if err != nil {
		return err
	}

	var req dto.SectionPromptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Ask(ctx.Context(), projectId, sectionId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Section answer", res))
}

func (c *sectionController) Improve(ctx *fiber.Ctx) error {
	projectId, sectionId, err := parseSectionParams(ctx)
	if err != nil {
		return err
	}

	var req dto.SectionPromptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Improve(ctx.Context(), projectId, sectionId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Improve recorded", nil))
}
