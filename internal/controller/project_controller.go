// FILE: internal/controller/project_controller.go
package controller

import (
	"ai-docauthor-be/internal/dto"
	"ai-docauthor-be/internal/pkg/serverutils"
	"ai-docauthor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProjectController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	UpdateInfo(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type projectController struct {
	service service.IProjectService
}

func NewProjectController(service service.IProjectService) IProjectController {
	return &projectController{service: service}
}

func (c *projectController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/projects")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/", c.Create)
	h.Get("/", c.GetAll)
	h.Get("/:projectId", c.Show)
	h.Put("/:projectId", c.UpdateInfo)
	h.Delete("/:projectId", c.Delete)
}

func (c *projectController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Project created", res))
}

func (c *projectController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Projects", res))
}

func (c *projectController) Show(ctx *fiber.Ctx) error {
	projectId, err := uuid.Parse(ctx.Params("projectId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid project id")
	}

	res, err := c.service.Show(ctx.Context(), projectId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Project detail", res))
}

func (c *projectController) UpdateInfo(ctx *fiber.Ctx) error {
	projectId, err := uuid.Parse(ctx.Params("projectId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid project id")
	}

	var req dto.UpdateProjectInfoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := c.service.UpdateInfo(ctx.Context(), projectId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Project updated", nil))
}

func (c *projectController) Delete(ctx *fiber.Ctx) error {
	projectId, err := uuid.Parse(ctx.Params("projectId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid project id")
	}

	if err := c.service.Delete(ctx.Context(), projectId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Project deleted", nil))
}
