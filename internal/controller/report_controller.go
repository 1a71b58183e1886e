// FILE: internal/controller/report_controller.go
package controller

import (
	"ai-docauthor-be/internal/pkg/serverutils"
	"ai-docauthor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	GenerateMarkdown(ctx *fiber.Ctx) error
	GenerateDocument(ctx *fiber.Ctx) error
}

type reportController struct {
	service service.IExporterService
}

func NewReportController(service service.IExporterService) IReportController {
	return &reportController{service: service}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/projects/:projectId/report")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/markdown", c.GenerateMarkdown)
	h.Post("/document", c.GenerateDocument)
}

func (c *reportController) GenerateMarkdown(ctx *fiber.Ctx) error {
	projectId, err := uuid.Parse(ctx.Params("projectId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid project id")
	}

	markdown, err := c.service.ExportToMarkdown(ctx.Context(), projectId)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return ctx.SendString(markdown)
}

func (c *reportController) GenerateDocument(ctx *fiber.Ctx) error {
	projectId, err := uuid.Parse(ctx.Params("projectId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid project id")
	}

	document, err := c.service.ExportToDocument(ctx.Context(), projectId)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+projectId.String()+`.docx"`)
	return ctx.Send(document)
}
