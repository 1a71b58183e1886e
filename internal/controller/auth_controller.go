// FILE: internal/controller/auth_controller.go
package controller

import (
	"ai-docauthor-be/internal/dto"
	"ai-docauthor-be/internal/pkg/serverutils"
	"ai-docauthor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	GoogleLogin(ctx *fiber.Ctx) error
	GoogleCallback(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IOAuthService
}

func NewAuthController(service service.IOAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Get("/google/login", c.GoogleLogin)
	h.Get("/google/callback", c.GoogleCallback)
}

func (c *authController) GoogleLogin(ctx *fiber.Ctx) error {
	url, err := c.service.GetLoginURL("google")
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Login URL", dto.LoginURLResponse{Url: url}))
}

func (c *authController) GoogleCallback(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing code")
	}

	res, err := c.service.HandleCallback(ctx.Context(), "google", code)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Signed in", res))
}
