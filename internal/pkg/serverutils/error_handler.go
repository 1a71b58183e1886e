// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"strings"

	"ai-docauthor-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// kindStatus maps each domain error kind to its HTTP status. Unknown kinds
// fall through to 500.
var kindStatus = map[apperror.Kind]int{
	apperror.KindProjectNotFound:      fiber.StatusNotFound,
	apperror.KindSectionNotFound:      fiber.StatusNotFound,
	apperror.KindConversationNotFound: fiber.StatusNotFound,
	apperror.KindSectionUncompleted:   fiber.StatusConflict,
	apperror.KindAIResponse:           fiber.StatusInternalServerError,
	apperror.KindInvalidInput:         fiber.StatusBadRequest,
	apperror.KindInvalidCredentials:   fiber.StatusUnauthorized,
	apperror.KindUnauthorizedUser:     fiber.StatusForbidden,
}

// ErrorHandlerMiddleware converts errors bubbling out of controllers into
// JSON error envelopes. Domain errors carry their kind; validation errors
// become 400s; everything else is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if kind, ok := apperror.KindOf(err); ok {
			status, mapped := kindStatus[kind]
			if !mapped {
				status = fiber.StatusInternalServerError
			}
			return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		if strings.HasPrefix(err.Error(), "validation failed") {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, err.Error()))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
