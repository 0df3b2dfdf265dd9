package serverutils

import (
	"errors"

	"ai-chat-be/internal/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts service errors into JSON responses. Kinds
// map onto status codes; anything unclassified becomes a 500 with a generic
// message so internals never leak to clients.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse{
				Success: false,
				Error:   fiberErr.Message,
			})
		}

		status := fiber.StatusInternalServerError
		message := "internal server error"

		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			message = appErr.Message
			switch appErr.Kind {
			case apperr.KindValidation:
				status = fiber.StatusBadRequest
			case apperr.KindNotFound:
				status = fiber.StatusNotFound
			case apperr.KindHistoryDisabled:
				status = fiber.StatusConflict
			case apperr.KindUpstream:
				status = fiber.StatusBadGateway
			default:
				message = "internal server error"
			}
		}

		return ctx.Status(status).JSON(ErrorResponse{
			Success: false,
			Error:   message,
		})
	}
}
