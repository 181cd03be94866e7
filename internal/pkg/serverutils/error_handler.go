package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"reflecta-be/internal/apperror"
	"reflecta-be/internal/pkg/logger"
)

// StatusForError maps domain errors to conventional HTTP status codes.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrAlreadyClosed):
		return fiber.StatusConflict
	case errors.Is(err, apperror.ErrGenerationFailure):
		return fiber.StatusBadGateway
	case errors.Is(err, apperror.ErrPersistenceFailure):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// NewErrorHandler builds the app-level Fiber error handler. Controllers
// return domain errors as-is; this is the only place they become HTTP.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := StatusForError(err)

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
