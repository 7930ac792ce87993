package presenters

import (
	"campuscook/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int) error {
	return c.Status(statusCode).JSON(data)
}

// ErrorResponse writes the uniform error body. err is logged for 5xx and
// never sent to the client.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	if statusCode >= fiber.StatusInternalServerError {
		log.Errorf("%s %s: %s: %v", c.Method(), c.OriginalURL(), message, err)
	}
	return c.Status(statusCode).JSON(ErrorBody{
		Error:   domain.CategoryForStatus(statusCode),
		Message: message,
	})
}

// HandleError maps err onto the taxonomy; unknown errors become a 500 with fallback.
func HandleError(c *fiber.Ctx, err error, fallback string) error {
	appErr, ok := domain.AsAppError(err)
	if !ok {
		return ErrorResponse(c, fiber.StatusInternalServerError, fallback, err)
	}
	if appErr.Kind == domain.KindInternal {
		return ErrorResponse(c, fiber.StatusInternalServerError, fallback, appErr)
	}
	return ErrorResponse(c, appErr.Kind.StatusCode(), appErr.Message, nil)
}
