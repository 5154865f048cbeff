package presenters

import (
	"errors"

	"recipehub/domain"
	"recipehub/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Response struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes err with an explicit status. Server errors are logged
// and replaced by a generic message.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}

	if statusCode >= fiber.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg(message)
		res.Error = domain.MessageInternalError
		return c.Status(statusCode).JSON(res)
	}

	if err != nil {
		res.Error = err.Error()
	}
	if fields := utils.ValidationMessages(err); fields != nil {
		res.Error = domain.MessageFailedValidation
		res.Errors = fields
	}
	var derr *domain.Error
	if errors.As(err, &derr) && derr.Field != "" {
		res.Errors = map[string]string{derr.Field: derr.Message}
	}

	return c.Status(statusCode).JSON(res)
}

// HandleError maps a service error to its status code by kind.
func HandleError(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusCode(err), message, err)
}

func StatusCode(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case utils.ValidationMessages(err) != nil,
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrConflict):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
