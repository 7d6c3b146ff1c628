package utils

import (
	"errors"

	"anime-stream/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// StandardResponse represents the standard API response format
type StandardResponse struct {
	Status  string            `json:"status"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// SuccessResponse sends a success response
func SuccessResponse(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(StandardResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c *fiber.Ctx, code int, message string) error {
	status := "error"
	if code >= 500 {
		status = "fail"
	}
	return c.Status(code).JSON(StandardResponse{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// AppErrorResponse maps err onto a status code. Server-side failures are
// reported with fallback instead of the raw error text.
func AppErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	code := apperror.MapErrorToStatus(err)

	var verr *apperror.ValidationError
	if errors.As(err, &verr) {
		return c.Status(code).JSON(StandardResponse{
			Status:  "error",
			Code:    code,
			Message: "Validation failed",
			Errors:  verr.Fields,
		})
	}

	message := fallback
	switch code {
	case fiber.StatusNotFound:
		message = "Resource not found"
	case fiber.StatusPreconditionRequired:
		message = "Confirmation required"
	}
	return ErrorResponse(c, code, message)
}
