package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/andrefasa/user-service/internal/apperr"
)

// APIResponse is the uniform success envelope.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// APIErrorResponse is the uniform failure envelope.
type APIErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Data       any      `json:"data"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func respond(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// ErrorHandler is the single point converting operation errors into the
// failure envelope. It is installed as the fiber app's ErrorHandler, so no
// handler writes error responses itself.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "oops something went wrong, please try again"

	var ae *apperr.Error
	var fe *fiber.Error
	switch {
	case errors.As(err, &ae):
		status = ae.Kind.StatusCode()
		if ae.Kind != apperr.KindInternal {
			message = ae.Message
		}
	case errors.As(err, &fe):
		status = fe.Code
		message = fe.Message
	}

	return c.Status(status).JSON(APIErrorResponse{
		StatusCode: status,
		Data:       nil,
		Message:    message,
		Success:    false,
		Errors:     []string{},
	})
}
