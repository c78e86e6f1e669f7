package presenters

import (
	"lucky-tours-api/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data interface{}, code int, message string) error {
	return c.Status(code).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	resp := Response{
		Success: false,
		Message: message,
	}
	// Server faults only echo the underlying error outside production.
	if err != nil && !(code == fiber.StatusInternalServerError && utils.GetConfig("APP_ENV") == "production") {
		resp.Error = err.Error()
	}
	return c.Status(code).JSON(resp)
}
