package hypermedia

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse writes a Mason error body with the given status code. The
// path of the failing request is recorded in the body for diagnostics.
func ErrorResponse(c *fiber.Ctx, statusCode int, title, message string) error {
	body := NewBody().AddError(title, message)
	body["resource_url"] = c.Path()
	return c.Status(statusCode).JSON(body, MasonType)
}
