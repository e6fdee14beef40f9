package courseValidator

import (
	"trainingmanager/hypermedia"
	"trainingmanager/validators"

	"github.com/gofiber/fiber/v2"
)

// MediaPayload is the write body shared by media create and update. URL is
// any string; it is deliberately not validated as a real URL.
type MediaPayload struct {
	URL  *string `json:"url" validate:"required"`
	Type *string `json:"type" validate:"required"`
}

// MediaBody parses and validates the request body for media writes.
func MediaBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(MediaPayload)

		if !c.Is("json") {
			return hypermedia.ErrorResponse(c, fiber.StatusUnsupportedMediaType, "Unsupported media type", "Request body must be JSON")
		}

		if err := c.BodyParser(reqData); err != nil {
			return hypermedia.ErrorResponse(c, fiber.StatusUnsupportedMediaType, "Unsupported media type", "Request body must be JSON")
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return hypermedia.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", validators.FieldErrors(err))
		}

		c.Locals("validatedMedia", reqData)
		return c.Next()
	}
}
