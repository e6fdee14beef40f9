package courseValidator

import (
	"trainingmanager/hypermedia"
	"trainingmanager/validators"

	"github.com/gofiber/fiber/v2"
)

// CoursePayload is the write body shared by course create and update.
type CoursePayload struct {
	Name           *string `json:"name" validate:"required"`
	CourseDataJSON *string `json:"coursedatajson" validate:"required"`
}

// CourseBody parses and validates the request body for course writes. A body
// that is absent or not JSON is rejected with 415 before any store access.
func CourseBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CoursePayload)

		if !c.Is("json") {
			return hypermedia.ErrorResponse(c, fiber.StatusUnsupportedMediaType, "Unsupported media type", "Request body must be JSON")
		}

		if err := c.BodyParser(reqData); err != nil {
			return hypermedia.ErrorResponse(c, fiber.StatusUnsupportedMediaType, "Unsupported media type", "Request body must be JSON")
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return hypermedia.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", validators.FieldErrors(err))
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}
