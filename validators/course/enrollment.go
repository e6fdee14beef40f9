package courseValidator

import (
	"trainingmanager/hypermedia"
	"trainingmanager/validators"

	"github.com/gofiber/fiber/v2"
)

// EnrollmentPayload enrolls an existing user into a course.
type EnrollmentPayload struct {
	UserID    *uint `json:"userid" validate:"required"`
	CanModify bool  `json:"canModify"`
}

// EnrollmentBody parses and validates the request body for enrollments.
func EnrollmentBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollmentPayload)

		if !c.Is("json") {
			return hypermedia.ErrorResponse(c, fiber.StatusUnsupportedMediaType, "Unsupported media type", "Request body must be JSON")
		}

		if err := c.BodyParser(reqData); err != nil {
			return hypermedia.ErrorResponse(c, fiber.StatusUnsupportedMediaType, "Unsupported media type", "Request body must be JSON")
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return hypermedia.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", validators.FieldErrors(err))
		}

		c.Locals("validatedEnrollment", reqData)
		return c.Next()
	}
}
