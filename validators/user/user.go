package userValidator

import (
	"trainingmanager/hypermedia"
	"trainingmanager/validators"

	"github.com/gofiber/fiber/v2"
)

// CreateUserPayload is the write body for user creation. IsAdmin is a
// pointer so that an explicit false still satisfies the required rule;
// omitting it entirely is a validation failure, never a store fault.
type CreateUserPayload struct {
	FirstName *string `json:"firstname" validate:"required"`
	LastName  *string `json:"lastname" validate:"required"`
	Email     string  `json:"email"`
	IsAdmin   *bool   `json:"isAdmin" validate:"required"`
}

// UpdateUserPayload is the write body for user updates; all three fields
// are overwritten.
type UpdateUserPayload struct {
	FirstName *string `json:"firstname" validate:"required"`
	LastName  *string `json:"lastname" validate:"required"`
	Email     *string `json:"email" validate:"required"`
}

// CreateUser parses and validates the request body for user creation.
func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateUserPayload)

		if !c.Is("json") {
			return hypermedia.ErrorResponse(c, fiber.StatusUnsupportedMediaType, "Unsupported media type", "Request body must be JSON")
		}

		if err := c.BodyParser(reqData); err != nil {
			return hypermedia.ErrorResponse(c, fiber.StatusUnsupportedMediaType, "Unsupported media type", "Request body must be JSON")
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return hypermedia.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", validators.FieldErrors(err))
		}

		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

// UpdateUser parses and validates the request body for user updates.
func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateUserPayload)

		if !c.Is("json") {
			return hypermedia.ErrorResponse(c, fiber.StatusUnsupportedMediaType, "Unsupported media type", "Request body must be JSON")
		}

		if err := c.BodyParser(reqData); err != nil {
			return hypermedia.ErrorResponse(c, fiber.StatusUnsupportedMediaType, "Unsupported media type", "Request body must be JSON")
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return hypermedia.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", validators.FieldErrors(err))
		}

		c.Locals("validatedUserUpdate", reqData)
		return c.Next()
	}
}
