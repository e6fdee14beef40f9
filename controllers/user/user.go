package controllers

import (
	"errors"
	"fmt"

	"trainingmanager/hypermedia"
	"trainingmanager/models"
	userValidator "trainingmanager/validators/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserController serves the user collection and item resources.
type UserController struct {
	Db *gorm.DB
}

// GetUserCollection lists every user with a self control per item.
func (ctl *UserController) GetUserCollection(c *fiber.Ctx) error {
	var users []models.User
	if err := ctl.Db.Order("id").Find(&users).Error; err != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to fetch users")
	}

	body := hypermedia.NewEnvelope()
	body.AddControl("self", hypermedia.Control{
		Href: hypermedia.Href(hypermedia.RouteUserCollection),
	})
	body.AddControl("trainingmanager:add-user", hypermedia.Control{
		Href:     hypermedia.Href(hypermedia.RouteUserCollection),
		Method:   fiber.MethodPost,
		Encoding: "json",
	})

	items := make([]hypermedia.Body, 0, len(users))
	for _, user := range users {
		item := hypermedia.Body{
			"id":        user.ID,
			"firstname": user.FirstName,
			"lastname":  user.LastName,
			"email":     user.Email,
		}
		item.AddControl("self", hypermedia.Control{
			Href: hypermedia.Href(hypermedia.RouteUserItem, "id", user.ID),
		})
		items = append(items, item)
	}
	body["items"] = items

	return c.JSON(body, hypermedia.MasonType)
}

// CreateUser adds a new user. isAdmin must be present in the body; the
// validator already rejected bodies without it, so the not-null column can
// never fault here.
func (ctl *UserController) CreateUser(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*userValidator.CreateUserPayload)
	if !ok {
		return hypermedia.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "Missing user data")
	}

	user := models.User{
		FirstName: *reqData.FirstName,
		LastName:  *reqData.LastName,
		Email:     reqData.Email,
		IsAdmin:   *reqData.IsAdmin,
	}
	if err := ctl.Db.Create(&user).Error; err != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to create user")
	}

	c.Set(fiber.HeaderLocation, hypermedia.Href(hypermedia.RouteUserItem, "id", user.ID))
	c.Status(fiber.StatusCreated)
	return nil
}

// GetUser returns a single user with all public fields.
func (ctl *UserController) GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No user was found with the id %s", c.Params("id")))
	}

	var user models.User
	if err := ctl.Db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
				fmt.Sprintf("No user was found with the id %d", id))
		}
		return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to fetch user")
	}

	body := hypermedia.NewEnvelope()
	body["id"] = user.ID
	body["firstname"] = user.FirstName
	body["lastname"] = user.LastName
	body["email"] = user.Email
	body["isAdmin"] = user.IsAdmin

	selfHref := hypermedia.Href(hypermedia.RouteUserItem, "id", user.ID)
	body.AddControl("self", hypermedia.Control{Href: selfHref})
	body.AddControl("collection", hypermedia.Control{
		Href: hypermedia.Href(hypermedia.RouteUserCollection),
	})
	body.AddControl("edit", hypermedia.Control{
		Href:     selfHref,
		Method:   fiber.MethodPut,
		Encoding: "json",
	})
	body.AddControl("trainingmanager:delete-user", hypermedia.Control{
		Href:   selfHref,
		Method: fiber.MethodDelete,
	})

	return c.JSON(body, hypermedia.MasonType)
}

// UpdateUser overwrites firstname, lastname and email.
func (ctl *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No user was found with the id %s", c.Params("id")))
	}

	reqData, ok := c.Locals("validatedUserUpdate").(*userValidator.UpdateUserPayload)
	if !ok {
		return hypermedia.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "Missing user data")
	}

	txErr := ctl.Db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		user.FirstName = *reqData.FirstName
		user.LastName = *reqData.LastName
		user.Email = *reqData.Email
		return tx.Save(&user).Error
	})
	if errors.Is(txErr, gorm.ErrRecordNotFound) {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No user was found with the id %d", id))
	}
	if txErr != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to update user")
	}

	c.Status(fiber.StatusNoContent)
	return nil
}

// DeleteUser removes the user and any enrollments pointing at them.
func (ctl *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No user was found with the id %s", c.Params("id")))
	}

	txErr := ctl.Db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).
			Delete(&models.CourseUserRelation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if errors.Is(txErr, gorm.ErrRecordNotFound) {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No user was found with the id %d", id))
	}
	if txErr != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to delete user")
	}

	c.Status(fiber.StatusNoContent)
	return nil
}
