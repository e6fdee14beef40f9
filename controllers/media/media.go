package controllers

import (
	"errors"
	"fmt"

	"trainingmanager/hypermedia"
	"trainingmanager/models"
	courseValidator "trainingmanager/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MediaController serves standalone media items. Media keep existing after
// their course is deleted, so item URLs never depend on a course id.
type MediaController struct {
	Db *gorm.DB
}

// GetMedia returns a single media item. The "up" control is only present
// while the media still has an owning course.
func (ctl *MediaController) GetMedia(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No media was found with the id %s", c.Params("id")))
	}

	var media models.CourseMedia
	if err := ctl.Db.First(&media, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
				fmt.Sprintf("No media was found with the id %d", id))
		}
		return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to fetch media")
	}

	body := hypermedia.NewEnvelope()
	body["id"] = media.ID
	body["url"] = media.URL
	body["type"] = media.Type
	body["courseid"] = media.CourseID

	selfHref := hypermedia.Href(hypermedia.RouteMediaItem, "id", media.ID)
	body.AddControl("self", hypermedia.Control{Href: selfHref})
	body.AddControl("edit", hypermedia.Control{
		Href:     selfHref,
		Method:   fiber.MethodPut,
		Encoding: "json",
	})
	body.AddControl("trainingmanager:delete-media", hypermedia.Control{
		Href:   selfHref,
		Method: fiber.MethodDelete,
	})
	if media.CourseID != nil {
		body.AddControl("up", hypermedia.Control{
			Href: hypermedia.Href(hypermedia.RouteCourseItem, "id", *media.CourseID),
		})
	}

	return c.JSON(body, hypermedia.MasonType)
}

// UpdateMedia overwrites url and type. The owning course reference is not
// editable through this resource.
func (ctl *MediaController) UpdateMedia(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No media was found with the id %s", c.Params("id")))
	}

	reqData, ok := c.Locals("validatedMedia").(*courseValidator.MediaPayload)
	if !ok {
		return hypermedia.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "Missing media data")
	}

	txErr := ctl.Db.Transaction(func(tx *gorm.DB) error {
		var media models.CourseMedia
		if err := tx.First(&media, id).Error; err != nil {
			return err
		}
		media.URL = *reqData.URL
		media.Type = *reqData.Type
		return tx.Save(&media).Error
	})
	if errors.Is(txErr, gorm.ErrRecordNotFound) {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No media was found with the id %d", id))
	}
	if txErr != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to update media")
	}

	c.Status(fiber.StatusNoContent)
	return nil
}

// DeleteMedia removes the media row. The id parameter is required like on
// every other item verb.
func (ctl *MediaController) DeleteMedia(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No media was found with the id %s", c.Params("id")))
	}

	txErr := ctl.Db.Transaction(func(tx *gorm.DB) error {
		var media models.CourseMedia
		if err := tx.First(&media, id).Error; err != nil {
			return err
		}
		return tx.Delete(&media).Error
	})
	if errors.Is(txErr, gorm.ErrRecordNotFound) {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No media was found with the id %d", id))
	}
	if txErr != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to delete media")
	}

	c.Status(fiber.StatusNoContent)
	return nil
}
