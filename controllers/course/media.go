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

// GetCourseMedias lists the media attached to a course as a flat
// {url, type} array. The degraded shape (no envelope, no ids) is a
// compatibility contract with existing clients.
func (ctl *CourseController) GetCourseMedias(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No course was found with the id %s", c.Params("id")))
	}

	var course models.TrainingCourse
	if err := ctl.Db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
				fmt.Sprintf("No course was found with the id %d", id))
		}
		return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to fetch course")
	}

	var medias []models.CourseMedia
	if err := ctl.Db.Where("course_id = ?", course.ID).Order("id").Find(&medias).Error; err != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to fetch course media")
	}

	items := make([]fiber.Map, 0, len(medias))
	for _, media := range medias {
		items = append(items, fiber.Map{
			"url":  media.URL,
			"type": media.Type,
		})
	}

	return c.JSON(items, hypermedia.MasonType)
}

// AddCourseMedia creates a media row owned by the course in the path.
func (ctl *CourseController) AddCourseMedia(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No course was found with the id %s", c.Params("id")))
	}

	reqData, ok := c.Locals("validatedMedia").(*courseValidator.MediaPayload)
	if !ok {
		return hypermedia.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "Missing media data")
	}

	var media models.CourseMedia
	txErr := ctl.Db.Transaction(func(tx *gorm.DB) error {
		var course models.TrainingCourse
		if err := tx.First(&course, id).Error; err != nil {
			return err
		}
		media = models.CourseMedia{
			URL:      *reqData.URL,
			Type:     *reqData.Type,
			CourseID: &course.ID,
		}
		return tx.Create(&media).Error
	})
	if errors.Is(txErr, gorm.ErrRecordNotFound) {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No course was found with the id %d", id))
	}
	if txErr != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to create media")
	}

	c.Set(fiber.HeaderLocation, hypermedia.Href(hypermedia.RouteMediaItem, "id", media.ID))
	c.Status(fiber.StatusCreated)
	return nil
}
