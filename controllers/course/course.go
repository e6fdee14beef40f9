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

// CourseController serves the training course collection and item
// resources. The store handle is injected at route setup.
type CourseController struct {
	Db *gorm.DB
}

// GetCourseCollection lists every course with a self control per item.
// Media and user sub-lists are not expanded here; only the item view does.
func (ctl *CourseController) GetCourseCollection(c *fiber.Ctx) error {
	var courses []models.TrainingCourse
	if err := ctl.Db.Order("id").Find(&courses).Error; err != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to fetch courses")
	}

	body := hypermedia.NewEnvelope()
	body.AddControl("self", hypermedia.Control{
		Href: hypermedia.Href(hypermedia.RouteCourseCollection),
	})
	body.AddControl("trainingmanager:add-course", hypermedia.Control{
		Href:     hypermedia.Href(hypermedia.RouteCourseCollection),
		Method:   fiber.MethodPost,
		Encoding: "json",
	})

	items := make([]hypermedia.Body, 0, len(courses))
	for _, course := range courses {
		item := hypermedia.Body{
			"id":           course.ID,
			"name":         course.Name,
			"creationdate": course.CreationDate,
			"startdate":    course.StartDate,
			"enddate":      course.EndDate,
		}
		item.AddControl("self", hypermedia.Control{
			Href: hypermedia.Href(hypermedia.RouteCourseItem, "id", course.ID),
		})
		items = append(items, item)
	}
	body["items"] = items

	return c.JSON(body, hypermedia.MasonType)
}

// CreateCourse adds a new course. The Location header addresses the new
// item by its numeric id; names can contain characters unfit for URLs.
func (ctl *CourseController) CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CoursePayload)
	if !ok {
		return hypermedia.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "Missing course data")
	}

	course := models.TrainingCourse{
		Name:           *reqData.Name,
		CourseDataJSON: *reqData.CourseDataJSON,
	}

	err := ctl.Db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.TrainingCourse{}).Where("name = ?", course.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(&course).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return hypermedia.ErrorResponse(c, fiber.StatusConflict, "Already exists",
			fmt.Sprintf("Course with name '%s' already exists", course.Name))
	}
	if err != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to create course")
	}

	c.Set(fiber.HeaderLocation, hypermedia.Href(hypermedia.RouteCourseItem, "id", course.ID))
	c.Status(fiber.StatusCreated)
	return nil
}

// GetCourse returns the full item view with the expanded media list and
// every control valid in the exists state.
func (ctl *CourseController) GetCourse(c *fiber.Ctx) error {
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

	medialist := make([]hypermedia.Body, 0, len(medias))
	for _, media := range medias {
		medialist = append(medialist, hypermedia.Body{
			"id":   media.ID,
			"url":  media.URL,
			"type": media.Type,
		})
	}

	body := hypermedia.NewEnvelope()
	body["id"] = course.ID
	body["name"] = course.Name
	body["coursedatajson"] = course.CourseDataJSON
	body["creationdate"] = course.CreationDate
	body["startdate"] = course.StartDate
	body["enddate"] = course.EndDate
	body["medialist"] = medialist

	selfHref := hypermedia.Href(hypermedia.RouteCourseItem, "id", course.ID)
	mediasHref := hypermedia.Href(hypermedia.RouteCourseMedias, "id", course.ID)
	usersHref := hypermedia.Href(hypermedia.RouteCourseUsers, "id", course.ID)

	body.AddControl("self", hypermedia.Control{Href: selfHref})
	body.AddControl("collection", hypermedia.Control{
		Href: hypermedia.Href(hypermedia.RouteCourseCollection),
	})
	body.AddControl("edit", hypermedia.Control{
		Href:     selfHref,
		Method:   fiber.MethodPut,
		Encoding: "json",
	})
	body.AddControl("trainingmanager:delete-course", hypermedia.Control{
		Href:   selfHref,
		Method: fiber.MethodDelete,
	})
	body.AddControl("addmedia", hypermedia.Control{
		Href:     mediasHref,
		Method:   fiber.MethodPost,
		Encoding: "json",
	})
	body.AddControl("addcourseuser", hypermedia.Control{
		Href:     usersHref,
		Method:   fiber.MethodPost,
		Encoding: "json",
	})
	body.AddControl("trainingmanager:coursemedias", hypermedia.Control{
		Href:   mediasHref,
		Method: fiber.MethodGet,
	})
	body.AddControl("trainingmanager:courseusers", hypermedia.Control{
		Href:   usersHref,
		Method: fiber.MethodGet,
	})

	return c.JSON(body, hypermedia.MasonType)
}

// UpdateCourse overwrites name and coursedatajson from the body. Dates are
// left untouched on purpose; the handler only assigns the fields it reads.
func (ctl *CourseController) UpdateCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No course was found with the id %s", c.Params("id")))
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CoursePayload)
	if !ok {
		return hypermedia.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "Missing course data")
	}

	txErr := ctl.Db.Transaction(func(tx *gorm.DB) error {
		var course models.TrainingCourse
		if err := tx.First(&course, id).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.TrainingCourse{}).
			Where("name = ? AND id <> ?", *reqData.Name, course.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}

		course.Name = *reqData.Name
		course.CourseDataJSON = *reqData.CourseDataJSON
		return tx.Save(&course).Error
	})
	if errors.Is(txErr, gorm.ErrRecordNotFound) {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No course was found with the id %d", id))
	}
	if errors.Is(txErr, gorm.ErrDuplicatedKey) {
		return hypermedia.ErrorResponse(c, fiber.StatusConflict, "Already exists",
			fmt.Sprintf("Course with name '%s' already exists", *reqData.Name))
	}
	if txErr != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to update course")
	}

	c.Status(fiber.StatusNoContent)
	return nil
}

// DeleteCourse removes the course, detaches its media (the owning reference
// goes null, rows survive) and clears its enrollment rows, all in one
// transaction.
func (ctl *CourseController) DeleteCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No course was found with the id %s", c.Params("id")))
	}

	txErr := ctl.Db.Transaction(func(tx *gorm.DB) error {
		var course models.TrainingCourse
		if err := tx.First(&course, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.CourseMedia{}).
			Where("course_id = ?", course.ID).
			Update("course_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", course.ID).
			Delete(&models.CourseUserRelation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if errors.Is(txErr, gorm.ErrRecordNotFound) {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No course was found with the id %d", id))
	}
	if txErr != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to delete course")
	}

	c.Status(fiber.StatusNoContent)
	return nil
}
