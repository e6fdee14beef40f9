package controllers

import (
	"errors"
	"fmt"
	"time"

	"trainingmanager/hypermedia"
	"trainingmanager/models"
	courseValidator "trainingmanager/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// errUserNotFound distinguishes a missing user from a missing course inside
// the enrollment transaction.
var errUserNotFound = errors.New("user not found")

// GetCourseUsers lists the users enrolled in a course together with their
// enrollment metadata, ordered by enrollment time.
func (ctl *CourseController) GetCourseUsers(c *fiber.Ctx) error {
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

	var relations []models.CourseUserRelation
	if err := ctl.Db.Where("course_id = ?", course.ID).
		Order("added_to_course, user_id").Find(&relations).Error; err != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to fetch enrollments")
	}

	userIDs := make([]uint, 0, len(relations))
	for _, rel := range relations {
		userIDs = append(userIDs, rel.UserID)
	}

	usersByID := map[uint]models.User{}
	if len(userIDs) > 0 {
		var users []models.User
		if err := ctl.Db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to fetch enrolled users")
		}
		for _, user := range users {
			usersByID[user.ID] = user
		}
	}

	body := hypermedia.NewEnvelope()
	body.AddControl("self", hypermedia.Control{
		Href: hypermedia.Href(hypermedia.RouteCourseUsers, "id", course.ID),
	})
	body.AddControl("up", hypermedia.Control{
		Href: hypermedia.Href(hypermedia.RouteCourseItem, "id", course.ID),
	})
	body.AddControl("addcourseuser", hypermedia.Control{
		Href:     hypermedia.Href(hypermedia.RouteCourseUsers, "id", course.ID),
		Method:   fiber.MethodPost,
		Encoding: "json",
	})

	items := make([]hypermedia.Body, 0, len(relations))
	for _, rel := range relations {
		user, ok := usersByID[rel.UserID]
		if !ok {
			continue
		}
		item := hypermedia.Body{
			"id":            user.ID,
			"firstname":     user.FirstName,
			"lastname":      user.LastName,
			"email":         user.Email,
			"canModify":     rel.CanModify,
			"addedtocourse": rel.AddedToCourse,
		}
		item.AddControl("self", hypermedia.Control{
			Href: hypermedia.Href(hypermedia.RouteUserItem, "id", user.ID),
		})
		items = append(items, item)
	}
	body["items"] = items

	return c.JSON(body, hypermedia.MasonType)
}

// AddCourseUser enrolls an existing user into the course, stamping the
// enrollment time. Completion score and date stay unset; no endpoint
// writes them yet.
func (ctl *CourseController) AddCourseUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No course was found with the id %s", c.Params("id")))
	}

	reqData, ok := c.Locals("validatedEnrollment").(*courseValidator.EnrollmentPayload)
	if !ok {
		return hypermedia.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "Missing enrollment data")
	}

	txErr := ctl.Db.Transaction(func(tx *gorm.DB) error {
		var course models.TrainingCourse
		if err := tx.First(&course, id).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.First(&user, *reqData.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.CourseUserRelation{}).
			Where("course_id = ? AND user_id = ?", course.ID, user.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}

		relation := models.CourseUserRelation{
			CourseID:      course.ID,
			UserID:        user.ID,
			AddedToCourse: time.Now(),
			CanModify:     reqData.CanModify,
		}
		return tx.Create(&relation).Error
	})
	if errors.Is(txErr, gorm.ErrRecordNotFound) {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No course was found with the id %d", id))
	}
	if errors.Is(txErr, errUserNotFound) {
		return hypermedia.ErrorResponse(c, fiber.StatusNotFound, "Not found",
			fmt.Sprintf("No user was found with the id %d", *reqData.UserID))
	}
	if errors.Is(txErr, gorm.ErrDuplicatedKey) {
		return hypermedia.ErrorResponse(c, fiber.StatusConflict, "Already exists",
			fmt.Sprintf("User %d is already enrolled in course %d", *reqData.UserID, id))
	}
	if txErr != nil {
		return hypermedia.ErrorResponse(c, fiber.StatusInternalServerError, "Database error", "Failed to enroll user")
	}

	c.Set(fiber.HeaderLocation, hypermedia.Href(hypermedia.RouteUserItem, "id", *reqData.UserID))
	c.Status(fiber.StatusCreated)
	return nil
}
