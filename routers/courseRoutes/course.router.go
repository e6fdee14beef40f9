package courseRoutes

import (
	controllers "trainingmanager/controllers/course"
	"trainingmanager/hypermedia"
	validators "trainingmanager/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupCourseRoutes binds the course collection, item and sub-collection
// resources. Paths come from the named-route table so the registered
// templates always match the hrefs embedded in responses.
func SetupCourseRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &controllers.CourseController{Db: db}

	app.Get(hypermedia.Template(hypermedia.RouteCourseCollection), ctl.GetCourseCollection)
	app.Post(hypermedia.Template(hypermedia.RouteCourseCollection), validators.CourseBody(), ctl.CreateCourse)

	app.Get(hypermedia.Template(hypermedia.RouteCourseItem), ctl.GetCourse)
	app.Put(hypermedia.Template(hypermedia.RouteCourseItem), validators.CourseBody(), ctl.UpdateCourse)
	app.Delete(hypermedia.Template(hypermedia.RouteCourseItem), ctl.DeleteCourse)

	app.Get(hypermedia.Template(hypermedia.RouteCourseMedias), ctl.GetCourseMedias)
	app.Post(hypermedia.Template(hypermedia.RouteCourseMedias), validators.MediaBody(), ctl.AddCourseMedia)

	app.Get(hypermedia.Template(hypermedia.RouteCourseUsers), ctl.GetCourseUsers)
	app.Post(hypermedia.Template(hypermedia.RouteCourseUsers), validators.EnrollmentBody(), ctl.AddCourseUser)
}
