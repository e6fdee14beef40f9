package userRoutes

import (
	controllers "trainingmanager/controllers/user"
	"trainingmanager/hypermedia"
	validators "trainingmanager/validators/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupUserRoutes binds the user collection and item resources.
func SetupUserRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &controllers.UserController{Db: db}

	app.Get(hypermedia.Template(hypermedia.RouteUserCollection), ctl.GetUserCollection)
	app.Post(hypermedia.Template(hypermedia.RouteUserCollection), validators.CreateUser(), ctl.CreateUser)

	app.Get(hypermedia.Template(hypermedia.RouteUserItem), ctl.GetUser)
	app.Put(hypermedia.Template(hypermedia.RouteUserItem), validators.UpdateUser(), ctl.UpdateUser)
	app.Delete(hypermedia.Template(hypermedia.RouteUserItem), ctl.DeleteUser)
}
