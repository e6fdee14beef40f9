package mediaRoutes

import (
	controllers "trainingmanager/controllers/media"
	"trainingmanager/hypermedia"
	validators "trainingmanager/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupMediaRoutes binds the standalone media item resource.
func SetupMediaRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &controllers.MediaController{Db: db}

	app.Get(hypermedia.Template(hypermedia.RouteMediaItem), ctl.GetMedia)
	app.Put(hypermedia.Template(hypermedia.RouteMediaItem), validators.MediaBody(), ctl.UpdateMedia)
	app.Delete(hypermedia.Template(hypermedia.RouteMediaItem), ctl.DeleteMedia)
}
