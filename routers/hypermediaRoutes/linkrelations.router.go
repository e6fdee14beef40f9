package hypermediaRoutes

import (
	"trainingmanager/hypermedia"

	"github.com/gofiber/fiber/v2"
)

// SetupLinkRelationRoutes serves the documentation page the trainingmanager
// namespace points at. Placeholder content until the relation docs are
// written out properly.
func SetupLinkRelationRoutes(app *fiber.App) {
	app.Get(hypermedia.Template(hypermedia.RouteLinkRelations), func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString("<html><body><h1>Training manager link relations</h1>" +
			"<p>Documentation for the custom link relations of the trainingmanager namespace.</p>" +
			"</body></html>")
	})
}
