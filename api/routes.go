package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"chirp-lab/auth"
	"chirp-lab/services"
)

// Register wires the middleware and routes onto the app. Reads are public;
// the write path decides authentication itself from the resolved caller id.
func Register(app *fiber.App, service services.IPostService, jwtSecret []byte, log *slog.Logger) {
	app.Use(auth.BearerUserID(jwtSecret))

	handler := NewPostHandler(service, log)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/posts", handler.Create)
	app.Get("/posts", handler.Feed)
	app.Get("/posts/:id", handler.ByID)
	app.Get("/users/:id/posts", handler.ByAuthor)
}
