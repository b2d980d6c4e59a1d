// Package api exposes the service operations over HTTP JSON.
package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"chirp-lab/auth"
	errs "chirp-lab/errors"
	"chirp-lab/services"
)

type PostHandler struct {
	service services.IPostService
	log     *slog.Logger
}

func NewPostHandler(service services.IPostService, log *slog.Logger) *PostHandler {
	return &PostHandler{service: service, log: log}
}

type createPostRequest struct {
	Content string `json:"content"`
}

// Create handles POST /posts.
func (h *PostHandler) Create(c *fiber.Ctx) error {
	var body createPostRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	post, err := h.service.CreatePost(c.UserContext(), auth.UserID(c), body.Content)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// Feed handles GET /posts.
func (h *PostHandler) Feed(c *fiber.Ctx) error {
	feed, err := h.service.GetFeed(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(feed)
}

// ByID handles GET /posts/:id.
func (h *PostHandler) ByID(c *fiber.Ctx) error {
	post, err := h.service.GetPostByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(post)
}

// ByAuthor handles GET /users/:id/posts.
func (h *PostHandler) ByAuthor(c *fiber.Ctx) error {
	posts, err := h.service.GetPostsByAuthor(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(posts)
}

// fail translates a service failure into its HTTP shape. Every taxonomy
// entry keeps its own status code; nothing collapses into a generic 500
// except genuine unknowns and integrity violations.
func (h *PostHandler) fail(c *fiber.Ctx, err error) error {
	status := errs.MapToHTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		h.log.Error("request failed", "path", c.Path(), "status", status, "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
