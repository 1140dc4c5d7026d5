// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package posts

import (
	"github.com/gofiber/fiber/v2"

	"github.com/litboard/api/internal/middleware/sessionauth"
	"github.com/litboard/api/internal/sessions"
	"github.com/litboard/api/posts/handlers"
)

// PostsHandlers holds all the handlers this router needs
type PostsHandlers struct {
	PostHandler *handlers.PostHandler
}

// RouterConfig holds the configuration needed for the router's middleware
type RouterConfig struct {
	Store      *sessions.Store
	CookieName string
}

// RegisterRoutes is the single entry point for setting up post routes
func RegisterRoutes(app *fiber.App, h *PostsHandlers, cfg *RouterConfig) {
	requireSession := sessionauth.New(sessionauth.Config{
		Store:      cfg.Store,
		CookieName: cfg.CookieName,
		Required:   true,
	})
	// Reads resolve the viewer when a session is present so per-viewer
	// fields (creator email) can be filled, but never demand a login.
	optionalSession := sessionauth.New(sessionauth.Config{
		Store:      cfg.Store,
		CookieName: cfg.CookieName,
		Required:   false,
	})

	group := app.Group("/posts")

	group.Get("/", optionalSession, h.PostHandler.ListPosts)
	group.Get("/:id", optionalSession, h.PostHandler.GetPost)
	group.Post("/", requireSession, h.PostHandler.CreatePost)
	group.Put("/:id", h.PostHandler.UpdatePost)
	group.Delete("/:id", h.PostHandler.DeletePost)
}
