// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package votes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/litboard/api/internal/middleware/sessionauth"
	"github.com/litboard/api/internal/sessions"
	"github.com/litboard/api/votes/handlers"
)

// VotesHandlers holds all the handlers this router needs
type VotesHandlers struct {
	VoteHandler *handlers.VoteHandler
}

// RouterConfig holds the configuration needed for the router's middleware
type RouterConfig struct {
	Store      *sessions.Store
	CookieName string
}

// RegisterRoutes is the single entry point for setting up vote routes
func RegisterRoutes(app *fiber.App, h *VotesHandlers, cfg *RouterConfig) {
	requireSession := sessionauth.New(sessionauth.Config{
		Store:      cfg.Store,
		CookieName: cfg.CookieName,
		Required:   true,
	})

	group := app.Group("/votes")

	group.Post("/", requireSession, h.VoteHandler.Vote)
}
