// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package users

import (
	"github.com/gofiber/fiber/v2"

	"github.com/litboard/api/internal/middleware/sessionauth"
	"github.com/litboard/api/internal/sessions"
	"github.com/litboard/api/users/handlers"
)

// UsersHandlers holds all the handlers this router needs
type UsersHandlers struct {
	UserHandler *handlers.UserHandler
}

// RouterConfig holds the configuration needed for the router's middleware
type RouterConfig struct {
	Store      *sessions.Store
	CookieName string
}

// RegisterRoutes is the single entry point for setting up account routes
func RegisterRoutes(app *fiber.App, h *UsersHandlers, cfg *RouterConfig) {
	requireSession := sessionauth.New(sessionauth.Config{
		Store:      cfg.Store,
		CookieName: cfg.CookieName,
		Required:   true,
	})

	group := app.Group("/auth")

	group.Post("/register", h.UserHandler.Register)
	group.Post("/login", h.UserHandler.Login)
	group.Post("/logout", h.UserHandler.Logout)
	group.Get("/me", requireSession, h.UserHandler.Me)
	group.Post("/forgot-password", h.UserHandler.ForgotPassword)
	group.Post("/change-password", h.UserHandler.ChangePassword)
}
