// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/litboard/api/internal/middleware/sessionauth"
	"github.com/litboard/api/internal/sessions"
	"github.com/litboard/api/internal/types"
	"github.com/litboard/api/users/errors"
	"github.com/litboard/api/users/models"
	"github.com/litboard/api/users/services"
)

// CookieConfig describes how the session cookie is issued.
type CookieConfig struct {
	Name   string
	Secure bool
}

// UserHandler handles all account-related HTTP requests
type UserHandler struct {
	userService *services.UserService
	store       *sessions.Store
	cookie      CookieConfig
}

// NewUserHandler creates a new UserHandler with injected dependencies
func NewUserHandler(userService *services.UserService, store *sessions.Store, cookie CookieConfig) *UserHandler {
	return &UserHandler{
		userService: userService,
		store:       store,
		cookie:      cookie,
	}
}

// Register handles account creation
// Endpoint: POST /auth/register
// Body: {"username": "...", "email": "...", "password": "..."}
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	resp, err := h.userService.Register(c.UserContext(), &req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	// A successful registration logs the user in immediately.
	if resp.User != nil {
		if err := h.startSession(c, resp.User); err != nil {
			return errors.HandleServiceError(c, err)
		}
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// Login handles credential verification and session creation
// Endpoint: POST /auth/login
// Body: {"usernameOrEmail": "...", "password": "..."}
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	resp, err := h.userService.Authenticate(c.UserContext(), &req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	if resp.User != nil {
		if err := h.startSession(c, resp.User); err != nil {
			return errors.HandleServiceError(c, err)
		}
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// Logout destroys the server-side session and clears the cookie
// Endpoint: POST /auth/logout
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	cookieValue := c.Cookies(h.cookie.Name)
	if cookieValue != "" {
		// Best effort: a stale or tampered cookie still gets cleared.
		_ = h.store.Destroy(c.UserContext(), cookieValue)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return c.Status(http.StatusOK).JSON(fiber.Map{"loggedOut": true})
}

// Me returns the authenticated user's profile
// Endpoint: GET /auth/me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, ok := sessionauth.UserFromLocals(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"code":    "UNAUTHORIZED",
			"message": "Not authenticated",
		})
	}

	profile, err := h.userService.Me(c.UserContext(), user.UserID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"user": profile})
}

// ForgotPassword starts the email reset flow
// Endpoint: POST /auth/forgot-password
// Body: {"email": "..."}
// Always reports success so the endpoint cannot probe for accounts.
func (h *UserHandler) ForgotPassword(c *fiber.Ctx) error {
	var req models.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}
	if req.Email == "" {
		return errors.HandleInvalidRequestError(c, "email is required")
	}

	if err := h.userService.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"sent": true})
}

// ChangePassword completes the email reset flow
// Endpoint: POST /auth/change-password
// Body: {"token": "...", "newPassword": "..."}
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var req models.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}
	if req.Token == "" {
		return errors.HandleInvalidRequestError(c, "token is required")
	}

	resp, err := h.userService.ResetPassword(c.UserContext(), req.Token, req.NewPassword)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	// A successful reset logs the user in with the new credentials.
	if resp.User != nil {
		if err := h.startSession(c, resp.User); err != nil {
			return errors.HandleServiceError(c, err)
		}
	}

	return c.Status(http.StatusOK).JSON(resp)
}

func (h *UserHandler) startSession(c *fiber.Ctx, user *models.UserProfile) error {
	cookieValue, err := h.store.Create(c.UserContext(), types.UserContext{
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrSessionFailure, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    cookieValue,
		Expires:  time.Now().Add(h.store.TTL()),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return nil
}
