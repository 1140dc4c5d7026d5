// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/litboard/api/internal/types"
	"github.com/litboard/api/votes/errors"
	"github.com/litboard/api/votes/services"
)

// VoteHandler handles all vote-related HTTP requests
type VoteHandler struct {
	voteService services.VoteService
}

// NewVoteHandler creates a new VoteHandler with injected dependencies
func NewVoteHandler(voteService services.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// VoteRequest represents the request body for voting
type VoteRequest struct {
	PostID int64 `json:"postId"`
	Value  int   `json:"value"`
}

// Vote records a vote on a post
// Endpoint: POST /votes
// Body: {"postId": 10, "value": 1}
// A failed vote (missing post, rolled-back transaction) reports
// {"voted": false} rather than a transport error; the ledger and the
// score are guaranteed consistent either way.
func (h *VoteHandler) Vote(c *fiber.Ctx) error {
	var req VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	if req.PostID <= 0 {
		return errors.HandleValidationError(c, "postId is required")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	voted, _ := h.voteService.Vote(c.UserContext(), req.PostID, user.UserID, req.Value)

	return c.Status(http.StatusOK).JSON(fiber.Map{"voted": voted})
}
