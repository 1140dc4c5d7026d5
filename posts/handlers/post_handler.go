// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/schema"

	"github.com/litboard/api/internal/types"
	posterrors "github.com/litboard/api/posts/errors"
	"github.com/litboard/api/posts/models"
	"github.com/litboard/api/posts/services"
)

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// PostHandler handles all post-related HTTP requests
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler with injected dependencies
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// ListPosts returns one feed page
// Endpoint: GET /posts?limit=10&cursor=...
func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	values := url.Values{}
	c.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})

	var query models.ListPostsQuery
	if err := queryDecoder.Decode(&query, values); err != nil {
		return posterrors.HandleInvalidRequestError(c, "Invalid query parameters")
	}

	posts, hasMore, err := h.postService.List(c.UserContext(), query.Limit, query.Cursor)
	if err != nil {
		return posterrors.HandleServiceError(c, err)
	}

	viewer := viewerFromLocals(c)
	responses := make([]models.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, models.ConvertPostToResponse(&posts[i], viewer))
	}

	page := models.PaginatedPostsResponse{Posts: responses, HasMore: hasMore}

	if hasMore && len(posts) > 0 {
		nextCursor, err := models.EncodeCursor(models.CursorFromPost(&posts[len(posts)-1]))
		if err == nil {
			return c.Status(http.StatusOK).JSON(fiber.Map{
				"posts":      page.Posts,
				"hasMore":    page.HasMore,
				"nextCursor": nextCursor,
			})
		}
	}

	return c.Status(http.StatusOK).JSON(page)
}

// GetPost returns a single post
// Endpoint: GET /posts/:id
func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return posterrors.HandleIDError(c, "id")
	}

	post, err := h.postService.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, posterrors.ErrPostNotFound) {
			// A missing post resolves to an absent value, not an error.
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"post": nil})
		}
		return posterrors.HandleServiceError(c, err)
	}

	viewer := viewerFromLocals(c)
	resp := models.ConvertPostToResponse(post, viewer)
	return c.Status(http.StatusOK).JSON(fiber.Map{"post": resp})
}

// CreatePost creates a new post for the authenticated user
// Endpoint: POST /posts
// Body: {"title": "...", "text": "..."}
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var req models.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return posterrors.HandleInvalidRequestError(c, "Invalid request body")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return posterrors.HandleUserContextError(c, "Invalid user context")
	}

	post, err := h.postService.Create(c.UserContext(), user.UserID, &req)
	if err != nil {
		return posterrors.HandleServiceError(c, err)
	}

	resp := models.ConvertPostToResponse(post, &user)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"post": resp})
}

// UpdatePost updates a post's title
// Endpoint: PUT /posts/:id
// Body: {"title": "..."}
func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return posterrors.HandleIDError(c, "id")
	}

	var req models.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return posterrors.HandleInvalidRequestError(c, "Invalid request body")
	}

	post, err := h.postService.UpdateTitle(c.UserContext(), id, req.Title)
	if err != nil {
		return posterrors.HandleServiceError(c, err)
	}
	if post == nil {
		// A missing post resolves to an absent value, not an error.
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"post": nil})
	}

	resp := models.ConvertPostToResponse(post, viewerFromLocals(c))
	return c.Status(http.StatusOK).JSON(fiber.Map{"post": resp})
}

// DeletePost removes a post
// Endpoint: DELETE /posts/:id
func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return posterrors.HandleIDError(c, "id")
	}

	deleted, err := h.postService.Delete(c.UserContext(), id)
	if err != nil {
		return posterrors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"deleted": deleted})
}

func viewerFromLocals(c *fiber.Ctx) *types.UserContext {
	if user, ok := c.Locals(types.UserCtxName).(types.UserContext); ok {
		return &user
	}
	return nil
}
