// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	"github.com/litboard/api/internal/types"
)

// snippetLength bounds the preview text returned in feed responses.
const snippetLength = 150

// Post represents a post row joined with its creator snapshot.
type Post struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Text      string    `db:"text"`
	Points    int64     `db:"points"`
	CreatorID int64     `db:"creator_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// Creator columns come from the JOIN on users; they are never written
	// through this struct.
	CreatorUsername string `db:"creator_username"`
	CreatorEmail    string `db:"creator_email"`
}

// CreatorResponse is the per-post creator snapshot. Email carries the real
// address only when the viewer is the creator.
type CreatorResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PostResponse is the outward-facing view of a post.
type PostResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	TextSnippet string          `json:"textSnippet"`
	Points      int64           `json:"points"`
	CreatedAt   time.Time       `json:"createdAt"`
	Creator     CreatorResponse `json:"creator"`
}

// PaginatedPostsResponse is the feed page shape.
type PaginatedPostsResponse struct {
	Posts   []PostResponse `json:"posts"`
	HasMore bool           `json:"hasMore"`
}

// CreatePostRequest represents the payload for creating a post.
type CreatePostRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// UpdatePostRequest represents the payload for updating a post. A nil
// Title leaves the stored title untouched.
type UpdatePostRequest struct {
	Title *string `json:"title"`
}

// ListPostsQuery carries the feed query parameters, decoded by
// gorilla/schema from the URL query string.
type ListPostsQuery struct {
	Limit  int    `schema:"limit"`
	Cursor string `schema:"cursor"`
}

// ConvertPostToResponse builds the response view of a post for the given
// viewer. The creator's email is resolved per request: the real address
// for the creator themselves, empty for everyone else.
func ConvertPostToResponse(post *Post, viewer *types.UserContext) PostResponse {
	email := ""
	if viewer != nil && viewer.UserID == post.CreatorID {
		email = post.CreatorEmail
	}

	return PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		TextSnippet: Snippet(post.Text),
		Points:      post.Points,
		CreatedAt:   post.CreatedAt,
		Creator: CreatorResponse{
			ID:       post.CreatorID,
			Username: post.CreatorUsername,
			Email:    email,
		},
	}
}

// Snippet returns the leading preview of a post body, cut on rune
// boundaries so multi-byte text never splits mid-character.
func Snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetLength {
		return text
	}
	return string(runes[:snippetLength])
}
