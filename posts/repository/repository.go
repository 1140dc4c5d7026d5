// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	"github.com/litboard/api/posts/models"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	// Create inserts a new post and fills in the generated id and timestamps.
	Create(ctx context.Context, post *models.Post) error

	// FindByID retrieves a post with its creator snapshot.
	// Returns ErrPostNotFound when absent.
	FindByID(ctx context.Context, id int64) (*models.Post, error)

	// FindPage retrieves up to limit posts in (created_at, id) DESC order,
	// strictly after the cursor position when one is given. Callers fetch
	// limit+1 rows to detect whether more pages exist.
	FindPage(ctx context.Context, limit int, cursor *models.Cursor) ([]models.Post, error)

	// UpdateTitle replaces a post's title. Returns ErrPostNotFound when absent.
	UpdateTitle(ctx context.Context, id int64, title string) error

	// Delete removes a post. Returns ErrPostNotFound when absent.
	Delete(ctx context.Context, id int64) error

	// IncrementPoints atomically applies a score delta to a post.
	// Returns ErrPostNotFound when the post does not exist.
	IncrementPoints(ctx context.Context, id int64, delta int) error

	// WithTransaction executes fn within a database transaction. The
	// transaction handle travels in the context so repository calls made
	// inside fn join it.
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
