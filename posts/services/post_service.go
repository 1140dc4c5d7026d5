// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	posterrors "github.com/litboard/api/posts/errors"
	"github.com/litboard/api/posts/models"
	"github.com/litboard/api/posts/repository"
)

// PostService handles post business logic.
type PostService struct {
	repo repository.PostRepository
}

// NewPostService creates a new post service.
func NewPostService(repo repository.PostRepository) *PostService {
	return &PostService{repo: repo}
}

// Create validates and stores a new post, returning it with the creator
// snapshot attached.
func (s *PostService) Create(ctx context.Context, creatorID int64, req *models.CreatePostRequest) (*models.Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", posterrors.ErrInvalidPostData)
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: text is required", posterrors.ErrInvalidPostData)
	}

	post := &models.Post{
		Title:     req.Title,
		Text:      req.Text,
		CreatorID: creatorID,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Re-read through the JOIN so the response carries the creator snapshot.
	return s.repo.FindByID(ctx, post.ID)
}

// GetByID retrieves a single post.
func (s *PostService) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns one feed page plus whether more pages exist. The limit is
// clamped before use; the cursor string may be empty, an opaque encoded
// cursor, or a bare unix-millisecond timestamp.
func (s *PostService) List(ctx context.Context, limit int, cursorStr string) ([]models.Post, bool, error) {
	limit = models.ValidateLimit(limit)

	cursor, err := models.DecodeCursor(cursorStr)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", posterrors.ErrInvalidCursor, err)
	}

	// Fetch one extra row purely to learn whether another page exists.
	posts, err := s.repo.FindPage(ctx, limit+1, cursor)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(posts) == limit+1
	if hasMore {
		posts = posts[:limit]
	}

	return posts, hasMore, nil
}

// UpdateTitle changes a post's title when one is provided. A nil title
// leaves the post untouched. A missing post yields a nil result, not an
// error, matching the read semantics of GetByID.
func (s *PostService) UpdateTitle(ctx context.Context, id int64, title *string) (*models.Post, error) {
	if title != nil {
		if strings.TrimSpace(*title) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", posterrors.ErrInvalidPostData)
		}
		if err := s.repo.UpdateTitle(ctx, id, *title); err != nil {
			if errors.Is(err, posterrors.ErrPostNotFound) {
				return nil, nil
			}
			return nil, err
		}
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, posterrors.ErrPostNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

// Delete removes a post. Deleting a missing post reports false rather
// than an error.
func (s *PostService) Delete(ctx context.Context, id int64) (bool, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, posterrors.ErrPostNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
