// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	"github.com/litboard/api/votes/models"
)

// VoteRepository defines the interface for vote data operations
type VoteRepository interface {
	// Upsert records or replaces a user's vote on a post.
	// Returns (created, previousValue, err): created=true means a new row
	// was inserted and previousValue is 0; created=false means an existing
	// vote was replaced and previousValue carries its old value. A vote on
	// a missing post reports ErrPostNotFound.
	Upsert(ctx context.Context, vote *models.Vote) (bool, int, error)

	// FindByUserAndPost retrieves a user's vote on a specific post.
	// Returns ErrVoteNotFound when the user has not voted on the post.
	FindByUserAndPost(ctx context.Context, userID, postID int64) (*models.Vote, error)
}
