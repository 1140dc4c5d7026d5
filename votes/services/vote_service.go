// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"

	"github.com/litboard/api/internal/pkg/log"
	"github.com/litboard/api/posts/repository"
	"github.com/litboard/api/votes/models"
	voteRepository "github.com/litboard/api/votes/repository"
)

// VoteService defines the interface for vote operations
type VoteService interface {
	// Vote records a user's vote on a post and applies the matching score
	// delta atomically. The bool result reports whether the vote took
	// effect; any failure rolls back and reports false.
	Vote(ctx context.Context, postID, userID int64, rawValue int) (bool, error)
}

// voteService implements the VoteService interface
type voteService struct {
	voteRepo voteRepository.VoteRepository
	postRepo repository.PostRepository
}

// NewVoteService creates a new instance of the vote service
func NewVoteService(voteRepo voteRepository.VoteRepository, postRepo repository.PostRepository) VoteService {
	return &voteService{
		voteRepo: voteRepo,
		postRepo: postRepo,
	}
}

// Vote upserts the ledger row and adjusts posts.points by the delta
// between the new and previous vote in one transaction:
//   - no prior vote: delta = value
//   - same value again: delta = 0, the whole operation is a no-op
//   - opposite value: delta = 2*value (remove old, apply new)
func (s *voteService) Vote(ctx context.Context, postID, userID int64, rawValue int) (bool, error) {
	value := models.NormalizeValue(rawValue)

	err := s.postRepo.WithTransaction(ctx, func(txCtx context.Context) error {
		vote := &models.Vote{
			PostID: postID,
			UserID: userID,
			Value:  value,
		}

		created, previousValue, err := s.voteRepo.Upsert(txCtx, vote)
		if err != nil {
			return fmt.Errorf("failed to upsert vote: %w", err)
		}

		delta := value
		if !created {
			delta = value - previousValue
		}

		if delta != 0 {
			if err := s.postRepo.IncrementPoints(txCtx, postID, delta); err != nil {
				return fmt.Errorf("failed to apply score delta: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		// The transaction rolled back; the ledger and the score are still
		// consistent, the vote just did not happen.
		log.WarnWithContext(ctx, "Vote on post %d by user %d failed: %v", postID, userID, err)
		return false, err
	}

	return true, nil
}
