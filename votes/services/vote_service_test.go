// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	voteerrors "github.com/litboard/api/votes/errors"
	"github.com/litboard/api/votes/models"
)

func TestVoteService_Vote(t *testing.T) {
	ctx := context.Background()
	postID := int64(10)
	userID := int64(3)

	matchVote := func(value int) interface{} {
		return mock.MatchedBy(func(vote *models.Vote) bool {
			return vote.PostID == postID && vote.UserID == userID && vote.Value == value
		})
	}

	t.Run("New Vote - Up", func(t *testing.T) {
		mockVoteRepo := new(MockVoteRepository)
		mockPostRepo := new(MockPostRepositoryForVotes)
		service := NewVoteService(mockVoteRepo, mockPostRepo)

		mockPostRepo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		mockVoteRepo.On("Upsert", mock.Anything, matchVote(1)).Return(true, 0, nil)
		mockPostRepo.On("IncrementPoints", mock.Anything, postID, 1).Return(nil)

		voted, err := service.Vote(ctx, postID, userID, 1)

		assert.NoError(t, err)
		assert.True(t, voted)
		mockVoteRepo.AssertExpectations(t)
		mockPostRepo.AssertExpectations(t)
	})

	t.Run("New Vote - Down", func(t *testing.T) {
		mockVoteRepo := new(MockVoteRepository)
		mockPostRepo := new(MockPostRepositoryForVotes)
		service := NewVoteService(mockVoteRepo, mockPostRepo)

		mockPostRepo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		mockVoteRepo.On("Upsert", mock.Anything, matchVote(-1)).Return(true, 0, nil)
		mockPostRepo.On("IncrementPoints", mock.Anything, postID, -1).Return(nil)

		voted, err := service.Vote(ctx, postID, userID, -1)

		assert.NoError(t, err)
		assert.True(t, voted)
		mockVoteRepo.AssertExpectations(t)
		mockPostRepo.AssertExpectations(t)
	})

	t.Run("Same Vote Again - No Score Change", func(t *testing.T) {
		mockVoteRepo := new(MockVoteRepository)
		mockPostRepo := new(MockPostRepositoryForVotes)
		service := NewVoteService(mockVoteRepo, mockPostRepo)

		mockPostRepo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		// created=false, previous value identical: delta must be 0.
		mockVoteRepo.On("Upsert", mock.Anything, matchVote(1)).Return(false, 1, nil)

		voted, err := service.Vote(ctx, postID, userID, 1)

		assert.NoError(t, err)
		assert.True(t, voted)
		mockPostRepo.AssertNotCalled(t, "IncrementPoints", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Swing Up To Down - Delta Minus Two", func(t *testing.T) {
		mockVoteRepo := new(MockVoteRepository)
		mockPostRepo := new(MockPostRepositoryForVotes)
		service := NewVoteService(mockVoteRepo, mockPostRepo)

		mockPostRepo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		mockVoteRepo.On("Upsert", mock.Anything, matchVote(-1)).Return(false, 1, nil)
		mockPostRepo.On("IncrementPoints", mock.Anything, postID, -2).Return(nil)

		voted, err := service.Vote(ctx, postID, userID, -1)

		assert.NoError(t, err)
		assert.True(t, voted)
		mockVoteRepo.AssertExpectations(t)
		mockPostRepo.AssertExpectations(t)
	})

	t.Run("Swing Down To Up - Delta Plus Two", func(t *testing.T) {
		mockVoteRepo := new(MockVoteRepository)
		mockPostRepo := new(MockPostRepositoryForVotes)
		service := NewVoteService(mockVoteRepo, mockPostRepo)

		mockPostRepo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		mockVoteRepo.On("Upsert", mock.Anything, matchVote(1)).Return(false, -1, nil)
		mockPostRepo.On("IncrementPoints", mock.Anything, postID, 2).Return(nil)

		voted, err := service.Vote(ctx, postID, userID, 1)

		assert.NoError(t, err)
		assert.True(t, voted)
		mockVoteRepo.AssertExpectations(t)
		mockPostRepo.AssertExpectations(t)
	})

	t.Run("Raw Value Normalized To Up", func(t *testing.T) {
		mockVoteRepo := new(MockVoteRepository)
		mockPostRepo := new(MockPostRepositoryForVotes)
		service := NewVoteService(mockVoteRepo, mockPostRepo)

		mockPostRepo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		mockVoteRepo.On("Upsert", mock.Anything, matchVote(1)).Return(true, 0, nil)
		mockPostRepo.On("IncrementPoints", mock.Anything, postID, 1).Return(nil)

		voted, err := service.Vote(ctx, postID, userID, 7)

		assert.NoError(t, err)
		assert.True(t, voted)
		mockVoteRepo.AssertExpectations(t)
	})

	t.Run("Score Update Failure Rolls Back", func(t *testing.T) {
		mockVoteRepo := new(MockVoteRepository)
		mockPostRepo := new(MockPostRepositoryForVotes)
		service := NewVoteService(mockVoteRepo, mockPostRepo)

		mockPostRepo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		mockVoteRepo.On("Upsert", mock.Anything, matchVote(1)).Return(true, 0, nil)
		mockPostRepo.On("IncrementPoints", mock.Anything, postID, 1).Return(errors.New("connection reset"))

		voted, err := service.Vote(ctx, postID, userID, 1)

		assert.Error(t, err)
		assert.False(t, voted)
	})

	t.Run("Missing Post Reports False", func(t *testing.T) {
		mockVoteRepo := new(MockVoteRepository)
		mockPostRepo := new(MockPostRepositoryForVotes)
		service := NewVoteService(mockVoteRepo, mockPostRepo)

		mockPostRepo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		mockVoteRepo.On("Upsert", mock.Anything, matchVote(1)).Return(false, 0, voteerrors.ErrPostNotFound)

		voted, err := service.Vote(ctx, postID, userID, 1)

		assert.ErrorIs(t, err, voteerrors.ErrPostNotFound)
		assert.False(t, voted)
		mockPostRepo.AssertNotCalled(t, "IncrementPoints", mock.Anything, mock.Anything, mock.Anything)
	})
}
