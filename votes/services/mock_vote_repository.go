// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/litboard/api/votes/models"
	voteRepository "github.com/litboard/api/votes/repository"
)

// MockVoteRepository is a mock implementation of VoteRepository for testing
type MockVoteRepository struct {
	mock.Mock
}

// Ensure MockVoteRepository implements VoteRepository
var _ voteRepository.VoteRepository = (*MockVoteRepository)(nil)

// Upsert mocks the Upsert method
func (m *MockVoteRepository) Upsert(ctx context.Context, vote *models.Vote) (bool, int, error) {
	args := m.Called(ctx, vote)
	return args.Bool(0), args.Int(1), args.Error(2)
}

// FindByUserAndPost mocks the FindByUserAndPost method
func (m *MockVoteRepository) FindByUserAndPost(ctx context.Context, userID, postID int64) (*models.Vote, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vote), args.Error(1)
}
