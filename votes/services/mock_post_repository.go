// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	postModels "github.com/litboard/api/posts/models"
	postRepository "github.com/litboard/api/posts/repository"
)

// MockPostRepositoryForVotes is a mock implementation of PostRepository for vote tests
type MockPostRepositoryForVotes struct {
	mock.Mock
}

// Ensure MockPostRepositoryForVotes implements PostRepository
var _ postRepository.PostRepository = (*MockPostRepositoryForVotes)(nil)

// Create mocks the Create method
func (m *MockPostRepositoryForVotes) Create(ctx context.Context, post *postModels.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

// FindByID mocks the FindByID method
func (m *MockPostRepositoryForVotes) FindByID(ctx context.Context, id int64) (*postModels.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*postModels.Post), args.Error(1)
}

// FindPage mocks the FindPage method
func (m *MockPostRepositoryForVotes) FindPage(ctx context.Context, limit int, cursor *postModels.Cursor) ([]postModels.Post, error) {
	args := m.Called(ctx, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]postModels.Post), args.Error(1)
}

// UpdateTitle mocks the UpdateTitle method
func (m *MockPostRepositoryForVotes) UpdateTitle(ctx context.Context, id int64, title string) error {
	args := m.Called(ctx, id, title)
	return args.Error(0)
}

// Delete mocks the Delete method
func (m *MockPostRepositoryForVotes) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// IncrementPoints mocks the IncrementPoints method
func (m *MockPostRepositoryForVotes) IncrementPoints(ctx context.Context, id int64, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

// WithTransaction mocks the WithTransaction method. When the configured
// result is nil it runs fn and surfaces its error, mirroring the rollback
// path of the real implementation.
func (m *MockPostRepositoryForVotes) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
