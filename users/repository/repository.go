// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	"github.com/litboard/api/users/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create inserts a new user and fills in the generated id and
	// timestamps. A username/email uniqueness violation is reported as
	// ErrDuplicateUser.
	Create(ctx context.Context, user *models.User) error

	// FindByID retrieves a user by id. Returns ErrUserNotFound when absent.
	FindByID(ctx context.Context, id int64) (*models.User, error)

	// FindByUsername retrieves a user by exact username.
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByEmail retrieves a user by email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdatePassword replaces the stored password hash for a user.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
