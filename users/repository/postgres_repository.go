// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/litboard/api/internal/database/postgres"
	"github.com/litboard/api/users/models"
	usererrors "github.com/litboard/api/users/errors"
)

// pqUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pqUniqueViolation = "23505"

// postgresRepository implements UserRepository using raw SQL queries
type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresRepository creates a new PostgreSQL repository for users
func NewPostgresRepository(client *postgres.Client) UserRepository {
	return &postgresRepository{client: client}
}

// getExecutor returns either the transaction from context or the DB connection
func (r *postgresRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if txVal := ctx.Value("tx"); txVal != nil {
		if tx, ok := txVal.(*sqlx.Tx); ok {
			return tx
		}
	}
	return r.client.DB()
}

// Create inserts a new user
func (r *postgresRepository) Create(ctx context.Context, user *models.User) error {
	executor := r.getExecutor(ctx)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = user.CreatedAt

	query := `
		INSERT INTO users (username, email, password_hash, created_at, updated_at)
		VALUES (:username, :email, :password_hash, :created_at, :updated_at)
		RETURNING id`

	insertData := struct {
		Username     string    `db:"username"`
		Email        string    `db:"email"`
		PasswordHash string    `db:"password_hash"`
		CreatedAt    time.Time `db:"created_at"`
		UpdatedAt    time.Time `db:"updated_at"`
	}{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	rows, err := sqlx.NamedQueryContext(ctx, executor, query, insertData)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return usererrors.ErrDuplicateUser
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&user.ID); err != nil {
			return fmt.Errorf("failed to scan user id: %w", err)
		}
	}

	return rows.Err()
}

// FindByID retrieves a user by id
func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1`

	return r.findOne(ctx, query, id)
}

// FindByUsername retrieves a user by exact username
func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1`

	return r.findOne(ctx, query, username)
}

// FindByEmail retrieves a user by email
func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1`

	return r.findOne(ctx, query, email)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	executor := r.getExecutor(ctx)

	var user models.User
	if err := sqlx.GetContext(ctx, executor, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

// UpdatePassword replaces the stored password hash for a user
func (r *postgresRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	executor := r.getExecutor(ctx)

	query := `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2`

	result, err := executor.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return usererrors.ErrUserNotFound
	}

	return nil
}
