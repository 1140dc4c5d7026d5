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

	"github.com/litboard/api/internal/database/postgres"
	posterrors "github.com/litboard/api/posts/errors"
	"github.com/litboard/api/posts/models"
)

// selectColumns is the shared projection for post reads, including the
// creator snapshot from the users JOIN.
const selectColumns = `
	p.id, p.title, p.text, p.points, p.creator_id, p.created_at, p.updated_at,
	u.username AS creator_username, u.email AS creator_email`

// postgresRepository implements PostRepository using raw SQL queries
type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresRepository creates a new PostgreSQL repository for posts
func NewPostgresRepository(client *postgres.Client) PostRepository {
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

// Create inserts a new post
func (r *postgresRepository) Create(ctx context.Context, post *models.Post) error {
	executor := r.getExecutor(ctx)

	// Truncate to the precision timestamptz stores at, so the struct value
	// matches the row and cursors built from either compare identically.
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.CreatedAt = post.CreatedAt.Truncate(time.Microsecond)
	post.UpdatedAt = post.CreatedAt

	query := `
		INSERT INTO posts (title, text, points, creator_id, created_at, updated_at)
		VALUES (:title, :text, :points, :creator_id, :created_at, :updated_at)
		RETURNING id`

	insertData := struct {
		Title     string    `db:"title"`
		Text      string    `db:"text"`
		Points    int64     `db:"points"`
		CreatorID int64     `db:"creator_id"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}{
		Title:     post.Title,
		Text:      post.Text,
		Points:    post.Points,
		CreatorID: post.CreatorID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}

	rows, err := sqlx.NamedQueryContext(ctx, executor, query, insertData)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&post.ID); err != nil {
			return fmt.Errorf("failed to scan post id: %w", err)
		}
	}

	return rows.Err()
}

// FindByID retrieves a post with its creator snapshot
func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	executor := r.getExecutor(ctx)

	query := `
		SELECT ` + selectColumns + `
		FROM posts p
		JOIN users u ON u.id = p.creator_id
		WHERE p.id = $1`

	var post models.Post
	if err := sqlx.GetContext(ctx, executor, &post, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, posterrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	return &post, nil
}

// FindPage retrieves a feed page in (created_at, id) DESC order.
// The cursor comparison uses a row constructor so posts sharing a
// creation timestamp still paginate without overlap or gaps.
func (r *postgresRepository) FindPage(ctx context.Context, limit int, cursor *models.Cursor) ([]models.Post, error) {
	executor := r.getExecutor(ctx)

	query := `
		SELECT ` + selectColumns + `
		FROM posts p
		JOIN users u ON u.id = p.creator_id`

	args := []interface{}{}
	if cursor != nil {
		query += `
		WHERE (p.created_at, p.id) < ($1, $2)`
		args = append(args, cursor.Time(), cursor.ID)
	}

	query += fmt.Sprintf(`
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT %d`, limit)

	posts := []models.Post{}
	if err := sqlx.SelectContext(ctx, executor, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// UpdateTitle replaces a post's title
func (r *postgresRepository) UpdateTitle(ctx context.Context, id int64, title string) error {
	executor := r.getExecutor(ctx)

	query := `
		UPDATE posts
		SET title = $1, updated_at = NOW()
		WHERE id = $2`

	result, err := executor.ExecContext(ctx, query, title, id)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	return r.requireRow(result)
}

// Delete removes a post
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	executor := r.getExecutor(ctx)

	query := `DELETE FROM posts WHERE id = $1`

	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return r.requireRow(result)
}

// IncrementPoints atomically applies a score delta to a post
func (r *postgresRepository) IncrementPoints(ctx context.Context, id int64, delta int) error {
	executor := r.getExecutor(ctx)

	query := `
		UPDATE posts
		SET points = points + $1, updated_at = NOW()
		WHERE id = $2`

	result, err := executor.ExecContext(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("failed to increment points: %w", err)
	}

	return r.requireRow(result)
}

func (r *postgresRepository) requireRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return posterrors.ErrPostNotFound
	}
	return nil
}

// WithTransaction executes a function within a database transaction
func (r *postgresRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	tx, err := r.client.DB().BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Inject transaction into context using shared key so other
	// repositories called inside fn join the same transaction.
	txCtx := context.WithValue(ctx, "tx", tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
