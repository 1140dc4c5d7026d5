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
	voteerrors "github.com/litboard/api/votes/errors"
	"github.com/litboard/api/votes/models"
)

// pqForeignKeyViolation is the PostgreSQL error code for FK violations,
// raised when a vote targets a post that does not exist.
const pqForeignKeyViolation = "23503"

// postgresVoteRepository implements VoteRepository using raw SQL queries
type postgresVoteRepository struct {
	client *postgres.Client
}

// NewPostgresVoteRepository creates a new PostgreSQL repository for votes
func NewPostgresVoteRepository(client *postgres.Client) VoteRepository {
	return &postgresVoteRepository{client: client}
}

// getExecutor returns either the transaction from context or the DB connection
func (r *postgresVoteRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if txVal := ctx.Value("tx"); txVal != nil {
		if tx, ok := txVal.(*sqlx.Tx); ok {
			return tx
		}
	}
	return r.client.DB()
}

// FindByUserAndPost retrieves a user's vote on a specific post
func (r *postgresVoteRepository) FindByUserAndPost(ctx context.Context, userID, postID int64) (*models.Vote, error) {
	return r.findVote(ctx, userID, postID, false)
}

// findVote reads a vote row, optionally taking a row lock. Upsert locks
// the row so the previous value it reports still holds when the caller
// applies the score delta in the same transaction.
func (r *postgresVoteRepository) findVote(ctx context.Context, userID, postID int64, lock bool) (*models.Vote, error) {
	query := `
		SELECT id, post_id, user_id, value, created_at, updated_at
		FROM votes
		WHERE post_id = $1 AND user_id = $2`
	if lock {
		query += `
		FOR UPDATE`
	}

	var vote models.Vote
	if err := sqlx.GetContext(ctx, r.getExecutor(ctx), &vote, query, postID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, voteerrors.ErrVoteNotFound
		}
		return nil, fmt.Errorf("failed to find vote: %w", err)
	}

	return &vote, nil
}

// Upsert inserts a new vote or replaces an existing one. The existing row
// is read FOR UPDATE so a concurrent transaction cannot change the value
// between the read and the replace; two same-user votes serialize on the
// row lock and each sees the other's committed value.
func (r *postgresVoteRepository) Upsert(ctx context.Context, vote *models.Vote) (bool, int, error) {
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now()
	}
	vote.UpdatedAt = vote.CreatedAt

	existing, err := r.findVote(ctx, vote.UserID, vote.PostID, true)
	if err == nil {
		if err := r.replaceValue(ctx, vote); err != nil {
			return false, 0, err
		}
		return false, existing.Value, nil
	}
	if !errors.Is(err, voteerrors.ErrVoteNotFound) {
		return false, 0, fmt.Errorf("failed to check existing vote: %w", err)
	}

	// ON CONFLICT DO NOTHING keeps a concurrent first vote on the same
	// (user_id, post_id) key from aborting the transaction; losing that
	// race falls through to the locked update path below.
	query := `
		INSERT INTO votes (post_id, user_id, value, created_at, updated_at)
		VALUES (:post_id, :user_id, :value, :created_at, :updated_at)
		ON CONFLICT (user_id, post_id) DO NOTHING
		RETURNING id`

	insertData := struct {
		PostID    int64     `db:"post_id"`
		UserID    int64     `db:"user_id"`
		Value     int       `db:"value"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}{
		PostID:    vote.PostID,
		UserID:    vote.UserID,
		Value:     vote.Value,
		CreatedAt: vote.CreatedAt,
		UpdatedAt: vote.UpdatedAt,
	}

	rows, err := sqlx.NamedQueryContext(ctx, r.getExecutor(ctx), query, insertData)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqForeignKeyViolation {
			return false, 0, voteerrors.ErrPostNotFound
		}
		return false, 0, fmt.Errorf("failed to insert vote: %w", err)
	}

	inserted := rows.Next()
	if inserted {
		if err := rows.Scan(&vote.ID); err != nil {
			rows.Close()
			return false, 0, fmt.Errorf("failed to scan vote id: %w", err)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return false, 0, fmt.Errorf("failed to insert vote: %w", err)
	}
	if inserted {
		return true, 0, nil
	}

	// A concurrent transaction inserted the row first. Lock it and
	// replace the value like any other re-vote.
	existing, err = r.findVote(ctx, vote.UserID, vote.PostID, true)
	if err != nil {
		return false, 0, fmt.Errorf("failed to re-read vote after insert conflict: %w", err)
	}
	if err := r.replaceValue(ctx, vote); err != nil {
		return false, 0, err
	}
	return false, existing.Value, nil
}

func (r *postgresVoteRepository) replaceValue(ctx context.Context, vote *models.Vote) error {
	query := `
		UPDATE votes
		SET value = :value, updated_at = NOW()
		WHERE post_id = :post_id AND user_id = :user_id`

	updateData := struct {
		PostID int64 `db:"post_id"`
		UserID int64 `db:"user_id"`
		Value  int   `db:"value"`
	}{
		PostID: vote.PostID,
		UserID: vote.UserID,
		Value:  vote.Value,
	}

	result, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), query, updateData)
	if err != nil {
		return fmt.Errorf("failed to update vote: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// The row is locked by this transaction, so it cannot vanish.
		return voteerrors.ErrVoteNotFound
	}

	return nil
}
