// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import "time"

// Vote values as stored in the ledger.
const (
	ValueUp   = 1
	ValueDown = -1
)

// Vote represents one user's standing vote on one post. The unique
// (user_id, post_id) key guarantees at most one row per pair.
type Vote struct {
	ID        int64     `db:"id"`
	PostID    int64     `db:"post_id"`
	UserID    int64     `db:"user_id"`
	Value     int       `db:"value"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NormalizeValue collapses raw client input to the two ledger values:
// -1 stays a downvote, every other value counts as an upvote.
func NormalizeValue(raw int) int {
	if raw == ValueDown {
		return ValueDown
	}
	return ValueUp
}
