// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Feed pagination bounds.
const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Cursor marks a position in the (created_at, id) DESC feed ordering.
// CreatedAt is unix microseconds, matching the precision timestamptz
// columns are stored at, so the cursor compares exactly against the rows
// it was built from; ID breaks ties between posts sharing a timestamp.
type Cursor struct {
	CreatedAt int64 `json:"c"`
	ID        int64 `json:"i"`
}

// CursorFromPost builds the cursor pointing at a post, i.e. the position
// a client resumes from after consuming that post.
func CursorFromPost(post *Post) *Cursor {
	return &Cursor{
		CreatedAt: post.CreatedAt.UnixMicro(),
		ID:        post.ID,
	}
}

// Time returns the cursor's timestamp component.
func (c *Cursor) Time() time.Time {
	return time.UnixMicro(c.CreatedAt)
}

// EncodeCursor encodes a cursor into an opaque base64 string.
func EncodeCursor(c *Cursor) (string, error) {
	if c == nil {
		return "", nil
	}

	jsonData, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}

	return base64.URLEncoding.EncodeToString(jsonData), nil
}

// DecodeCursor decodes a cursor string. A bare unix-millisecond integer is
// accepted for clients that only kept a timestamp; it decodes with a zero
// id, which resumes strictly before that timestamp.
func DecodeCursor(cursor string) (*Cursor, error) {
	if cursor == "" {
		return nil, nil
	}

	if millis, err := strconv.ParseInt(cursor, 10, 64); err == nil {
		if millis < 0 {
			return nil, fmt.Errorf("invalid cursor values")
		}
		return &Cursor{CreatedAt: millis * 1000}, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cursor: %w", err)
	}

	var c Cursor
	if err := json.Unmarshal(decoded, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cursor: %w", err)
	}
	if c.CreatedAt < 0 || c.ID < 0 {
		return nil, fmt.Errorf("invalid cursor values")
	}

	return &c, nil
}

// ValidateLimit validates and normalizes the limit value
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
