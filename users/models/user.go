// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import "time"

// User represents a registered account as stored in the database.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// UserProfile is the safe, outward-facing view of a user.
type UserProfile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Profile converts a stored user to its outward-facing view.
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// FieldError ties a validation or constraint failure to the input field
// that caused it. These travel in the response body as data, not as a
// transport-level error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// UserResponse is the union result of account operations: either field
// errors or a user, never both.
type UserResponse struct {
	Errors []FieldError `json:"errors,omitempty"`
	User   *UserProfile `json:"user,omitempty"`
}

// ErrorsResponse builds a UserResponse carrying only field errors.
func ErrorsResponse(errs ...FieldError) *UserResponse {
	return &UserResponse{Errors: errs}
}

// RegisterRequest represents the payload for account registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the payload for login. UsernameOrEmail is
// treated as an email when it contains an "@".
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// ForgotPasswordRequest starts the email-based password reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ChangePasswordRequest completes the password reset flow.
type ChangePasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}
