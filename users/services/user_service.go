// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/litboard/api/internal/cache"
	"github.com/litboard/api/internal/pkg/log"
	platformemail "github.com/litboard/api/internal/platform/email"
	usererrors "github.com/litboard/api/users/errors"
	"github.com/litboard/api/users/models"
	"github.com/litboard/api/users/repository"
	"github.com/litboard/api/users/validation"
)

const resetTokenPrefix = "forgot-password:"

// duplicate and credential failures surface on both identity fields so the
// response never reveals which one matched an existing account.
const (
	msgDuplicate      = "Username or email is already in use."
	msgBadCredentials = "Username or password is incorrect."
	msgTokenExpired   = "Token expired."
	msgUserGone       = "This user doesn't exist."
)

// UserService handles account business logic.
type UserService struct {
	repo        repository.UserRepository
	cache       *cache.Client
	emailSender platformemail.Sender
	emailFrom   string
	webDomain   string
	resetTTL    time.Duration
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository, cacheClient *cache.Client, sender platformemail.Sender, emailFrom, webDomain string, resetTTL time.Duration) *UserService {
	return &UserService{
		repo:        repo,
		cache:       cacheClient,
		emailSender: sender,
		emailFrom:   emailFrom,
		webDomain:   webDomain,
		resetTTL:    resetTTL,
	}
}

// Register validates input, hashes the password, and creates the account.
// Validation and uniqueness failures come back as field errors in the
// response; the error return is reserved for infrastructure failures.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	if errs := validation.ValidateRegister(req); len(errs) > 0 {
		return models.ErrorsResponse(errs...), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, usererrors.ErrDuplicateUser) {
			return models.ErrorsResponse(
				models.FieldError{Field: "username", Message: msgDuplicate},
				models.FieldError{Field: "email", Message: msgDuplicate},
			), nil
		}
		return nil, err
	}

	return &models.UserResponse{User: user.Profile()}, nil
}

// Authenticate verifies credentials and returns the matching user.
// The input is treated as an email when it contains an "@".
func (s *UserService) Authenticate(ctx context.Context, req *models.LoginRequest) (*models.UserResponse, error) {
	identifier := strings.ToLower(strings.TrimSpace(req.UsernameOrEmail))

	var user *models.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.repo.FindByEmail(ctx, identifier)
	} else {
		user, err = s.repo.FindByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return badCredentials(), nil
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return badCredentials(), nil
	}

	return &models.UserResponse{User: user.Profile()}, nil
}

// Me returns the profile of the given user id.
func (s *UserService) Me(ctx context.Context, userID int64) (*models.UserProfile, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

// ForgotPassword starts the reset flow. It reports success whether or not
// the email belongs to an account, so the endpoint cannot be used to probe
// for registered addresses. When the account exists a single-use token is
// stored in redis and a reset link is emailed.
func (s *UserService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	key := resetTokenPrefix + token.String()
	value := []byte(strconv.FormatInt(user.ID, 10))
	if err := s.cache.Set(ctx, key, value, s.resetTTL); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/change-password/%s", s.webDomain, token.String())
	msg := platformemail.Message{
		From:    s.emailFrom,
		To:      []string{user.Email},
		Subject: "Reset your password",
		Body:    fmt.Sprintf(`<a href="%s">Reset password</a>`, link),
	}
	if err := s.emailSender.Send(ctx, msg); err != nil {
		// Delivery failures are logged, not surfaced: the endpoint reports
		// the same result either way. The token stays valid, so a retry
		// can still use the same link.
		log.ErrorWithContext(ctx, "Failed to send reset email: %v", err)
	}

	return nil
}

// ResetPassword completes the reset flow: validates the new password,
// resolves the token, rehashes, and burns the token.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) (*models.UserResponse, error) {
	if errs := validation.ValidatePassword("newPassword", newPassword, nil); len(errs) > 0 {
		return models.ErrorsResponse(errs...), nil
	}

	key := resetTokenPrefix + token
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return models.ErrorsResponse(models.FieldError{Field: "token", Message: msgTokenExpired}), nil
		}
		return nil, fmt.Errorf("failed to resolve reset token: %w", err)
	}

	userID, err := strconv.ParseInt(string(value), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed reset token payload: %w", err)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return models.ErrorsResponse(models.FieldError{Field: "token", Message: msgUserGone}), nil
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return nil, err
	}

	// Single use: a consumed token must not reset the password twice.
	if err := s.cache.Delete(ctx, key); err != nil {
		log.WarnWithContext(ctx, "Failed to delete consumed reset token: %v", err)
	}

	return &models.UserResponse{User: user.Profile()}, nil
}

func badCredentials() *models.UserResponse {
	return models.ErrorsResponse(
		models.FieldError{Field: "usernameOrEmail", Message: msgBadCredentials},
		models.FieldError{Field: "password", Message: msgBadCredentials},
	)
}
