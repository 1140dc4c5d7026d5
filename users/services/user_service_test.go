// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/litboard/api/internal/cache"
	"github.com/litboard/api/internal/testutil"
	usererrors "github.com/litboard/api/users/errors"
	"github.com/litboard/api/users/models"
)

func newTestService(t *testing.T) (*UserService, *MockUserRepository, *miniredis.Miniredis, *testutil.FakeEmailSender) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	repo := new(MockUserRepository)
	sender := testutil.NewFakeEmailSender()
	svc := NewUserService(repo, cache.NewWithClient(rdb), sender, "noreply@litboard.dev", "http://localhost:3000", 72*time.Hour)

	return svc, repo, mr, sender
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegister_Success(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*models.User)
			user.ID = 1
		}).
		Return(nil)

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "Alice",
		Email:    "Alice@Example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.Empty(t, resp.Errors)
	require.NotNil(t, resp.User)

	assert.Equal(t, int64(1), resp.User.ID)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	repo.AssertExpectations(t)
}

func TestRegister_InvalidInput_SkipsRepository(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "ab",
		Email:    "not-an-email",
		Password: "x",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.User)
	assert.NotEmpty(t, resp.Errors)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_Duplicate_FieldErrorsOnBothFields(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	repo.On("Create", mock.Anything, mock.Anything).Return(usererrors.ErrDuplicateUser)

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "username", resp.Errors[0].Field)
	assert.Equal(t, "email", resp.Errors[1].Field)
	assert.Equal(t, resp.Errors[0].Message, resp.Errors[1].Message)
	assert.Nil(t, resp.User)
}

func TestAuthenticate_ByUsername(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	stored := &models.User{ID: 5, Username: "alice", Email: "alice@example.com", PasswordHash: hashOf(t, "hunter22")}
	repo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)

	resp, err := svc.Authenticate(context.Background(), &models.LoginRequest{
		UsernameOrEmail: "Alice",
		Password:        "hunter22",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, int64(5), resp.User.ID)
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestAuthenticate_ByEmail(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	stored := &models.User{ID: 5, Username: "alice", Email: "alice@example.com", PasswordHash: hashOf(t, "hunter22")}
	repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(stored, nil)

	resp, err := svc.Authenticate(context.Background(), &models.LoginRequest{
		UsernameOrEmail: "alice@example.com",
		Password:        "hunter22",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	repo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	stored := &models.User{ID: 5, Username: "alice", PasswordHash: hashOf(t, "hunter22")}
	repo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)

	resp, err := svc.Authenticate(context.Background(), &models.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "wrong",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.User)
	require.Len(t, resp.Errors, 2)
	// Unknown user and wrong password are indistinguishable.
	assert.Equal(t, resp.Errors[0].Message, resp.Errors[1].Message)
}

func TestAuthenticate_UnknownUser_SameErrorsAsWrongPassword(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, usererrors.ErrUserNotFound)

	resp, err := svc.Authenticate(context.Background(), &models.LoginRequest{
		UsernameOrEmail: "ghost",
		Password:        "whatever",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.User)
	assert.Len(t, resp.Errors, 2)
}

func TestForgotPassword_UnknownEmail_NoTokenNoEmail(t *testing.T) {
	svc, repo, mr, sender := newTestService(t)

	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, usererrors.ErrUserNotFound)

	err := svc.ForgotPassword(context.Background(), "ghost@example.com")
	require.NoError(t, err)

	assert.Empty(t, mr.Keys())
	assert.Nil(t, sender.LastSent())
}

func TestForgotPassword_StoresTokenAndSendsLink(t *testing.T) {
	svc, repo, mr, sender := newTestService(t)

	stored := &models.User{ID: 9, Username: "alice", Email: "alice@example.com"}
	repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(stored, nil)

	err := svc.ForgotPassword(context.Background(), "alice@example.com")
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	require.True(t, strings.HasPrefix(keys[0], resetTokenPrefix))

	value, err := mr.Get(keys[0])
	require.NoError(t, err)
	assert.Equal(t, "9", value)

	ttl := mr.TTL(keys[0])
	assert.Equal(t, 72*time.Hour, ttl)

	msg := sender.LastSent()
	require.NotNil(t, msg)
	assert.Equal(t, []string{"alice@example.com"}, msg.To)
	token := strings.TrimPrefix(keys[0], resetTokenPrefix)
	assert.Contains(t, msg.Body, "http://localhost:3000/change-password/"+token)
}

func TestResetPassword_HappyPath(t *testing.T) {
	svc, repo, mr, _ := newTestService(t)

	require.NoError(t, mr.Set(resetTokenPrefix+"tok-1", "9"))

	stored := &models.User{ID: 9, Username: "alice", Email: "alice@example.com"}
	repo.On("FindByID", mock.Anything, int64(9)).Return(stored, nil)

	var newHash string
	repo.On("UpdatePassword", mock.Anything, int64(9), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { newHash = args.String(2) }).
		Return(nil)

	resp, err := svc.ResetPassword(context.Background(), "tok-1", "correct horse battery")
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, int64(9), resp.User.ID)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("correct horse battery")))

	// Token is single use.
	assert.False(t, mr.Exists(resetTokenPrefix+"tok-1"))
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	resp, err := svc.ResetPassword(context.Background(), "missing", "correct horse battery")
	require.NoError(t, err)
	assert.Nil(t, resp.User)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "token", resp.Errors[0].Field)
	assert.Equal(t, "Token expired.", resp.Errors[0].Message)
}

func TestResetPassword_UserGone(t *testing.T) {
	svc, repo, mr, _ := newTestService(t)

	require.NoError(t, mr.Set(resetTokenPrefix+"tok-2", "404"))
	repo.On("FindByID", mock.Anything, int64(404)).Return(nil, usererrors.ErrUserNotFound)

	resp, err := svc.ResetPassword(context.Background(), "tok-2", "correct horse battery")
	require.NoError(t, err)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "token", resp.Errors[0].Field)
	assert.Equal(t, "This user doesn't exist.", resp.Errors[0].Message)
}

func TestResetPassword_WeakPassword(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	resp, err := svc.ResetPassword(context.Background(), "tok-3", "abc")
	require.NoError(t, err)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "newPassword", resp.Errors[0].Field)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
