package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"

	"github.com/litboard/api/internal/cache"
	"github.com/litboard/api/internal/types"
)

const keyPrefix = "sess:"

var (
	// ErrInvalidSession is returned when the cookie value cannot be verified.
	ErrInvalidSession = errors.New("sessions: invalid session token")
	// ErrSessionNotFound is returned when the session has expired or was destroyed.
	ErrSessionNotFound = errors.New("sessions: session not found")
)

// Store manages server-side sessions in Redis. The browser only ever sees
// a signed token wrapping an opaque session id, so session data can be
// revoked server-side at any time.
type Store struct {
	cache  *cache.Client
	secret []byte
	ttl    time.Duration
}

// NewStore creates a session store backed by the given cache client.
func NewStore(cacheClient *cache.Client, secret string, ttl time.Duration) *Store {
	return &Store{
		cache:  cacheClient,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create persists a new session for the user and returns the signed cookie value.
func (s *Store) Create(ctx context.Context, user types.UserContext) (string, error) {
	sid, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session payload: %w", err)
	}

	if err := s.cache.Set(ctx, keyPrefix+sid.String(), payload, s.ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid.String(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// Get resolves a cookie value back to the session's user context.
func (s *Store) Get(ctx context.Context, cookieValue string) (*types.UserContext, error) {
	sid, err := s.parseSessionID(cookieValue)
	if err != nil {
		return nil, err
	}

	payload, err := s.cache.Get(ctx, keyPrefix+sid)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var user types.UserContext
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session payload: %w", err)
	}

	return &user, nil
}

// Destroy removes the session so the cookie can no longer be used.
// Destroying an unknown or already-expired session is not an error.
func (s *Store) Destroy(ctx context.Context, cookieValue string) error {
	sid, err := s.parseSessionID(cookieValue)
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, keyPrefix+sid)
}

func (s *Store) parseSessionID(cookieValue string) (string, error) {
	token, err := jwt.Parse(cookieValue, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSession
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrInvalidSession
	}

	return sid, nil
}
