// Package auth registers users, issues bearer tokens and tracks the login
// sessions behind them.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/suPer8Hu/legal-assistant/internal/common"
	"github.com/suPer8Hu/legal-assistant/internal/models"
)

var (
	ErrInvalidCredential = errors.New("auth: invalid username or password")
	ErrDuplicateUser     = errors.New("auth: username already exists")
	ErrInvalidInput      = errors.New("auth: invalid username or password format")
)

const (
	MinPasswordLen = 6
	// MaxPasswordLen is bcrypt's input limit.
	MaxPasswordLen = 72
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_.-]{3,50}$`)

type Service struct {
	users    UserStore
	sessions SessionStore
	secret   string
	ttl      time.Duration
}

func NewService(users UserStore, sessions SessionStore, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{users: users, sessions: sessions, secret: secret, ttl: ttl}
}

// Session is what a successful login hands back to the client.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validPassword(password string) bool {
	return len(password) >= MinPasswordLen && len(password) <= MaxPasswordLen
}

func validate(username, password string) error {
	if !usernamePattern.MatchString(username) || !validPassword(password) {
		return ErrInvalidInput
	}
	return nil
}

func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = NormalizeUsername(username)
	if err := validate(username, password); err != nil {
		return nil, err
	}

	switch _, err := s.users.GetUserByUsername(ctx, username); {
	case err == nil:
		return nil, ErrDuplicateUser
	case !errors.Is(err, common.ErrNotFound):
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}
	id, err := common.NewULID()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &models.User{ID: id, Username: username, PasswordHash: hash, CreatedAt: now, UpdatedAt: now}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the password, signs a token and records its session.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	u, err := s.users.GetUserByUsername(ctx, NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}
	if !CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredential
	}

	token, claims, err := SignJWT(u.ID, s.secret, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("auth: sign token: %w", err)
	}
	if err := s.sessions.SaveSession(ctx, claims.ID, u.ID, s.ttl); err != nil {
		return nil, fmt.Errorf("auth: save session: %w", err)
	}
	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: u}, nil
}

// Authenticate verifies the token signature and that its session has not
// been revoked.
func (s *Service) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := ParseJWT(token, s.secret)
	if err != nil {
		return nil, err
	}
	uid, ok, err := s.sessions.LookupSession(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: lookup session: %w", err)
	}
	if !ok || uid != claims.UserID {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil {
		return ErrInvalidToken
	}
	return s.sessions.DeleteSession(ctx, claims.ID)
}

func (s *Service) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if !validPassword(newPassword) {
		return ErrInvalidInput
	}
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !CheckPassword(u.PasswordHash, oldPassword) {
		return ErrInvalidCredential
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	return s.users.UpdatePasswordHash(ctx, userID, hash)
}
