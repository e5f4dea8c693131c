package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents an authenticated principal returned to handlers. The
// password hash never leaves the repository layer.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrInvalidCredentials is returned when username/password is wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService wraps the user repository with password hashing.
type AuthService struct {
	users UserRepository
}

func NewAuthService(users UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a user with a bcrypt-hashed password. The caller is
// expected to have validated username and password shape already; Register
// enforces username uniqueness.
func (s *AuthService) Register(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)

	if existing, err := s.users.FindByUsername(ctx, username); err == nil && existing != nil {
		return User{}, ErrDuplicateUsername
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	// The repository maps unique violations too, closing the check-then-create race.
	u, err := s.users.Create(ctx, username, string(hash))
	if err != nil {
		return User{}, err
	}
	return User{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}, nil
}

// Authenticate verifies username/password against the stored hash. The store
// is never mutated; unknown users and wrong passwords are indistinguishable to
// the caller.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	u, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil || u == nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return User{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}, nil
}
