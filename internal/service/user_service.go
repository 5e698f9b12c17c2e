package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/catalog-api/internal/domain"
	apperrors "github.com/spec-kit/catalog-api/pkg/util/errorutil"
)

// Reserved IDs that make the simulation endpoint fail with a fixed error kind.
const (
	InvalidUserID     = 999
	UnavailableUserID = 998
)

// ErrUserNotFound is returned when no user has the requested ID.
var ErrUserNotFound = errors.New("user not found")

// UserService serves user lookups from a fixed in-memory set.
type UserService struct {
	users []domain.User
	byID  map[int]domain.User
}

// NewUserService constructs the service over users. A nil slice uses DefaultUsers.
func NewUserService(users []domain.User) *UserService {
	if users == nil {
		users = DefaultUsers()
	}
	byID := make(map[int]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &UserService{users: users, byID: byID}
}

// DefaultUsers returns the seed data served in development.
func DefaultUsers() []domain.User {
	return []domain.User{
		{ID: 1, Name: "John Doe", Email: "john@example.com"},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com"},
		{ID: 3, Name: "Bob Johnson", Email: "bob@example.com"},
	}
}

// GetUsers lists all users.
func (s *UserService) GetUsers(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// GetUserByID fetches a single user.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// SimulateFailure processes id, failing for the reserved IDs.
func (s *UserService) SimulateFailure(ctx context.Context, id int) (string, error) {
	switch id {
	case InvalidUserID:
		return "", apperrors.NewInvalidInput("Invalid user data provided", map[string]any{"user_id": id})
	case UnavailableUserID:
		return "", apperrors.NewUnavailable("User service temporarily unavailable")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("User %d processed successfully", id), nil
}
