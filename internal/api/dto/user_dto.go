package dto

import "github.com/spec-kit/catalog-api/internal/domain"

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MessageResponse carries a single human readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// NewUserListResponse maps a slice of domain users.
func NewUserListResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
