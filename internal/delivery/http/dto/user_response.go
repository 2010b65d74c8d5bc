package dto

import (
	"time"

	"portfolio-hub/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Bio      string    `json:"bio"`
	Role     string    `json:"role"`
	JoinDate time.Time `json:"joinDate"`
}

func FromUser(u user.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Bio:      u.Bio,
		Role:     string(u.Role),
		JoinDate: u.JoinDate,
	}
}

func FromUsers(users []user.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}
