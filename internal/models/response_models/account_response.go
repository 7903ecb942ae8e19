package response_models

import (
	"time"

	"swasthsetu/internal/models/db_models"
)

type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

func NewUserResponse(u *db_models.User) UserResponse {
	return UserResponse{
		ID:         u.ID.String(),
		Email:      u.Email,
		Username:   u.Username,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
	}
}
