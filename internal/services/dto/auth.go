package dto

import (
	"lexhub_backend/internal/models"
)

type RegisterRequest struct {
	Name     string          `json:"name" binding:"required,min=2"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     models.UserRole `json:"role" binding:"required,oneof=LAWYER CLIENT"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// OAuthCallbackRequest carries the authorization code from the OAuth
// redirect.
type OAuthCallbackRequest struct {
	Code string `json:"code" form:"code" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type AuthResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         *UserDTO `json:"user"`
}

type UserDTO struct {
	ID                 string                    `json:"id"`
	Name               string                    `json:"name"`
	Email              string                    `json:"email"`
	Role               models.UserRole           `json:"role"`
	Status             models.UserStatus         `json:"status"`
	IsActive           bool                      `json:"is_active"`
	SubscriptionPlan   string                    `json:"subscription_plan,omitempty"`
	SubscriptionStatus models.SubscriptionStatus `json:"subscription_status,omitempty"`
	Profile            *models.LawyerProfile     `json:"profile,omitempty"`
}

// NewUserDTO maps the entity into its API shape
func NewUserDTO(user *models.User) *UserDTO {
	return &UserDTO{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		Role:               user.Role,
		Status:             user.Status,
		IsActive:           user.IsActive,
		SubscriptionPlan:   user.SubscriptionPlan,
		SubscriptionStatus: user.SubscriptionStatus,
		Profile:            user.LawyerProfile,
	}
}
