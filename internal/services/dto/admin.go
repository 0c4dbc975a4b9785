package dto

import (
	"lexhub_backend/internal/models"
)

type AdminUpdateUserRequest struct {
	Name     string             `json:"name" binding:"omitempty,min=2"`
	Role     models.UserRole    `json:"role" binding:"omitempty,oneof=ADMIN LAWYER CLIENT"`
	Status   models.UserStatus  `json:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	IsActive *bool              `json:"is_active"`
}

type AdminCreateUserRequest struct {
	Name     string          `json:"name" binding:"required,min=2"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     models.UserRole `json:"role" binding:"required,oneof=ADMIN LAWYER CLIENT"`
}

// DashboardStats summarizes platform state for the admin overview
type DashboardStats struct {
	UsersByRoleAndStatus map[string]int64 `json:"users_by_role_and_status"`
	ProfilesByStatus     map[string]int64 `json:"profiles_by_status"`
	PendingReview        int64            `json:"pending_review"`
}
