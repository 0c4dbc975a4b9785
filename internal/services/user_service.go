package services

import (
	"context"
	"errors"

	"lexhub_backend/internal/auth"
	"lexhub_backend/internal/logger"
	"lexhub_backend/internal/models"
	"lexhub_backend/internal/repositories"
	"lexhub_backend/internal/services/dto"
	"lexhub_backend/pkg/apperrors"
)

type UserService interface {
	List(ctx context.Context, filter repositories.UserFilter) (*dto.PaginatedResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserDTO, error)
	AdminCreate(ctx context.Context, req dto.AdminCreateUserRequest) (*dto.UserDTO, error)
	AdminUpdate(ctx context.Context, adminID, userID string, req dto.AdminUpdateUserRequest) (*dto.UserDTO, error)
	AdminDelete(ctx context.Context, adminID, userID string) error
	DashboardStats(ctx context.Context) (*dto.DashboardStats, error)
}

type UserServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.LawyerProfileRepository
	tokenRepo   repositories.RefreshTokenRepository
}

func NewUserService(
	userRepo repositories.UserRepository,
	profileRepo repositories.LawyerProfileRepository,
	tokenRepo repositories.RefreshTokenRepository,
) UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokenRepo:   tokenRepo,
	}
}

func (s *UserServiceImpl) List(ctx context.Context, filter repositories.UserFilter) (*dto.PaginatedResponse, error) {
	users, total, err := s.userRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.UserDTO, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserDTO(&users[i]))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return dto.NewPaginatedResponse(items, total, page, pageSize), nil
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return dto.NewUserDTO(user), nil
}

func (s *UserServiceImpl) AdminCreate(ctx context.Context, req dto.AdminCreateUserRequest) (*dto.UserDTO, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: &hash,
		Role:         req.Role,
		Status:       models.UserStatusApproved, // admin-created accounts skip review
		IsActive:     true,
		AuthProvider: "local",
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if user.Role == models.UserRoleLawyer {
		profile := &models.LawyerProfile{
			UserID: user.ID,
			Status: models.ProfileStatusIncomplete,
		}
		profile.SetCompletedSteps([]string{})
		if err := s.profileRepo.Create(profile); err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.LawyerProfile = profile
	}

	logger.CtxInfo(ctx, "user created by admin", "user_id", user.ID, "role", user.Role)
	return dto.NewUserDTO(user), nil
}

func (s *UserServiceImpl) AdminUpdate(ctx context.Context, adminID, userID string, req dto.AdminUpdateUserRequest) (*dto.UserDTO, error) {
	if adminID == userID && (req.Role != "" || req.IsActive != nil) {
		return nil, apperrors.ErrCannotModifySelf
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	userFields := map[string]interface{}{}
	profileFields := map[string]interface{}{}

	if req.Name != "" {
		userFields["name"] = req.Name
	}
	if req.Role != "" {
		userFields["role"] = req.Role
	}
	if req.Status != "" {
		userFields["status"] = req.Status
		// Keep the profile's review status in step with an explicit
		// admin status edit so the directory gate stays consistent.
		switch req.Status {
		case models.UserStatusApproved:
			profileFields["status"] = models.ProfileStatusApproved
		case models.UserStatusRejected:
			profileFields["status"] = models.ProfileStatusRejected
		}
	}
	if req.IsActive != nil {
		userFields["is_active"] = *req.IsActive
	}
	if len(userFields) == 0 {
		return s.GetByID(ctx, userID)
	}

	if err := s.userRepo.UpdateWithProfile(userID, userFields, profileFields); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Deactivation kills open sessions.
	if req.IsActive != nil && !*req.IsActive {
		if err := s.tokenRepo.DeleteByUserID(userID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	logger.CtxInfo(ctx, "user updated by admin", "user_id", userID, "admin_id", adminID)
	return s.GetByID(ctx, userID)
}

func (s *UserServiceImpl) AdminDelete(ctx context.Context, adminID, userID string) error {
	if adminID == userID {
		return apperrors.ErrCannotModifySelf
	}

	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user deleted by admin", "user_id", userID, "admin_id", adminID)
	return nil
}

func (s *UserServiceImpl) DashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	usersByRoleStatus, err := s.userRepo.CountByRoleAndStatus()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	profilesByStatus, err := s.profileRepo.CountByStatus()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.DashboardStats{
		UsersByRoleAndStatus: usersByRoleStatus,
		ProfilesByStatus:     profilesByStatus,
		PendingReview:        profilesByStatus[string(models.ProfileStatusPendingReview)],
	}, nil
}
