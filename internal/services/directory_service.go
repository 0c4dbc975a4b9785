package services

import (
	"context"
	"errors"

	"lexhub_backend/internal/logger"
	"lexhub_backend/internal/models"
	"lexhub_backend/internal/repositories"
	"lexhub_backend/internal/services/dto"
	"lexhub_backend/pkg/apperrors"
)

type DirectoryService interface {
	Search(ctx context.Context, req dto.DirectorySearchRequest) (*dto.PaginatedResponse, error)

	// GetPublicProfile returns the public view of one approved lawyer
	// and counts the view.
	GetPublicProfile(ctx context.Context, profileID string) (*dto.DirectoryEntry, error)

	ContactLawyer(ctx context.Context, profileID string, clientID *string, req dto.ContactLawyerRequest) error
	ListContactRequests(ctx context.Context, lawyerUserID string, page, pageSize int) (*dto.PaginatedResponse, error)
	MarkContactRead(ctx context.Context, lawyerUserID, requestID string) error
}

type DirectoryServiceImpl struct {
	profileRepo repositories.LawyerProfileRepository
	contactRepo repositories.ContactRequestRepository
}

func NewDirectoryService(
	profileRepo repositories.LawyerProfileRepository,
	contactRepo repositories.ContactRequestRepository,
) DirectoryService {
	return &DirectoryServiceImpl{
		profileRepo: profileRepo,
		contactRepo: contactRepo,
	}
}

func (s *DirectoryServiceImpl) Search(ctx context.Context, req dto.DirectorySearchRequest) (*dto.PaginatedResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	profiles, total, err := s.profileRepo.SearchDirectory(repositories.DirectorySearchCriteria{
		Query:         req.Query,
		Location:      req.Location,
		PracticeArea:  req.PracticeArea,
		MinExperience: req.MinExperience,
		Page:          page,
		Limit:         limit,
		SortBy:        req.SortBy,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	entries := make([]*dto.DirectoryEntry, 0, len(profiles))
	for i := range profiles {
		entries = append(entries, dto.NewDirectoryEntry(&profiles[i]))
	}
	return dto.NewPaginatedResponse(entries, total, page, limit), nil
}

func (s *DirectoryServiceImpl) GetPublicProfile(ctx context.Context, profileID string) (*dto.DirectoryEntry, error) {
	profile, err := s.eligibleProfile(profileID)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.IncrementViews(profile.ID); err != nil {
		logger.CtxWarn(ctx, "failed to count profile view", "profile_id", profile.ID, "error", err)
	}

	entry := dto.NewDirectoryEntry(profile)
	return entry, nil
}

func (s *DirectoryServiceImpl) ContactLawyer(ctx context.Context, profileID string, clientID *string, req dto.ContactLawyerRequest) error {
	profile, err := s.eligibleProfile(profileID)
	if err != nil {
		return err
	}

	err = s.contactRepo.Create(&models.ContactRequest{
		LawyerID:    profile.ID,
		ClientID:    clientID,
		SenderName:  req.SenderName,
		SenderEmail: req.SenderEmail,
		Subject:     req.Subject,
		Message:     req.Message,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "contact request created", "profile_id", profile.ID)
	return nil
}

func (s *DirectoryServiceImpl) ListContactRequests(ctx context.Context, lawyerUserID string, page, pageSize int) (*dto.PaginatedResponse, error) {
	profile, err := s.profileRepo.FindByUserID(lawyerUserID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	requests, total, err := s.contactRepo.FindByLawyer(profile.ID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ContactRequestDTO, 0, len(requests))
	for i := range requests {
		items = append(items, dto.NewContactRequestDTO(&requests[i]))
	}
	return dto.NewPaginatedResponse(items, total, page, pageSize), nil
}

func (s *DirectoryServiceImpl) MarkContactRead(ctx context.Context, lawyerUserID, requestID string) error {
	profile, err := s.profileRepo.FindByUserID(lawyerUserID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}

	if err := s.contactRepo.MarkRead(requestID, profile.ID); err != nil {
		if errors.Is(err, repositories.ErrContactRequestNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// eligibleProfile loads a profile and enforces the directory gate: both
// the profile and its user must be APPROVED.
func (s *DirectoryServiceImpl) eligibleProfile(profileID string) (*models.LawyerProfile, error) {
	profile, err := s.profileRepo.FindByID(profileID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if profile.Status != models.ProfileStatusApproved ||
		profile.User == nil || profile.User.Status != models.UserStatusApproved {
		return nil, apperrors.ErrNotFound(repositories.ErrProfileNotFound)
	}
	return profile, nil
}
