package services

import (
	"context"
	"errors"
	"time"

	"lexhub_backend/internal/logger"
	"lexhub_backend/internal/models"
	"lexhub_backend/internal/repositories"
	"lexhub_backend/internal/services/dto"
	"lexhub_backend/pkg/apperrors"
)

const defaultRejectionReason = "Profile did not meet the review requirements"

type LawyerProfileService interface {
	GetOwnProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	GetCompletion(ctx context.Context, userID string) (*dto.CompletionResponse, error)

	UpdateIdentity(ctx context.Context, userID string, req dto.IdentityStepRequest) (*dto.CompletionResponse, error)
	UpdateContact(ctx context.Context, userID string, req dto.ContactStepRequest) (*dto.CompletionResponse, error)
	UpdatePractice(ctx context.Context, userID string, req dto.PracticeStepRequest) (*dto.CompletionResponse, error)
	UpdateBiography(ctx context.Context, userID string, req dto.BiographyStepRequest) (*dto.CompletionResponse, error)
	UpdateSocial(ctx context.Context, userID string, req dto.SocialStepRequest) (*dto.CompletionResponse, error)
	UpdateCaseStories(ctx context.Context, userID string, req dto.CaseStoriesStepRequest) (*dto.CompletionResponse, error)
	UpdateVerification(ctx context.Context, userID string, req dto.VerificationStepRequest) (*dto.CompletionResponse, error)

	SubmitForReview(ctx context.Context, userID string) (*dto.CompletionResponse, error)

	ListPendingReview(ctx context.Context, page, pageSize int) (*dto.PaginatedResponse, error)
	Approve(ctx context.Context, profileID, reviewerID string) (*models.LawyerProfile, error)
	Reject(ctx context.Context, profileID, reviewerID, reason string) (*models.LawyerProfile, error)
}

type LawyerProfileServiceImpl struct {
	profileRepo repositories.LawyerProfileRepository
	userRepo    repositories.UserRepository
}

func NewLawyerProfileService(
	profileRepo repositories.LawyerProfileRepository,
	userRepo repositories.UserRepository,
) LawyerProfileService {
	return &LawyerProfileServiceImpl{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

func (s *LawyerProfileServiceImpl) GetOwnProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileResponse{
		Profile:    profile,
		Completion: completionResponse(profile),
	}, nil
}

func (s *LawyerProfileServiceImpl) GetCompletion(ctx context.Context, userID string) (*dto.CompletionResponse, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}
	return completionResponse(profile), nil
}

func (s *LawyerProfileServiceImpl) UpdateIdentity(ctx context.Context, userID string, req dto.IdentityStepRequest) (*dto.CompletionResponse, error) {
	return s.applyStep(ctx, userID, func(p *models.LawyerProfile) {
		p.LegalName = req.LegalName
		p.Title = req.Title
		p.RegistrationNumber = req.RegistrationNumber
		p.FirmName = req.FirmName
	}, map[string]interface{}{
		"legal_name":          req.LegalName,
		"title":               req.Title,
		"registration_number": req.RegistrationNumber,
		"firm_name":           req.FirmName,
	})
}

func (s *LawyerProfileServiceImpl) UpdateContact(ctx context.Context, userID string, req dto.ContactStepRequest) (*dto.CompletionResponse, error) {
	return s.applyStep(ctx, userID, func(p *models.LawyerProfile) {
		p.Address = req.Address
		p.City = req.City
		p.Country = req.Country
		p.Phone = req.Phone
	}, map[string]interface{}{
		"address": req.Address,
		"city":    req.City,
		"country": req.Country,
		"phone":   req.Phone,
	})
}

func (s *LawyerProfileServiceImpl) UpdatePractice(ctx context.Context, userID string, req dto.PracticeStepRequest) (*dto.CompletionResponse, error) {
	return s.applyStep(ctx, userID, func(p *models.LawyerProfile) {
		p.SetPracticeAreas(req.PracticeAreas)
		p.SetLanguages(req.Languages)
		p.YearsExperience = req.YearsExperience
		p.AdmissionYear = req.AdmissionYear
		if req.CVURL != "" {
			p.CVURL = req.CVURL
		}
	}, nil)
}

func (s *LawyerProfileServiceImpl) UpdateBiography(ctx context.Context, userID string, req dto.BiographyStepRequest) (*dto.CompletionResponse, error) {
	return s.applyStep(ctx, userID, func(p *models.LawyerProfile) {
		p.ShortBio = req.ShortBio
		p.LongBio = req.LongBio
		if req.HeadshotURL != "" {
			p.HeadshotURL = req.HeadshotURL
		}
	}, nil)
}

func (s *LawyerProfileServiceImpl) UpdateSocial(ctx context.Context, userID string, req dto.SocialStepRequest) (*dto.CompletionResponse, error) {
	return s.applyStep(ctx, userID, func(p *models.LawyerProfile) {
		p.SetSocialLinks(req.SocialLinks)
	}, nil)
}

func (s *LawyerProfileServiceImpl) UpdateCaseStories(ctx context.Context, userID string, req dto.CaseStoriesStepRequest) (*dto.CompletionResponse, error) {
	stories := make([]models.CaseStory, 0, len(req.CaseStories))
	for _, story := range req.CaseStories {
		stories = append(stories, models.CaseStory{
			Title:   story.Title,
			Year:    story.Year,
			Court:   story.Court,
			Summary: story.Summary,
			Outcome: story.Outcome,
		})
	}
	return s.applyStep(ctx, userID, func(p *models.LawyerProfile) {
		p.SetCaseStories(stories)
	}, nil)
}

func (s *LawyerProfileServiceImpl) UpdateVerification(ctx context.Context, userID string, req dto.VerificationStepRequest) (*dto.CompletionResponse, error) {
	return s.applyStep(ctx, userID, func(p *models.LawyerProfile) {
		if req.VerificationDocURL != "" {
			p.VerificationDocURL = req.VerificationDocURL
		}
		if req.Badges != nil {
			p.SetBadges(req.Badges)
		}
	}, nil)
}

// applyStep mutates the in-memory profile, recomputes completion, and
// persists the step fields together with the new percentage and step
// list. Status is never touched here. When fields is nil the full
// mutated set of step columns is derived from the mutation itself via
// the profile's own values.
func (s *LawyerProfileServiceImpl) applyStep(
	ctx context.Context,
	userID string,
	mutate func(p *models.LawyerProfile),
	fields map[string]interface{},
) (*dto.CompletionResponse, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	mutate(profile)
	result := EvaluateCompletion(profile)
	profile.CompletionPercentage = result.Percentage
	profile.SetCompletedSteps(result.CompletedSteps)

	if fields == nil {
		fields = map[string]interface{}{
			"practice_areas":       profile.PracticeAreas,
			"languages":            profile.Languages,
			"years_experience":     profile.YearsExperience,
			"admission_year":       profile.AdmissionYear,
			"cv_url":               profile.CVURL,
			"short_bio":            profile.ShortBio,
			"long_bio":             profile.LongBio,
			"headshot_url":         profile.HeadshotURL,
			"social_links":         profile.SocialLinks,
			"case_stories":         profile.CaseStories,
			"verification_doc_url": profile.VerificationDocURL,
			"badges":               profile.Badges,
		}
	}
	fields["completion_percentage"] = result.Percentage
	fields["completed_steps"] = profile.CompletedSteps

	if err := s.profileRepo.UpdateFields(profile.ID, fields); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxDebug(ctx, "profile step saved",
		"user_id", userID, "completion", result.Percentage)

	return &dto.CompletionResponse{
		Percentage:     result.Percentage,
		MissingFields:  result.MissingFields,
		CompletedSteps: result.CompletedSteps,
		Status:         profile.Status,
	}, nil
}

func (s *LawyerProfileServiceImpl) SubmitForReview(ctx context.Context, userID string) (*dto.CompletionResponse, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	if profile.Status != models.ProfileStatusIncomplete && profile.Status != models.ProfileStatusRejected {
		return nil, apperrors.ErrProfileAlreadySubmitted
	}

	result := EvaluateCompletion(profile)
	if result.Percentage < 100 {
		return nil, apperrors.ErrProfileIncomplete(result.MissingFields)
	}

	profile.SetCompletedSteps(result.CompletedSteps)
	err = s.profileRepo.UpdateFields(profile.ID, map[string]interface{}{
		"status":                models.ProfileStatusPendingReview,
		"completion_percentage": result.Percentage,
		"completed_steps":       profile.CompletedSteps,
		"rejection_reason":      "",
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "profile submitted for review", "user_id", userID, "profile_id", profile.ID)

	return &dto.CompletionResponse{
		Percentage:     result.Percentage,
		MissingFields:  result.MissingFields,
		CompletedSteps: result.CompletedSteps,
		Status:         models.ProfileStatusPendingReview,
	}, nil
}

func (s *LawyerProfileServiceImpl) ListPendingReview(ctx context.Context, page, pageSize int) (*dto.PaginatedResponse, error) {
	profiles, total, err := s.profileRepo.FindPendingReview(page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(profiles, total, page, pageSize), nil
}

func (s *LawyerProfileServiceImpl) Approve(ctx context.Context, profileID, reviewerID string) (*models.LawyerProfile, error) {
	profile, err := s.profileRepo.FindByID(profileID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if profile.Status != models.ProfileStatusPendingReview {
		return nil, apperrors.ErrProfileNotPendingReview
	}

	now := time.Now()
	profile.Status = models.ProfileStatusApproved
	profile.RejectionReason = ""
	profile.ReviewedBy = &reviewerID
	profile.ReviewedAt = &now

	if err := s.profileRepo.SaveReviewDecision(profile, models.UserStatusApproved); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "profile approved", "profile_id", profileID, "reviewer_id", reviewerID)
	return profile, nil
}

func (s *LawyerProfileServiceImpl) Reject(ctx context.Context, profileID, reviewerID, reason string) (*models.LawyerProfile, error) {
	profile, err := s.profileRepo.FindByID(profileID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if profile.Status != models.ProfileStatusPendingReview {
		return nil, apperrors.ErrProfileNotPendingReview
	}

	if reason == "" {
		reason = defaultRejectionReason
	}

	now := time.Now()
	profile.Status = models.ProfileStatusRejected
	profile.RejectionReason = reason
	profile.ReviewedBy = &reviewerID
	profile.ReviewedAt = &now

	if err := s.profileRepo.SaveReviewDecision(profile, models.UserStatusRejected); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "profile rejected", "profile_id", profileID, "reviewer_id", reviewerID)
	return profile, nil
}

func (s *LawyerProfileServiceImpl) findProfile(userID string) (*models.LawyerProfile, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func completionResponse(profile *models.LawyerProfile) *dto.CompletionResponse {
	result := EvaluateCompletion(profile)
	return &dto.CompletionResponse{
		Percentage:     result.Percentage,
		MissingFields:  result.MissingFields,
		CompletedSteps: result.CompletedSteps,
		Status:         profile.Status,
	}
}
