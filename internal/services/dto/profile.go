package dto

import (
	"lexhub_backend/internal/models"
)

// Per-step update requests. File-bearing steps (practice CV, biography
// headshot, verification document) bind via multipart form, so those
// carry form tags; the file itself is handled by the upload service and
// arrives here as a URL.

type IdentityStepRequest struct {
	LegalName          string `json:"legal_name" binding:"required,min=2"`
	Title              string `json:"title" binding:"required"`
	RegistrationNumber string `json:"registration_number" binding:"required"`
	FirmName           string `json:"firm_name" binding:"required"`
}

type ContactStepRequest struct {
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	Country string `json:"country" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

type PracticeStepRequest struct {
	PracticeAreas   []string `json:"practice_areas" form:"practice_areas" binding:"required,min=1,dive,required" validate:"dive,practice_area"`
	Languages       []string `json:"languages" form:"languages" binding:"required,min=1"`
	YearsExperience int      `json:"years_experience" form:"years_experience" binding:"required,min=0,max=70"`
	AdmissionYear   int      `json:"admission_year" form:"admission_year" binding:"required" validate:"admission_year"`
	CVURL           string   `json:"cv_url" form:"cv_url"` // set server-side when a file is uploaded
}

type BiographyStepRequest struct {
	ShortBio    string `json:"short_bio" form:"short_bio" binding:"required,min=10,max=500"`
	LongBio     string `json:"long_bio" form:"long_bio" binding:"required,min=50"`
	HeadshotURL string `json:"headshot_url" form:"headshot_url"`
}

type SocialStepRequest struct {
	SocialLinks map[string]string `json:"social_links" binding:"required,min=1,dive,url"`
}

type CaseStoriesStepRequest struct {
	CaseStories []CaseStoryDTO `json:"case_stories" binding:"required,min=1,dive"`
}

type CaseStoryDTO struct {
	Title   string `json:"title" binding:"required"`
	Year    int    `json:"year" binding:"required,min=1950"`
	Court   string `json:"court"`
	Summary string `json:"summary" binding:"required,min=10"`
	Outcome string `json:"outcome"`
}

type VerificationStepRequest struct {
	VerificationDocURL string   `json:"verification_doc_url" form:"verification_doc_url"`
	Badges             []string `json:"badges" form:"badges"`
}

// CompletionResponse is the engine's result, returned after every step
// update and by GET /completion.
type CompletionResponse struct {
	Percentage     int                  `json:"percentage"`
	MissingFields  []string             `json:"missing_fields"`
	CompletedSteps []string             `json:"completed_steps"`
	Status         models.ProfileStatus `json:"status"`
}

type RejectProfileRequest struct {
	Reason string `json:"reason"`
}

type ProfileResponse struct {
	Profile    *models.LawyerProfile `json:"profile"`
	Completion *CompletionResponse   `json:"completion"`
}
