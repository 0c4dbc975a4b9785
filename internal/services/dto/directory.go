package dto

import (
	"lexhub_backend/internal/models"
)

type DirectorySearchRequest struct {
	Query         string `form:"q"`
	Location      string `form:"location"`
	PracticeArea  string `form:"practice_area" validate:"omitempty,practice_area"`
	MinExperience *int   `form:"min_experience" binding:"omitempty,min=0"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=100"`
	SortBy        string `form:"sort_by" binding:"omitempty,oneof=recent experience"`
}

// DirectoryEntry is the public view of an approved lawyer; nothing
// private leaks here.
type DirectoryEntry struct {
	ProfileID       string   `json:"profile_id"`
	Name            string   `json:"name"`
	LegalName       string   `json:"legal_name"`
	Title           string   `json:"title"`
	FirmName        string   `json:"firm_name"`
	City            string   `json:"city"`
	Country         string   `json:"country"`
	PracticeAreas   []string `json:"practice_areas"`
	Languages       []string `json:"languages"`
	YearsExperience int      `json:"years_experience"`
	HeadshotURL     string   `json:"headshot_url,omitempty"`
	ShortBio        string   `json:"short_bio,omitempty"`
}

// NewDirectoryEntry maps a profile (with User preloaded) into its
// public shape.
func NewDirectoryEntry(p *models.LawyerProfile) *DirectoryEntry {
	entry := &DirectoryEntry{
		ProfileID:       p.ID,
		LegalName:       p.LegalName,
		Title:           p.Title,
		FirmName:        p.FirmName,
		City:            p.City,
		Country:         p.Country,
		PracticeAreas:   p.GetPracticeAreas(),
		Languages:       p.GetLanguages(),
		YearsExperience: p.YearsExperience,
		HeadshotURL:     p.HeadshotURL,
		ShortBio:        p.ShortBio,
	}
	if p.User != nil {
		entry.Name = p.User.Name
	}
	return entry
}
