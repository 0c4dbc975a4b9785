package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// LawyerProfile is the 1:1 extension of a LAWYER user. List and map
// fields are stored as jsonb.
type LawyerProfile struct {
	BaseModel
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"`

	// Identity
	LegalName          string `json:"legal_name"`
	Title              string `json:"title"`
	RegistrationNumber string `json:"registration_number"`
	FirmName           string `json:"firm_name"`

	// Contact
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Phone   string `json:"phone"`

	// Practice
	PracticeAreas   datatypes.JSON `gorm:"type:jsonb" json:"practice_areas"` // ["family-law", "tax-law"]
	Languages       datatypes.JSON `gorm:"type:jsonb" json:"languages"`      // ["english", "german"]
	YearsExperience int            `json:"years_experience"`
	AdmissionYear   int            `json:"admission_year"`
	CVURL           string         `json:"cv_url"`

	// Biography
	HeadshotURL string `json:"headshot_url"`
	ShortBio    string `json:"short_bio"`
	LongBio     string `json:"long_bio"`

	// Social
	SocialLinks datatypes.JSON `gorm:"type:jsonb" json:"social_links"` // {"linkedin": "...", "website": "..."}

	// Case stories
	CaseStories datatypes.JSON `gorm:"type:jsonb" json:"case_stories"`

	// Verification
	VerificationDocURL string         `json:"verification_doc_url"`
	Badges             datatypes.JSON `gorm:"type:jsonb" json:"badges,omitempty"`

	// Review workflow
	Status               ProfileStatus  `gorm:"type:varchar(20);default:'INCOMPLETE'" json:"status"`
	CompletionPercentage int            `gorm:"default:0" json:"completion_percentage"`
	CompletedSteps       datatypes.JSON `gorm:"type:jsonb" json:"completed_steps"`
	RejectionReason      string         `json:"rejection_reason,omitempty"`
	ReviewedBy           *string        `json:"reviewed_by,omitempty"`
	ReviewedAt           *time.Time     `json:"reviewed_at,omitempty"`

	ProfileViews int `gorm:"default:0" json:"profile_views"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// CaseStory is one structured work-history entry inside CaseStories.
type CaseStory struct {
	Title   string `json:"title"`
	Year    int    `json:"year"`
	Court   string `json:"court"`
	Summary string `json:"summary"`
	Outcome string `json:"outcome"`
}

func (p *LawyerProfile) GetPracticeAreas() []string {
	return decodeStringList(p.PracticeAreas)
}

func (p *LawyerProfile) SetPracticeAreas(areas []string) {
	p.PracticeAreas = encodeJSON(areas)
}

func (p *LawyerProfile) GetLanguages() []string {
	return decodeStringList(p.Languages)
}

func (p *LawyerProfile) SetLanguages(languages []string) {
	p.Languages = encodeJSON(languages)
}

func (p *LawyerProfile) GetSocialLinks() map[string]string {
	links := map[string]string{}
	if len(p.SocialLinks) > 0 {
		_ = json.Unmarshal(p.SocialLinks, &links)
	}
	return links
}

func (p *LawyerProfile) SetSocialLinks(links map[string]string) {
	p.SocialLinks = encodeJSON(links)
}

func (p *LawyerProfile) GetCaseStories() []CaseStory {
	var stories []CaseStory
	if len(p.CaseStories) > 0 {
		_ = json.Unmarshal(p.CaseStories, &stories)
	}
	return stories
}

func (p *LawyerProfile) SetCaseStories(stories []CaseStory) {
	p.CaseStories = encodeJSON(stories)
}

func (p *LawyerProfile) GetBadges() []string {
	return decodeStringList(p.Badges)
}

func (p *LawyerProfile) SetBadges(badges []string) {
	p.Badges = encodeJSON(badges)
}

func (p *LawyerProfile) GetCompletedSteps() []string {
	return decodeStringList(p.CompletedSteps)
}

func (p *LawyerProfile) SetCompletedSteps(steps []string) {
	p.CompletedSteps = encodeJSON(steps)
}

func decodeStringList(raw datatypes.JSON) []string {
	var out []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return out
}

func encodeJSON(v interface{}) datatypes.JSON {
	data, _ := json.Marshal(v)
	return datatypes.JSON(data)
}
