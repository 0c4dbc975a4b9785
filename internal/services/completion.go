package services

import (
	"lexhub_backend/internal/models"
)

// Profile step names in onboarding order.
const (
	StepIdentity     = "identity"
	StepContact      = "contact"
	StepPractice     = "practice"
	StepBiography    = "biography"
	StepSocial       = "social"
	StepCaseStories  = "case-stories"
	StepVerification = "verification"
)

// CompletionResult is the outcome of evaluating a profile. Percentage is
// 0..100, MissingFields lists every required field not yet filled (json
// names), CompletedSteps lists steps whose fields are all filled.
type CompletionResult struct {
	Percentage     int
	MissingFields  []string
	CompletedSteps []string
}

type profileField struct {
	Name   string
	Filled func(p *models.LawyerProfile) bool
}

type profileStep struct {
	Name   string
	Fields []profileField
}

func stringField(name string, get func(p *models.LawyerProfile) string) profileField {
	return profileField{Name: name, Filled: func(p *models.LawyerProfile) bool {
		return get(p) != ""
	}}
}

func intField(name string, get func(p *models.LawyerProfile) int) profileField {
	return profileField{Name: name, Filled: func(p *models.LawyerProfile) bool {
		return get(p) > 0
	}}
}

// profileSteps defines the required fields per step. Optional fields
// (badges) are excluded and never count against completion.
var profileSteps = []profileStep{
	{
		Name: StepIdentity,
		Fields: []profileField{
			stringField("legal_name", func(p *models.LawyerProfile) string { return p.LegalName }),
			stringField("title", func(p *models.LawyerProfile) string { return p.Title }),
			stringField("registration_number", func(p *models.LawyerProfile) string { return p.RegistrationNumber }),
			stringField("firm_name", func(p *models.LawyerProfile) string { return p.FirmName }),
		},
	},
	{
		Name: StepContact,
		Fields: []profileField{
			stringField("address", func(p *models.LawyerProfile) string { return p.Address }),
			stringField("city", func(p *models.LawyerProfile) string { return p.City }),
			stringField("country", func(p *models.LawyerProfile) string { return p.Country }),
			stringField("phone", func(p *models.LawyerProfile) string { return p.Phone }),
		},
	},
	{
		Name: StepPractice,
		Fields: []profileField{
			{Name: "practice_areas", Filled: func(p *models.LawyerProfile) bool { return len(p.GetPracticeAreas()) > 0 }},
			{Name: "languages", Filled: func(p *models.LawyerProfile) bool { return len(p.GetLanguages()) > 0 }},
			intField("years_experience", func(p *models.LawyerProfile) int { return p.YearsExperience }),
			intField("admission_year", func(p *models.LawyerProfile) int { return p.AdmissionYear }),
			stringField("cv_url", func(p *models.LawyerProfile) string { return p.CVURL }),
		},
	},
	{
		Name: StepBiography,
		Fields: []profileField{
			stringField("headshot_url", func(p *models.LawyerProfile) string { return p.HeadshotURL }),
			stringField("short_bio", func(p *models.LawyerProfile) string { return p.ShortBio }),
			stringField("long_bio", func(p *models.LawyerProfile) string { return p.LongBio }),
		},
	},
	{
		Name: StepSocial,
		Fields: []profileField{
			{Name: "social_links", Filled: func(p *models.LawyerProfile) bool { return len(p.GetSocialLinks()) > 0 }},
		},
	},
	{
		Name: StepCaseStories,
		Fields: []profileField{
			{Name: "case_stories", Filled: func(p *models.LawyerProfile) bool { return len(p.GetCaseStories()) > 0 }},
		},
	},
	{
		Name: StepVerification,
		Fields: []profileField{
			stringField("verification_doc_url", func(p *models.LawyerProfile) string { return p.VerificationDocURL }),
		},
	},
}

// EvaluateCompletion computes the completion state of a profile. It is pure:
// no side effects, and the same profile always yields the same result.
func EvaluateCompletion(profile *models.LawyerProfile) CompletionResult {
	result := CompletionResult{
		MissingFields:  []string{},
		CompletedSteps: []string{},
	}

	total := 0
	filled := 0
	for _, step := range profileSteps {
		stepComplete := true
		for _, field := range step.Fields {
			total++
			if field.Filled(profile) {
				filled++
			} else {
				stepComplete = false
				result.MissingFields = append(result.MissingFields, field.Name)
			}
		}
		if stepComplete {
			result.CompletedSteps = append(result.CompletedSteps, step.Name)
		}
	}

	// Round half up.
	result.Percentage = (filled*100 + total/2) / total
	return result
}
