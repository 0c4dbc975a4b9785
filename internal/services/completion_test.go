package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"lexhub_backend/internal/models"
)

func fullProfile() *models.LawyerProfile {
	p := &models.LawyerProfile{
		LegalName:          "Jane Advocate",
		Title:              "Attorney at Law",
		RegistrationNumber: "BAR-12345",
		FirmName:           "Advocate & Partners",
		Address:            "1 Court Street",
		City:               "Berlin",
		Country:            "Germany",
		Phone:              "+49 30 1234567",
		YearsExperience:    12,
		AdmissionYear:      2012,
		CVURL:              "/api/files/cvs/jane.pdf",
		HeadshotURL:        "/api/files/headshots/jane.jpg",
		ShortBio:           "Family law specialist.",
		LongBio:            "Twelve years of family and inheritance law practice.",
		VerificationDocURL: "/api/files/verification/jane.pdf",
	}
	p.SetPracticeAreas([]string{"family-law", "inheritance-law"})
	p.SetLanguages([]string{"english", "german"})
	p.SetSocialLinks(map[string]string{"linkedin": "https://linkedin.com/in/jane"})
	p.SetCaseStories([]models.CaseStory{{Title: "Custody appeal", Year: 2021, Court: "Kammergericht", Summary: "Appeal on custody terms", Outcome: "won"}})
	return p
}

func TestEvaluateCompletion_EmptyProfile(t *testing.T) {
	result := EvaluateCompletion(&models.LawyerProfile{})

	assert.Equal(t, 0, result.Percentage)
	assert.Empty(t, result.CompletedSteps)

	// Every required field is reported missing.
	assert.Len(t, result.MissingFields, 19)
	assert.Contains(t, result.MissingFields, "legal_name")
	assert.Contains(t, result.MissingFields, "practice_areas")
	assert.Contains(t, result.MissingFields, "social_links")
	assert.Contains(t, result.MissingFields, "verification_doc_url")
}

func TestEvaluateCompletion_FullProfile(t *testing.T) {
	result := EvaluateCompletion(fullProfile())

	assert.Equal(t, 100, result.Percentage)
	assert.Empty(t, result.MissingFields)
	assert.Equal(t, []string{
		StepIdentity, StepContact, StepPractice, StepBiography,
		StepSocial, StepCaseStories, StepVerification,
	}, result.CompletedSteps)
}

func TestEvaluateCompletion_PartialStepNotCompleted(t *testing.T) {
	p := fullProfile()
	p.Phone = ""

	result := EvaluateCompletion(p)

	assert.NotContains(t, result.CompletedSteps, StepContact)
	assert.Contains(t, result.CompletedSteps, StepIdentity)
	assert.Equal(t, []string{"phone"}, result.MissingFields)
	assert.Less(t, result.Percentage, 100)
}

func TestEvaluateCompletion_MonotonicAsFieldsFill(t *testing.T) {
	p := &models.LawyerProfile{}
	prev := EvaluateCompletion(p).Percentage

	fill := []func(){
		func() { p.LegalName = "Jane Advocate" },
		func() { p.Title = "Attorney" },
		func() { p.RegistrationNumber = "BAR-1" },
		func() { p.FirmName = "Solo" },
		func() { p.Address = "1 Court St" },
		func() { p.City = "Berlin" },
		func() { p.Country = "Germany" },
		func() { p.Phone = "+49 30 1" },
		func() { p.SetPracticeAreas([]string{"tax-law"}) },
		func() { p.SetLanguages([]string{"german"}) },
		func() { p.YearsExperience = 3 },
		func() { p.AdmissionYear = 2020 },
		func() { p.CVURL = "/cv.pdf" },
		func() { p.HeadshotURL = "/h.jpg" },
		func() { p.ShortBio = "bio" },
		func() { p.LongBio = "long bio" },
		func() { p.SetSocialLinks(map[string]string{"website": "https://example.com"}) },
		func() { p.SetCaseStories([]models.CaseStory{{Title: "Case", Year: 2023}}) },
		func() { p.VerificationDocURL = "/v.pdf" },
	}
	for _, step := range fill {
		step()
		got := EvaluateCompletion(p).Percentage
		require.GreaterOrEqual(t, got, prev)
		prev = got
	}
	assert.Equal(t, 100, prev)
}

func TestEvaluateCompletion_Idempotent(t *testing.T) {
	p := fullProfile()
	p.LongBio = ""
	p.SetLanguages(nil)

	first := EvaluateCompletion(p)
	second := EvaluateCompletion(p)

	assert.Equal(t, first, second)
}

func TestEvaluateCompletion_OptionalFieldsIgnored(t *testing.T) {
	with := fullProfile()
	with.SetCompletedSteps([]string{"stale"})
	with.Badges = datatypes.JSON(`["verified"]`)

	without := fullProfile()

	assert.Equal(t, EvaluateCompletion(without).Percentage, EvaluateCompletion(with).Percentage)
}
