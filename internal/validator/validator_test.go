package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleDTO struct {
	Email         string `json:"email" validate:"required,email"`
	PracticeArea  string `json:"practice_area" validate:"omitempty,practice_area"`
	AdmissionYear int    `json:"admission_year" validate:"omitempty,admission_year"`
}

func TestValidate_FieldNamesUseJSONTags(t *testing.T) {
	v := New()

	err := v.Validate(&sampleDTO{Email: "not-an-email"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "email")
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
}

func TestValidate_PracticeAreaRule(t *testing.T) {
	v := New()

	ok := &sampleDTO{Email: "a@b.com", PracticeArea: "family-law"}
	assert.NoError(t, v.Validate(ok))

	bad := &sampleDTO{Email: "a@b.com", PracticeArea: "Family Law!"}
	err := v.Validate(bad)
	require.Error(t, err)
	vErr := err.(*ValidationError)
	assert.Equal(t, "Must be a known practice area slug", vErr.Errors["practice_area"])
}

func TestValidate_AdmissionYearRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sampleDTO{Email: "a@b.com", AdmissionYear: 2005}))
	assert.Error(t, v.Validate(&sampleDTO{Email: "a@b.com", AdmissionYear: 1900}))
	assert.Error(t, v.Validate(&sampleDTO{Email: "a@b.com", AdmissionYear: 3000}))
}
