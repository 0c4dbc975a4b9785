package validator

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// Practice-area slugs: lowercase words joined by dashes, e.g. "family-law".
var practiceAreaRe = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

func registerCustomRules(v *validator.Validate) {
	// practice_area validates a directory filter / profile entry slug
	_ = v.RegisterValidation("practice_area", func(fl validator.FieldLevel) bool {
		return practiceAreaRe.MatchString(fl.Field().String())
	})

	// admission_year must be between 1950 and the current year
	_ = v.RegisterValidation("admission_year", func(fl validator.FieldLevel) bool {
		year := fl.Field().Int()
		return year >= 1950 && int(year) <= time.Now().Year()
	})
}
