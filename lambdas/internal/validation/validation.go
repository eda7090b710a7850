// Package validation checks the conditional opt-in contact fields of a
// survey submission.
//
// Respondents who pick anything other than the opt-out answer on q21 must
// leave a name, an email and a phone number so they can be contacted for
// contests and product tests.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/sh3r4rd/survey_submissions/internal/errs"
	"github.com/sh3r4rd/survey_submissions/internal/model"
)

// EmailTag is the validator tag for the survey email rule.
const EmailTag = "survey_email"

// notSpaceOrAt excludes '@' and every character JavaScript's \s matches.
const notSpaceOrAt = `[^\s\x0B\p{Zs}\x{2028}\x{2029}\x{FEFF}@]+`

var emailPattern = regexp.MustCompile(`^` + notSpaceOrAt + `@` + notSpaceOrAt + `\.` + notSpaceOrAt + `$`)

// OptInValidator enforces the q21 follow-up rules.
// It is safe for concurrent use.
type OptInValidator struct {
	validate *validator.Validate
}

// New returns an OptInValidator with the survey email rule registered.
func New() *OptInValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation(EmailTag, func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &OptInValidator{validate: v}
}

// IsValidEmail reports whether s looks like local@domain.tld.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// HasOptedIn is true when q21 is a multi-select answer holding at least one
// choice other than the opt-out answer.
func HasOptedIn(responses *model.SurveyResponses) bool {
	answer, ok := responses.Get(model.QuestionOptIn)
	if !ok {
		return false
	}
	values, ok := answer.Values()
	if !ok {
		return false
	}
	for _, v := range values {
		if v != model.OptOutAnswer {
			return true
		}
	}
	return false
}

// contactFields are checked in this order; the first failing field decides
// the error.
var contactFields = []string{model.FieldOptInName, model.FieldOptInEmail, model.FieldOptInPhone}

// Validate returns nil when no contact details are required or when they are
// complete. Otherwise it returns an *errs.Error of kind MissingContact,
// InvalidEmail, or Unprocessable for a contact answer that is not text.
func (v *OptInValidator) Validate(responses *model.SurveyResponses) error {
	if !HasOptedIn(responses) {
		return nil
	}

	for _, id := range contactFields {
		if err := v.validateContact(responses, id); err != nil {
			return err
		}
	}

	// The untrimmed value is checked, so surrounding spaces fail.
	email, _ := responses.Get(model.FieldOptInEmail)
	rawEmail, _ := email.Scalar()
	if err := v.validate.Var(rawEmail, EmailTag); err != nil {
		return errs.New(errs.InvalidEmail, err)
	}

	return nil
}

// validateContact requires a non-blank text answer. Absent, null, false and
// zero answers are missing; any other non-text answer cannot be processed.
func (v *OptInValidator) validateContact(responses *model.SurveyResponses, id string) error {
	answer, ok := responses.Get(id)
	if !ok || !answer.Truthy() {
		return errs.New(errs.MissingContact, fmt.Errorf("%s is missing", id))
	}
	if !answer.IsText() {
		return errs.New(errs.Unprocessable, fmt.Errorf("%s is not text", id))
	}

	s, _ := answer.Scalar()
	if err := v.validate.Var(trim(s), "required"); err != nil {
		return errs.New(errs.MissingContact, fmt.Errorf("%s: %w", id, err))
	}
	return nil
}

// trim strips the same whitespace the email pattern rejects.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		switch r {
		case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
			return true
		}
		return unicode.Is(unicode.Zs, r)
	})
}
