package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sh3r4rd/survey_submissions/internal/errs"
	"github.com/sh3r4rd/survey_submissions/internal/model"
	"github.com/sh3r4rd/survey_submissions/internal/validation"
)

func responses(t *testing.T, body string) *model.SurveyResponses {
	t.Helper()
	payload, err := model.DecodeSurveyPayload([]byte(`{"surveyResponses": ` + body + `}`))
	require.NoError(t, err, "failed to decode fixture")
	return &payload.SurveyResponses
}

func TestHasOptedIn(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"absent", `{}`, false},
		{"opt-out only", `{"q21": ["No, just completing the survey"]}`, false},
		{"opt-out twice", `{"q21": ["No, just completing the survey", "No, just completing the survey"]}`, false},
		{"empty list", `{"q21": []}`, false},
		{"scalar yes", `{"q21": "Yes"}`, false},
		{"contest", `{"q21": ["Contests"]}`, true},
		{"mixed", `{"q21": ["No, just completing the survey", "Product tests"]}`, true},
		{"empty choice", `{"q21": [""]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.HasOptedIn(responses(t, tt.body)))
		})
	}
}

func TestValidate(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name     string
		body     string
		wantKind *errs.Kind
	}{
		{
			name: "not opted in skips contact checks",
			body: `{"q21": ["No, just completing the survey"]}`,
		},
		{
			name: "q21 absent skips contact checks",
			body: `{"q1": "Oui"}`,
		},
		{
			name: "complete contact",
			body: `{"q21": ["Yes"], "name-q21": "Ana", "email-q21": "ana@example.com", "phone-q21": "555-0100"}`,
		},
		{
			name:     "empty name",
			body:     `{"q21": ["Yes"], "name-q21": "", "email-q21": "a@b.com", "phone-q21": "555"}`,
			wantKind: kind(errs.MissingContact),
		},
		{
			name:     "whitespace phone",
			body:     `{"q21": ["Yes"], "name-q21": "A", "email-q21": "a@b.com", "phone-q21": "   "}`,
			wantKind: kind(errs.MissingContact),
		},
		{
			name:     "no-break space name",
			body:     `{"q21": ["Yes"], "name-q21": "\u00a0\ufeff", "email-q21": "a@b.com", "phone-q21": "555"}`,
			wantKind: kind(errs.MissingContact),
		},
		{
			name:     "missing email",
			body:     `{"q21": ["Yes"], "name-q21": "A", "phone-q21": "555"}`,
			wantKind: kind(errs.MissingContact),
		},
		{
			name:     "null name",
			body:     `{"q21": ["Yes"], "name-q21": null, "email-q21": "a@b.com", "phone-q21": "555"}`,
			wantKind: kind(errs.MissingContact),
		},
		{
			name:     "false name",
			body:     `{"q21": ["Yes"], "name-q21": false, "email-q21": "a@b.com", "phone-q21": "555"}`,
			wantKind: kind(errs.MissingContact),
		},
		{
			name:     "zero phone",
			body:     `{"q21": ["Yes"], "name-q21": "A", "email-q21": "a@b.com", "phone-q21": 0}`,
			wantKind: kind(errs.MissingContact),
		},
		{
			name:     "list name",
			body:     `{"q21": ["Yes"], "name-q21": ["A"], "email-q21": "a@b.com", "phone-q21": "555"}`,
			wantKind: kind(errs.Unprocessable),
		},
		{
			name:     "empty list name",
			body:     `{"q21": ["Yes"], "name-q21": [], "email-q21": "a@b.com", "phone-q21": "555"}`,
			wantKind: kind(errs.Unprocessable),
		},
		{
			name:     "boolean name",
			body:     `{"q21": ["Yes"], "name-q21": true, "email-q21": "a@b.com", "phone-q21": "555"}`,
			wantKind: kind(errs.Unprocessable),
		},
		{
			name:     "number phone",
			body:     `{"q21": ["Yes"], "name-q21": "A", "email-q21": "a@b.com", "phone-q21": 5145550100}`,
			wantKind: kind(errs.Unprocessable),
		},
		{
			name:     "object email",
			body:     `{"q21": ["Yes"], "name-q21": "A", "email-q21": {"v": "a@b.com"}, "phone-q21": "555"}`,
			wantKind: kind(errs.Unprocessable),
		},
		{
			name:     "blank name checked before boolean phone",
			body:     `{"q21": ["Yes"], "name-q21": " ", "email-q21": "a@b.com", "phone-q21": true}`,
			wantKind: kind(errs.MissingContact),
		},
		{
			name:     "boolean name checked before missing email",
			body:     `{"q21": ["Yes"], "name-q21": true, "phone-q21": "555"}`,
			wantKind: kind(errs.Unprocessable),
		},
		{
			name:     "missing fields win over bad email",
			body:     `{"q21": ["Yes"], "name-q21": "", "email-q21": "nope", "phone-q21": "555"}`,
			wantKind: kind(errs.MissingContact),
		},
		{
			name:     "email without at",
			body:     `{"q21": ["Yes"], "name-q21": "A", "email-q21": "not-an-email", "phone-q21": "555"}`,
			wantKind: kind(errs.InvalidEmail),
		},
		{
			name:     "email without dot part",
			body:     `{"q21": ["Yes"], "name-q21": "A", "email-q21": "a@b.", "phone-q21": "555"}`,
			wantKind: kind(errs.InvalidEmail),
		},
		{
			name:     "email with surrounding spaces",
			body:     `{"q21": ["Yes"], "name-q21": "A", "email-q21": " a@b.com ", "phone-q21": "555"}`,
			wantKind: kind(errs.InvalidEmail),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(responses(t, tt.body))
			if tt.wantKind == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, *tt.wantKind, errs.KindOf(err))
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"first.last@example.org",
		"x@sub.domain.ca",
		"a@b.c.d",
		"é@exemple.fr",
	}
	invalid := []string{
		"",
		"plain",
		"a@b",
		"@b.com",
		"a@.com",
		"a@b.",
		"a b@c.com",
		"a@b@c.com",
		"a\u00a0b@c.com",
		"a@b.com\u2028",
		"a@b.com\n",
	}

	for _, s := range valid {
		assert.True(t, validation.IsValidEmail(s), "expected %q to be valid", s)
	}
	for _, s := range invalid {
		assert.False(t, validation.IsValidEmail(s), "expected %q to be invalid", s)
	}
}

func kind(k errs.Kind) *errs.Kind {
	return &k
}
