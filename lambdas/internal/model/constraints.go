package model

// Domain constants shared across handler, validation, and delivery packages.
const (
	QuestionOptIn   = "q21"
	FieldOptInName  = "name-q21"
	FieldOptInEmail = "email-q21"
	FieldOptInPhone = "phone-q21"

	// OptOutAnswer is the only q21 choice that does not require contact details.
	OptOutAnswer = "No, just completing the survey"

	FieldTimestamp    = "timestamp"
	SequenceSeparator = ", "
	TimestampLayout   = "2006-01-02T15:04:05.000Z"
)
