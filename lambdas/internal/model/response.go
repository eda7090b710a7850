package model

// SubmitResponse is returned on a successful survey submission.
type SubmitResponse struct {
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId"`
}

// ErrorResponse is returned for any failed submission.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SubmitSuccessMessage is the message carried by every SubmitResponse.
const SubmitSuccessMessage = "Survey submitted successfully!"
