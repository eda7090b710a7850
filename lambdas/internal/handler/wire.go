package handler

import (
	"github.com/rs/zerolog"

	"github.com/sh3r4rd/survey_submissions/internal/config"
	"github.com/sh3r4rd/survey_submissions/internal/delivery"
)

// FromConfig builds a SubmissionHandler that delivers to the configured
// spreadsheet endpoint.
func FromConfig(cfg *config.Config, logger zerolog.Logger) *SubmissionHandler {
	client := delivery.NewSheetsClient(
		cfg.Delivery.Endpoint,
		delivery.WithTimeout(cfg.Delivery.Timeout),
		delivery.WithLogger(logger),
	)
	return New(client, WithLogger(logger))
}
