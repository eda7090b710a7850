// Package delivery sends flattened submissions to the spreadsheet backend.
package delivery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sh3r4rd/survey_submissions/internal/model"
)

// ErrNoEndpoint is returned by Deliver when the client has no endpoint.
var ErrNoEndpoint = errors.New("delivery endpoint is not configured")

// Deliverer stores a DeliveryRecord somewhere durable.
type Deliverer interface {
	Deliver(ctx context.Context, record model.DeliveryRecord) error
}

// StatusError is returned when the endpoint answers outside the 2xx range.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spreadsheet endpoint returned status %d", e.StatusCode)
}

// SheetsClient posts records as multipart/form-data to a spreadsheet web app
// endpoint (e.g. a Google Apps Script /exec URL). It makes a single attempt.
type SheetsClient struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a SheetsClient.
type Option func(*SheetsClient)

// WithTimeout bounds each delivery. Zero leaves the transport default.
func WithTimeout(d time.Duration) Option {
	return func(s *SheetsClient) {
		if d > 0 {
			s.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger for delivery attempts.
func WithLogger(l zerolog.Logger) Option {
	return func(s *SheetsClient) {
		s.logger = l.With().Str("component", "delivery").Logger()
	}
}

// NewSheetsClient returns a client posting to endpoint.
func NewSheetsClient(endpoint string, opts ...Option) *SheetsClient {
	c := &SheetsClient{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Deliver posts record. Transport failures and non-2xx answers are errors.
func (c *SheetsClient) Deliver(ctx context.Context, record model.DeliveryRecord) error {
	if c.endpoint == "" {
		return ErrNoEndpoint
	}

	body, contentType, err := encodeForm(record)
	if err != nil {
		return fmt.Errorf("encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to spreadsheet: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Int("fields", len(record.Fields)).
		Dur("duration", time.Since(start)).
		Msg("spreadsheet responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}

func encodeForm(record model.DeliveryRecord) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range record.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
