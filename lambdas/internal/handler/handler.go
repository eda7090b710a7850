// Package handler implements the survey submission function.
//
// SubmissionHandler runs a fixed pipeline: method check, payload decoding,
// opt-in contact validation, delivery to the spreadsheet, response. Every
// failure ends the pipeline with the status and message of its errs.Kind.
// Platform adapters (Lambda/Netlify, echo) translate their own request types
// into Request and back.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sh3r4rd/survey_submissions/internal/delivery"
	"github.com/sh3r4rd/survey_submissions/internal/errs"
	"github.com/sh3r4rd/survey_submissions/internal/model"
	"github.com/sh3r4rd/survey_submissions/internal/validation"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain; charset=utf-8"
)

// Request is a platform-neutral view of one invocation.
type Request struct {
	Method string
	Body   []byte

	// RequestID is the platform invocation id, reported back as submissionId.
	RequestID string
}

// Result is the response of one invocation.
type Result struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Headers returns the response headers for r.
func (r Result) Headers() map[string]string {
	return map[string]string{"Content-Type": r.ContentType}
}

// SubmissionHandler validates survey submissions and forwards them to the
// spreadsheet. It keeps no state between invocations.
type SubmissionHandler struct {
	deliverer delivery.Deliverer
	validator *validation.OptInValidator
	logger    zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// Option configures a SubmissionHandler.
type Option func(*SubmissionHandler)

// WithLogger sets the logger for submission outcomes.
func WithLogger(l zerolog.Logger) Option {
	return func(h *SubmissionHandler) {
		h.logger = l.With().Str("component", "submit_survey").Logger()
	}
}

// WithClock sets the source of delivery timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *SubmissionHandler) {
		h.now = now
	}
}

// WithIDGenerator sets the submission id used when the platform gives none.
func WithIDGenerator(newID func() string) Option {
	return func(h *SubmissionHandler) {
		h.newID = newID
	}
}

// New returns a handler that forwards valid submissions to deliverer.
func New(deliverer delivery.Deliverer, opts ...Option) *SubmissionHandler {
	h := &SubmissionHandler{
		deliverer: deliverer,
		validator: validation.New(),
		logger:    zerolog.Nop(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle runs one submission to completion. It never panics.
func (h *SubmissionHandler) Handle(ctx context.Context, req Request) (res Result) {
	if req.RequestID == "" {
		req.RequestID = h.newID()
	}
	logger := h.logger.With().Str("submission_id", req.RequestID).Logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("submission failed unexpectedly")
			res = errorResult(errs.Unprocessable)
		}
	}()

	if err := h.submit(ctx, logger, req); err != nil {
		kind := errs.KindOf(err)

		event := logger.Warn()
		if kind.Status() >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.Err(err).
			Str("kind", kind.String()).
			Int("status", kind.Status()).
			Msg("submission rejected")

		return errorResult(kind)
	}

	return jsonResult(http.StatusOK, model.SubmitResponse{
		Message:      model.SubmitSuccessMessage,
		SubmissionID: req.RequestID,
	})
}

func (h *SubmissionHandler) submit(ctx context.Context, logger zerolog.Logger, req Request) error {
	if req.Method != http.MethodPost {
		return errs.New(errs.MethodNotAllowed, errors.New("method "+req.Method))
	}

	payload, err := model.DecodeSurveyPayload(req.Body)
	switch {
	case errors.Is(err, model.ErrMalformedJSON):
		return errs.New(errs.Unprocessable, err)
	case err != nil:
		return errs.New(errs.InvalidFormat, err)
	}
	responses := &payload.SurveyResponses

	if err := h.validator.Validate(responses); err != nil {
		return err
	}

	record := model.NewDeliveryRecord(responses, h.now())
	if err := h.deliverer.Deliver(ctx, record); err != nil {
		return errs.New(errs.DeliveryFailed, err)
	}

	event := logger.Info().
		Int("questions", responses.Len()).
		Bool("opted_in", validation.HasOptedIn(responses))
	if at, ok := record.Get(model.FieldTimestamp); ok {
		event = event.Str("delivered_at", at)
	}
	if logged, err := json.Marshal(responses.Redacted(model.FieldOptInName, model.FieldOptInEmail, model.FieldOptInPhone)); err == nil {
		event = event.RawJSON("responses", logged)
	}
	event.Msg("survey submission delivered")

	return nil
}

func errorResult(kind errs.Kind) Result {
	if kind == errs.MethodNotAllowed {
		return Result{
			StatusCode:  kind.Status(),
			ContentType: contentTypeText,
			Body:        []byte(kind.Message()),
		}
	}
	return jsonResult(kind.Status(), model.ErrorResponse{Error: kind.Message()})
}

func jsonResult(status int, v any) Result {
	body, err := json.Marshal(v)
	if err != nil {
		return Result{
			StatusCode:  http.StatusInternalServerError,
			ContentType: contentTypeJSON,
			Body:        []byte(`{"error":"` + errs.Unprocessable.Message() + `"}`),
		}
	}
	return Result{StatusCode: status, ContentType: contentTypeJSON, Body: body}
}
