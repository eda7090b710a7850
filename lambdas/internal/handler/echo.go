package handler

import (
	"io"

	"github.com/labstack/echo/v4"
)

// FunctionPath is where Netlify serves the function, kept for local runs.
const FunctionPath = "/.netlify/functions/submit-survey"

// Register mounts the handler for every method so non-POST requests reach
// the 405 branch instead of the router's.
func (h *SubmissionHandler) Register(e *echo.Echo) {
	e.Any(FunctionPath, h.HandleEcho)
}

// HandleEcho serves the function over plain HTTP. The submission id is the
// X-Request-Id set by the request id middleware, when installed.
func (h *SubmissionHandler) HandleEcho(c echo.Context) error {
	r := c.Request()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Warn().Err(err).Msg("could not read request body")
		body = nil
	}

	res := h.Handle(r.Context(), Request{
		Method:    r.Method,
		Body:      body,
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	})

	return c.Blob(res.StatusCode, res.ContentType, res.Body)
}
