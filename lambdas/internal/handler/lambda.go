package handler

import (
	"context"
	"encoding/base64"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

// HandleAPIGateway is the Lambda entrypoint. Netlify Functions deliver the
// same API Gateway proxy event to Go functions.
func (h *SubmissionHandler) HandleAPIGateway(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req := Request{
		Method:    event.HTTPMethod,
		Body:      []byte(event.Body),
		RequestID: invocationID(ctx, event),
	}

	if event.IsBase64Encoded {
		body, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			h.logger.Warn().Err(err).Str("submission_id", req.RequestID).Msg("could not decode base64 body")
			body = nil
		}
		req.Body = body
	}

	res := h.Handle(ctx, req)

	return events.APIGatewayProxyResponse{
		StatusCode: res.StatusCode,
		Headers:    res.Headers(),
		Body:       string(res.Body),
	}, nil
}

// invocationID prefers the Lambda request id, then the API Gateway one.
func invocationID(ctx context.Context, event events.APIGatewayProxyRequest) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return event.RequestContext.RequestID
}
