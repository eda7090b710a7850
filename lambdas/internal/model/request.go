package model

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
)

var (
	// ErrMalformedJSON means the request body is not JSON at all.
	ErrMalformedJSON = errors.New("malformed JSON body")

	// ErrInvalidPayload means the body is JSON but not a survey submission.
	ErrInvalidPayload = errors.New("invalid submission payload")
)

// RedactedValue replaces contact details when a payload is logged.
const RedactedValue = "[redacted]"

// SurveyPayload is the JSON body sent by the survey page.
type SurveyPayload struct {
	SurveyResponses SurveyResponses `json:"surveyResponses"`
}

// SurveyResponses maps question ids to answers. Ids are enumerated the way
// the survey page's runtime enumerates object keys: array-index ids ("0",
// "2", "10") first in numeric order, then every other id in the order it
// appeared in the request body.
type SurveyResponses struct {
	order   []string
	answers map[string]Answer
}

// Set stores an answer. Re-setting an existing id keeps its original position.
func (r *SurveyResponses) Set(id string, a Answer) {
	if r.answers == nil {
		r.answers = make(map[string]Answer)
	}
	if _, ok := r.answers[id]; !ok {
		r.order = append(r.order, id)
	}
	r.answers[id] = a
}

// Get returns the answer to question id.
func (r *SurveyResponses) Get(id string) (Answer, bool) {
	a, ok := r.answers[id]
	return a, ok
}

// Keys returns the question ids in enumeration order.
func (r *SurveyResponses) Keys() []string {
	var indexes, names []string
	for _, id := range r.order {
		if _, ok := arrayIndex(id); ok {
			indexes = append(indexes, id)
		} else {
			names = append(names, id)
		}
	}
	slices.SortFunc(indexes, func(a, b string) int {
		x, _ := arrayIndex(a)
		y, _ := arrayIndex(b)
		return cmp.Compare(x, y)
	})
	return append(append(make([]string, 0, len(r.order)), indexes...), names...)
}

// arrayIndex parses canonical array indexes: decimal, no leading zeros,
// below 2^32-1.
func arrayIndex(id string) (uint64, bool) {
	if id == "" || (len(id) > 1 && id[0] == '0') {
		return 0, false
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(id, 10, 32)
	if err != nil || n == 1<<32-1 {
		return 0, false
	}
	return n, true
}

// Len returns the number of answered questions.
func (r *SurveyResponses) Len() int {
	return len(r.order)
}

// Redacted returns a copy with the given fields masked, for logging.
func (r *SurveyResponses) Redacted(ids ...string) SurveyResponses {
	var out SurveyResponses
	for _, id := range r.order {
		out.Set(id, r.answers[id])
	}
	for _, id := range ids {
		if _, ok := out.answers[id]; ok {
			out.answers[id] = Scalar(RedactedValue)
		}
	}
	return out
}

func (r SurveyResponses) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range r.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.answers[id])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *SurveyResponses) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: surveyResponses must be an object", ErrInvalidPayload)
	}

	var out SurveyResponses
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: unexpected token %v", ErrInvalidPayload, tok)
		}

		var a Answer
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("answer %q: %w", id, err)
		}
		out.Set(id, a)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = out
	return nil
}

// DecodeSurveyPayload parses a request body. It returns ErrMalformedJSON when
// the body is not valid JSON and ErrInvalidPayload when it is valid JSON
// without a surveyResponses object.
func DecodeSurveyPayload(body []byte) (*SurveyPayload, error) {
	if !json.Valid(body) {
		return nil, ErrMalformedJSON
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	raw, ok := envelope["surveyResponses"]
	if !ok {
		return nil, fmt.Errorf("%w: surveyResponses is missing", ErrInvalidPayload)
	}

	var payload SurveyPayload
	if err := payload.SurveyResponses.UnmarshalJSON(raw); err != nil {
		if errors.Is(err, ErrInvalidPayload) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	return &payload, nil
}
