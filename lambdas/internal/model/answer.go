package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AnswerKind tells which side of the Answer union is populated.
type AnswerKind int

const (
	KindScalar AnswerKind = iota
	KindSequence
)

// ErrUnsupportedAnswer is returned when an answer is not a JSON value.
var ErrUnsupportedAnswer = errors.New("unsupported answer shape")

// objectText is how the survey page's runtime prints a plain object.
const objectText = "[object Object]"

// valueType is the JSON type an answer was decoded from.
type valueType int

const (
	typeString valueType = iota
	typeNumber
	typeBool
	typeNull
	typeObject
	typeList
)

// Answer is a single survey answer: either one string or an ordered list of
// strings for multi-select questions.
type Answer struct {
	kind   AnswerKind
	scalar string
	values []string
	source valueType
}

// Scalar builds a single-value answer.
func Scalar(s string) Answer {
	return Answer{kind: KindScalar, scalar: s, source: typeString}
}

// Sequence builds a multi-select answer.
func Sequence(values ...string) Answer {
	if values == nil {
		values = []string{}
	}
	return Answer{kind: KindSequence, values: values, source: typeList}
}

// Kind returns KindScalar or KindSequence.
func (a Answer) Kind() AnswerKind { return a.kind }

// IsNull reports whether the answer was a JSON null. It still flattens to
// "null" but never satisfies a required field.
func (a Answer) IsNull() bool { return a.source == typeNull }

// IsText reports whether the answer was a JSON string.
func (a Answer) IsText() bool { return a.source == typeString }

// Truthy reports whether the answer counts as given: lists and objects
// always do, strings when non-empty, numbers when non-zero, booleans when true.
func (a Answer) Truthy() bool {
	switch a.source {
	case typeString:
		return a.scalar != ""
	case typeNumber:
		return a.scalar != "0" && a.scalar != "NaN"
	case typeBool:
		return a.scalar == "true"
	case typeNull:
		return false
	default:
		return true
	}
}

// Scalar returns the single value and true when a is a scalar answer.
func (a Answer) Scalar() (string, bool) {
	if a.kind != KindScalar {
		return "", false
	}
	return a.scalar, true
}

// Values returns the selected options and true when a is a sequence answer.
func (a Answer) Values() ([]string, bool) {
	if a.kind != KindSequence {
		return nil, false
	}
	return a.values, true
}

// Flatten renders the answer as the single string sent to the spreadsheet.
func (a Answer) Flatten() string {
	if a.kind == KindSequence {
		return strings.Join(a.values, SequenceSeparator)
	}
	return a.scalar
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.kind == KindSequence {
		return json.Marshal(a.values)
	}
	return json.Marshal(a.scalar)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("%w: empty value", ErrUnsupportedAnswer)
	}

	if data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("%w: %w", ErrUnsupportedAnswer, err)
		}
		values := make([]string, 0, len(raw))
		for i, item := range raw {
			v, err := elementText(item)
			if err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			values = append(values, v)
		}
		*a = Sequence(values...)
		return nil
	}

	v, err := valueText(data)
	if err != nil {
		return err
	}
	*a = Answer{kind: KindScalar, scalar: v, source: typeOf(data)}
	return nil
}

func typeOf(data []byte) valueType {
	switch data[0] {
	case '"':
		return typeString
	case '{':
		return typeObject
	case '[':
		return typeList
	case 't', 'f':
		return typeBool
	case 'n':
		return typeNull
	default:
		return typeNumber
	}
}

// valueText converts any JSON value to the text a form field receives when
// that value is appended to it.
func valueText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty value", ErrUnsupportedAnswer)
	}

	switch typeOf(data) {
	case typeString:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", fmt.Errorf("%w: %w", ErrUnsupportedAnswer, err)
		}
		return s, nil
	case typeObject:
		if !json.Valid(data) {
			return "", fmt.Errorf("%w: invalid object", ErrUnsupportedAnswer)
		}
		return objectText, nil
	case typeList:
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return "", fmt.Errorf("%w: %w", ErrUnsupportedAnswer, err)
		}
		parts := make([]string, 0, len(raw))
		for _, item := range raw {
			v, err := elementText(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, v)
		}
		return strings.Join(parts, ","), nil
	case typeNumber:
		return numberText(data)
	default:
		if !json.Valid(data) {
			return "", fmt.Errorf("%w: invalid literal %q", ErrUnsupportedAnswer, data)
		}
		return string(data), nil
	}
}

// elementText is valueText for list elements, where null reads as empty.
func elementText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	return valueText(data)
}

// numberText prints a JSON number in its shortest round-trip form: plain
// decimals from 1e-6 up to 1e21, exponent notation outside that range.
func numberText(data []byte) (string, error) {
	if !json.Valid(data) {
		return "", fmt.Errorf("%w: invalid number %q", ErrUnsupportedAnswer, data)
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil && !math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: %w", ErrUnsupportedAnswer, err)
	}

	switch {
	case math.IsInf(f, 1):
		return "Infinity", nil
	case math.IsInf(f, -1):
		return "-Infinity", nil
	case f == 0:
		return "0", nil
	}

	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + exp, nil
}
