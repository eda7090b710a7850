// Package errs defines the closed set of failures a submission can end in.
//
// Each Kind carries the HTTP status and the client-facing message it maps
// to, so the handler never assembles status/message pairs by hand.
package errs

import (
	"errors"
	"net/http"
	"strings"
)

// Kind is one failure category of the submission pipeline.
type Kind int

const (
	// Unprocessable covers unparseable bodies and anything unexpected.
	Unprocessable Kind = iota
	MethodNotAllowed
	InvalidFormat
	MissingContact
	InvalidEmail
	DeliveryFailed
)

// Kinds lists every Kind, in declaration order.
var Kinds = []Kind{Unprocessable, MethodNotAllowed, InvalidFormat, MissingContact, InvalidEmail, DeliveryFailed}

type kindInfo struct {
	status  int
	message string
}

var kindTable = map[Kind]kindInfo{
	Unprocessable:    {http.StatusInternalServerError, "Failed to process submission. Check request format."},
	MethodNotAllowed: {http.StatusMethodNotAllowed, "Method Not Allowed"},
	InvalidFormat:    {http.StatusBadRequest, "Invalid submission data format."},
	MissingContact:   {http.StatusUnprocessableEntity, "Veuillez fournir votre nom, email et numéro de téléphone pour participer aux concours/tests de produits."},
	InvalidEmail:     {http.StatusUnprocessableEntity, "Le format de l'email est invalide."},
	DeliveryFailed:   {http.StatusInternalServerError, "Failed to save to database."},
}

// Status is the HTTP status code returned for k.
func (k Kind) Status() int {
	if info, ok := kindTable[k]; ok {
		return info.status
	}
	return kindTable[Unprocessable].status
}

// Message is the client-facing text returned for k.
func (k Kind) Message() string {
	if info, ok := kindTable[k]; ok {
		return info.message
	}
	return kindTable[Unprocessable].message
}

// String returns a stable machine code, e.g. "INVALID_FORMAT".
func (k Kind) String() string {
	switch k {
	case MethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case InvalidFormat:
		return "INVALID_FORMAT"
	case MissingContact:
		return "MISSING_CONTACT"
	case InvalidEmail:
		return "INVALID_EMAIL"
	case DeliveryFailed:
		return "DELIVERY_FAILED"
	default:
		return "UNPROCESSABLE"
	}
}

// Error is a pipeline failure of a given Kind with an optional cause.
// The cause is for logs only and never reaches the client.
type Error struct {
	Kind Kind
	Err  error
}

// New wraps cause (which may be nil) in an Error of kind k.
func New(k Kind, cause error) *Error {
	return &Error{Kind: k, Err: cause}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return strings.ToLower(e.Kind.String())
	}
	return strings.ToLower(e.Kind.String()) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or
// Unprocessable if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unprocessable
}
