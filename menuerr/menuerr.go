// Package menuerr defines the failure taxonomy of the menu extraction
// pipeline and its mapping onto HTTP status codes.
package menuerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies where in the pipeline a request failed.
type Kind string

const (
	// KindInvalidInput rejects a malformed URL at the boundary, before the
	// pipeline runs.
	KindInvalidInput Kind = "invalid_input"

	// KindFetchNotFound means the origin page responded 404.
	KindFetchNotFound Kind = "fetch_not_found"

	// KindFetchTimeout means the origin page was too slow (client deadline
	// or origin 504).
	KindFetchTimeout Kind = "fetch_timeout"

	// KindFetchUpstream covers any other fetch failure: non-2xx status,
	// DNS or connection errors.
	KindFetchUpstream Kind = "fetch_upstream"

	// KindUnsupportedMedia means the declared content type has no extractor.
	KindUnsupportedMedia Kind = "unsupported_media"

	// KindUnprocessableContent means OCR/PDF extraction produced too little
	// text to be usable.
	KindUnprocessableContent Kind = "unprocessable_content"

	// KindSubserviceTimeout means an OCR/PDF call exceeded its deadline.
	KindSubserviceTimeout Kind = "subservice_timeout"

	// KindSubserviceUnavailable means an OCR/PDF call failed in transport
	// (connection refused, non-2xx).
	KindSubserviceUnavailable Kind = "subservice_unavailable"

	// KindAIProtocol means the model responded, but not through the
	// required tool call, or its arguments did not parse.
	KindAIProtocol Kind = "ai_protocol"

	// KindAIService means the LLM provider returned an API-level error
	// (auth, rate limit, provider 5xx).
	KindAIService Kind = "ai_service"

	// KindInternal is anything uncategorized.
	KindInternal Kind = "internal"
)

// Error carries a taxonomy kind alongside the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	// Status overrides the kind's default HTTP status when non-zero.
	// Used for provider errors that carry their own status code.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a taxonomy error without an underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a taxonomy error around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Classify returns the taxonomy kind of err, or KindInternal when err does
// not carry one.
func Classify(err error) Kind {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind
	}
	return KindInternal
}

// HTTPStatus maps err to the response status for the inbound API.
func HTTPStatus(err error) int {
	var me *Error
	if errors.As(err, &me) {
		if me.Status != 0 {
			return me.Status
		}
		return me.Kind.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// HTTPStatus returns the default response status for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindFetchNotFound:
		return http.StatusNotFound
	case KindFetchTimeout, KindSubserviceTimeout:
		return http.StatusGatewayTimeout
	case KindFetchUpstream, KindSubserviceUnavailable:
		return http.StatusBadGateway
	case KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case KindUnprocessableContent:
		return http.StatusUnprocessableEntity
	case KindAIProtocol, KindAIService, KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
