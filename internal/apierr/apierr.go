// Package apierr defines the error kinds surfaced by the btcdash HTTP API
// and their mapping onto HTTP status codes.
package apierr

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies an error for the API caller.
type Kind byte

// Error kinds.
const (
	Unknown Kind = iota
	UpstreamUnavailable
	UpstreamDataMissing
	InvalidArgument
	NotImplemented
	RateLimited
)

func (k Kind) String() string {
	switch k {
	case UpstreamUnavailable:
		return "UpstreamUnavailable"
	case UpstreamDataMissing:
		return "UpstreamDataMissing"
	case InvalidArgument:
		return "InvalidArgument"
	case NotImplemented:
		return "NotImplemented"
	case RateLimited:
		return "RateLimited"
	default:
		return "Internal"
	}
}

// HTTPStatus is the response status code used for errors of kind k.
func (k Kind) HTTPStatus() int {
	switch k {
	case UpstreamUnavailable, UpstreamDataMissing:
		return http.StatusBadGateway
	case InvalidArgument:
		return http.StatusBadRequest
	case NotImplemented:
		return http.StatusNotImplemented
	case RateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is an error tagged with a Kind.
type Error struct {
	Kind  Kind
	Msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.cause)
}

// Cause returns the underlying error, if any.
func (e *Error) Cause() error { return e.cause }

// Unwrap supports errors.Is and errors.As of the standard library.
func (e *Error) Unwrap() error { return e.cause }

// New returns an error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf returns an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap tags err with the given kind. It returns nil if err is nil.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, cause: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(kind Kind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), cause: err}
}

// KindOf returns the kind of the outermost *Error found in the chain of err,
// or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
