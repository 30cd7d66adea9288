package common

import (
	"errors"

	"github.com/tkwed/tours-api/internal/db"
)

// Kind tags how a failed request is reported to the client.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalid
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalid:
		return "invalid"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error is the result handlers attach to the gin context instead of writing
// an error response themselves.
type Error struct {
	Kind Kind
	// Prefix is prepended to the cause when the message is shown to clients.
	Prefix string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Prefix
	}
	if e.Prefix == "" {
		return e.Err.Error()
	}
	return e.Prefix + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Invalid reports a malformed request.
func Invalid(err error) *Error { return &Error{Kind: KindInvalid, Err: err} }

// FromStore classifies an error returned by the db package. prefix is kept
// only for internal failures, where the raw store message reaches the client.
func FromStore(err error, prefix string) *Error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return &Error{Kind: KindNotFound, Err: err}
	case errors.Is(err, db.ErrUnavailable):
		return &Error{Kind: KindUnavailable, Err: err}
	default:
		return &Error{Kind: KindInternal, Prefix: prefix, Err: err}
	}
}

// KindOf returns the kind carried by err, or KindInternal for untagged errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
