package domain

import "errors"

// Kind classifies a failure for the transport boundary. The set is closed:
// every error leaving the application layer maps to exactly one Kind.
type Kind uint8

const (
	KindInternal Kind = iota
	KindInvalid
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a classified error whose message is safe to show to clients.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Is reports whether target is an *Error of the same Kind, so a specific
// message still matches the sentinel of its kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalid      = &Error{Kind: KindInvalid, Msg: "invalid request"}
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Msg: "unauthorized"}
	ErrForbidden    = &Error{Kind: KindForbidden, Msg: "forbidden"}
	ErrNotFound     = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrConflict     = &Error{Kind: KindConflict, Msg: "already exists"}
)

// Invalid returns a KindInvalid error with the given message.
func Invalid(msg string) error { return &Error{Kind: KindInvalid, Msg: msg} }

// Unauthorized returns a KindUnauthorized error with the given message.
func Unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Msg: msg} }

// NotFound returns a KindNotFound error with the given message.
func NotFound(msg string) error { return &Error{Kind: KindNotFound, Msg: msg} }

// Conflict returns a KindConflict error with the given message.
func Conflict(msg string) error { return &Error{Kind: KindConflict, Msg: msg} }

// KindOf returns the Kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
