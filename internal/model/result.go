package model

import "fmt"

type FailureKind int

const (
	FailureNone FailureKind = iota
	// FailureLocal is a rejection before any network call.
	FailureLocal
	// FailureTransport covers unreachable server and malformed responses.
	FailureTransport
	// FailureServer is an explicit success=false from the server.
	FailureServer
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureLocal:
		return "local"
	case FailureTransport:
		return "transport"
	case FailureServer:
		return "server"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// Result is the normalized outcome of a core operation. A successful result
// carries data and the server message, a failed one carries only the kind
// and a user-facing message.
type Result[T any] struct {
	data    T
	message string
	failure FailureKind
	cause   error
}

func Success[T any](message string, data T) Result[T] {
	return Result[T]{data: data, message: message}
}

func Failure[T any](kind FailureKind, message string) Result[T] {
	return Result[T]{failure: kind, message: message}
}

// Rejected builds a local failure keeping cause for errors.Is checks.
func Rejected[T any](cause error, message string) Result[T] {
	return Result[T]{failure: FailureLocal, message: message, cause: cause}
}

// Forward re-types a failed result.
func Forward[T any, U any](r Result[U]) Result[T] {
	return Result[T]{failure: r.failure, message: r.message, cause: r.cause}
}

func (r Result[T]) OK() bool {
	return r.failure == FailureNone
}

func (r Result[T]) Message() string {
	return r.message
}

func (r Result[T]) Data() T {
	return r.data
}

func (r Result[T]) Kind() FailureKind {
	return r.failure
}

func (r Result[T]) Err() error {
	if r.OK() {
		return nil
	}
	return &ResultError{Kind: r.failure, Message: r.message, cause: r.cause}
}

type ResultError struct {
	Kind    FailureKind
	Message string
	cause   error
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("%v failure: %s", e.Kind, e.Message)
}

func (e *ResultError) Unwrap() error {
	return e.cause
}
