package redis

import (
	"fmt"
	"strings"

	redigo "github.com/gomodule/redigo/redis"
)

// Kind partitions failures into the categories the dispatch layer cares
// about. The core never maps kinds to transport status codes itself.
type Kind int

const (
	// KindConnection covers network, dial, and auth failures. Not
	// recoverable by retrying inside the client.
	KindConnection Kind = iota

	// KindTimeout is returned when no pooled connection became available
	// before the configured borrow timeout elapsed.
	KindTimeout

	// KindTypeMismatch means the stored value's type disagrees with the
	// requested operation (WRONGTYPE, non-integer increment targets).
	KindTypeMismatch

	// KindScript covers Lua compile and runtime failures inside EVAL.
	KindScript

	// KindNotFound marks an absent key on operations whose callers treat
	// absence as an error. Adapters themselves represent absence with nil.
	KindNotFound

	// KindValidation covers malformed input rejected by the server or
	// caught before a command was issued at all.
	KindValidation
)

// Error pairs a failure kind with its cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error of the given kind.
func NewError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the failure kind from an error returned by this package.
// Unclassified errors are treated as connection failures, the conservative
// default for a client talking over a socket.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}

	return KindConnection
}

// wrapError classifies a raw error from the connection layer. Server reply
// errors are inspected by message prefix, which is the only signal RESP
// gives us.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if e, ok := err.(*Error); ok {
		return e
	}

	if err == ErrNoConnection {
		return &Error{Kind: KindTimeout, Err: err}
	}

	if replyErr, ok := err.(redigo.Error); ok {
		return &Error{Kind: classifyReply(replyErr.Error()), Err: err}
	}

	return &Error{Kind: KindConnection, Err: err}
}

func classifyReply(message string) Kind {
	switch {
	case strings.HasPrefix(message, "WRONGTYPE"),
		strings.Contains(message, "not an integer"),
		strings.Contains(message, "not a valid float"):
		return KindTypeMismatch

	case strings.HasPrefix(message, "NOSCRIPT"),
		strings.Contains(message, "Error compiling script"),
		strings.Contains(message, "Error running script"),
		strings.Contains(message, "user_script"):
		return KindScript
	}

	// Remaining server errors (arity, syntax, out-of-range arguments)
	// indicate a malformed request rather than a server fault.
	return KindValidation
}

// isReplyError reports whether an error is a server error reply rather
// than a connection-level failure. Reply errors leave the connection in a
// usable state.
func isReplyError(err error) bool {
	if e, ok := err.(*Error); ok {
		err = e.Err
	}

	_, ok := err.(redigo.Error)
	return ok
}

func isNoScript(err error) bool {
	if err == nil {
		return false
	}

	if e, ok := err.(*Error); ok {
		err = e.Err
	}

	replyErr, ok := err.(redigo.Error)
	return ok && strings.HasPrefix(replyErr.Error(), "NOSCRIPT")
}
