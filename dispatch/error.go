package dispatch

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/kbukum/errdispatch/hierarchy"
)

// Tagged is implemented by errors that carry a dispatch tag in their
// structured payload.
type Tagged interface {
	DispatchTag() hierarchy.Tag
}

// Error is the standard dispatchable application error. Any Go error can be
// dispatched; Error additionally carries a tag, structured data, an optional
// embedded response, and a diagnostic trace captured at construction.
type Error struct {
	// Tag participates in the tag hierarchy. Empty means untagged.
	Tag hierarchy.Tag
	// Message is the human-readable description.
	Message string
	// Data carries structured payload consumed by handlers.
	Data map[string]any
	// Response is an optional embedded response returned verbatim by the
	// passthrough handler.
	Response *Response
	// Cause is the underlying error, if any.
	Cause error
	// Stack is the diagnostic trace captured when the error was created.
	Stack []byte
}

// NewError creates a tagged error and captures the current stack trace.
func NewError(tag hierarchy.Tag, message string) *Error {
	return &Error{
		Tag:     tag,
		Message: message,
		Stack:   debug.Stack(),
	}
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	switch {
	case e.Tag != "" && e.Cause != nil:
		return fmt.Sprintf("[%s] %s: %v", e.Tag, e.Message, e.Cause)
	case e.Tag != "":
		return fmt.Sprintf("[%s] %s", e.Tag, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	default:
		return e.Message
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// DispatchTag returns the error's tag.
func (e *Error) DispatchTag() hierarchy.Tag { return e.Tag }

// WithData merges the provided entries into the error's data and returns
// the receiver.
func (e *Error) WithData(data map[string]any) *Error {
	if e.Data == nil {
		e.Data = make(map[string]any, len(data))
	}
	for k, v := range data {
		e.Data[k] = v
	}
	return e
}

// WithDatum sets a single data entry and returns the receiver.
func (e *Error) WithDatum(key string, value any) *Error {
	if e.Data == nil {
		e.Data = make(map[string]any)
	}
	e.Data[key] = value
	return e
}

// WithResponse embeds a response payload and returns the receiver.
func (e *Error) WithResponse(resp *Response) *Error {
	e.Response = resp
	return e
}

// WithCause sets the underlying cause and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// TagOf extracts the dispatch tag of err, if it carries one anywhere in its
// wrap chain.
func TagOf(err error) (hierarchy.Tag, bool) {
	var tagged Tagged
	if errors.As(err, &tagged) {
		if tag := tagged.DispatchTag(); tag != "" {
			return tag, true
		}
	}
	return "", false
}
