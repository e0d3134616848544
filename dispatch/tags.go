package dispatch

import "github.com/kbukum/errdispatch/hierarchy"

// Well-known tags consumed by the default handler set. Callers may derive
// their own tags from these to inherit the default behavior.
const (
	// TagResponse marks errors carrying a precomputed response to return
	// verbatim.
	TagResponse hierarchy.Tag = "response"
	// TagDecodeFailure marks request bodies that could not be parsed.
	TagDecodeFailure hierarchy.Tag = "decode-failure"
	// TagRequestValidation marks structurally invalid request payloads.
	TagRequestValidation hierarchy.Tag = "request-validation"
	// TagResponseValidation marks handler output failing response validation.
	TagResponseValidation hierarchy.Tag = "response-validation"
	// TagAuthFailure marks authentication and authorization failures.
	TagAuthFailure hierarchy.Tag = "auth-failure"
	// TagPanic marks errors recovered from handler panics.
	TagPanic hierarchy.Tag = "panic"
)
