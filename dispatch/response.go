package dispatch

import "net/http"

// Response is the HTTP-shaped outcome of dispatching an error. It is
// transport-agnostic; the pipeline adapter decides how Body is written
// (JSON for structured bodies, verbatim for strings and byte slices).
type Response struct {
	Status int
	Header http.Header
	Body   any
}

// NewResponse creates a response with the given status and body.
func NewResponse(status int, body any) *Response {
	return &Response{Status: status, Header: make(http.Header), Body: body}
}

// WithHeader sets a header value and returns the receiver.
func (r *Response) WithHeader(key, value string) *Response {
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	r.Header.Set(key, value)
	return r
}
