package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/kbukum/errdispatch/dispatch"
	"github.com/kbukum/errdispatch/logger"
	"github.com/kbukum/errdispatch/typechain"
)

// Encoder renders the structured payload of a validation failure into a
// response body. The default encoder wraps the payload under "problems".
type Encoder func(payload any) any

func defaultEncoder(payload any) any {
	return map[string]any{"problems": payload}
}

type options struct {
	encoder Encoder
	wrap    dispatch.Wrap
}

// Option customizes DefaultRegistry.
type Option func(*options)

// WithEncoder replaces the structured-error encoder used by the validation
// handlers.
func WithEncoder(enc Encoder) Option {
	return func(o *options) { o.encoder = enc }
}

// WithLogging installs LogWrap as the registry's wrap. includeTrace is
// typically config.Dispatch.IncludeTrace.
func WithLogging(log *logger.Logger, includeTrace bool) Option {
	return func(o *options) { o.wrap = LogWrap(log, includeTrace) }
}

// DefaultRegistry builds a registry preloaded with the default handler set.
// Overlay caller entries with Registry.Merge.
func DefaultRegistry(opts ...Option) *dispatch.Registry {
	o := options{encoder: defaultEncoder}
	for _, opt := range opts {
		opt(&o)
	}

	registry := dispatch.NewRegistry().
		Default(Default).
		On(dispatch.TagResponse, ResponsePassthrough).
		On(dispatch.TagDecodeFailure, DecodeFailure).
		On(dispatch.TagRequestValidation, RequestValidationFailure(o.encoder)).
		On(dispatch.TagResponseValidation, ResponseValidationFailure(o.encoder)).
		On(dispatch.TagAuthFailure, AuthFailure)
	if o.wrap != nil {
		registry = registry.Wrap(o.wrap)
	}
	return registry
}

// Default builds a generic 500 response naming the error's runtime type and
// carrying a fresh incident id. It never fails.
func Default(err error, req *http.Request) (*dispatch.Response, error) {
	typeName := "unknown"
	if desc := typechain.DescriptorOf(err); desc != nil {
		typeName = desc.String()
	}
	return dispatch.NewResponse(http.StatusInternalServerError, map[string]any{
		"type":        typeName,
		"message":     err.Error(),
		"incident_id": uuid.NewString(),
	}), nil
}

// ResponsePassthrough returns the response embedded in the error verbatim.
// An error tagged as a response without an embedded payload is replaced by
// a plainer error so the pipeline re-dispatches to the default handler.
func ResponsePassthrough(err error, req *http.Request) (*dispatch.Response, error) {
	var dispErr *dispatch.Error
	if errors.As(err, &dispErr) && dispErr.Response != nil {
		return dispErr.Response, nil
	}
	// Deliberately not wrapped: the replacement must shed the response tag
	// so re-dispatch falls through to the default handler.
	return nil, fmt.Errorf("response-tagged error without embedded response: %v", err)
}

// DecodeFailure builds a 400 plain-text response naming the request format
// that could not be parsed.
func DecodeFailure(err error, req *http.Request) (*dispatch.Response, error) {
	format := "unknown"
	var dispErr *dispatch.Error
	if errors.As(err, &dispErr) {
		if f, ok := dispErr.Data["format"].(string); ok && f != "" {
			format = f
		}
	}
	resp := dispatch.NewResponse(http.StatusBadRequest, fmt.Sprintf("Malformed %q request.", format))
	return resp.WithHeader("Content-Type", "text/plain"), nil
}

// RequestValidationFailure builds a 400 response encoding the structured
// field problems through enc.
func RequestValidationFailure(enc Encoder) dispatch.Handler {
	return validationFailure(enc, http.StatusBadRequest)
}

// ResponseValidationFailure builds a 500 response encoding the structured
// field problems through enc.
func ResponseValidationFailure(enc Encoder) dispatch.Handler {
	return validationFailure(enc, http.StatusInternalServerError)
}

func validationFailure(enc Encoder, status int) dispatch.Handler {
	return func(err error, req *http.Request) (*dispatch.Response, error) {
		var payload any
		var dispErr *dispatch.Error
		if errors.As(err, &dispErr) {
			payload = dispErr.Data["problems"]
		}
		return dispatch.NewResponse(status, enc(payload)), nil
	}
}
