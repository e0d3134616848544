package handlers

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/errdispatch/dispatch"
)

// TraceWrap returns a wrap that records the dispatched error on the active
// span before delegating. Without a recording span it is a passthrough.
func TraceWrap() dispatch.Wrap {
	return func(next dispatch.Handler, err error, req *http.Request) (*dispatch.Response, error) {
		span := trace.SpanFromContext(req.Context())
		if span.IsRecording() {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if tag, ok := dispatch.TagOf(err); ok {
				span.SetAttributes(attribute.String("error.tag", string(tag)))
			}
		}
		return next(err, req)
	}
}
