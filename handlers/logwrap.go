package handlers

import (
	"errors"
	"net/http"

	"github.com/kbukum/errdispatch/dispatch"
	"github.com/kbukum/errdispatch/logger"
)

// LogWrap returns a wrap that writes one timestamped line per dispatched
// error (method, target, message) plus the captured trace when includeTrace
// is set, then delegates to the resolved handler.
func LogWrap(log *logger.Logger, includeTrace bool) dispatch.Wrap {
	return func(next dispatch.Handler, err error, req *http.Request) (*dispatch.Response, error) {
		fields := map[string]any{
			"method": req.Method,
			"target": req.URL.RequestURI(),
		}
		if includeTrace {
			var dispErr *dispatch.Error
			if errors.As(err, &dispErr) && len(dispErr.Stack) > 0 {
				fields["trace"] = string(dispErr.Stack)
			}
		}
		log.Error(err.Error(), fields)

		return next(err, req)
	}
}

// Compose chains wraps so the first one listed runs outermost.
func Compose(wraps ...dispatch.Wrap) dispatch.Wrap {
	return func(next dispatch.Handler, err error, req *http.Request) (*dispatch.Response, error) {
		wrapped := next
		for i := len(wraps) - 1; i >= 0; i-- {
			wrap := wraps[i]
			inner := wrapped
			wrapped = func(e error, r *http.Request) (*dispatch.Response, error) {
				return wrap(inner, e, r)
			}
		}
		return wrapped(err, req)
	}
}
