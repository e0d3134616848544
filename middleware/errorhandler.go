package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/errdispatch/config"
	"github.com/kbukum/errdispatch/dispatch"
	"github.com/kbukum/errdispatch/logger"
)

// ErrorHandler returns a Gin middleware that dispatches the last error
// collected on the context and writes the outcome. A handler-returned
// replacement error re-enters dispatch, bounded by cfg.RedispatchLimit.
// A *dispatch.ConfigurationError is never silently defaulted: it is logged
// and surfaces as a bare 500.
func ErrorHandler(d *dispatch.Dispatcher, cfg config.Dispatch, log *logger.Logger) gin.HandlerFunc {
	if cfg.RedispatchLimit < 1 {
		cfg.RedispatchLimit = 4
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent("dispatch")

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		handleError(c, c.Errors.Last().Err, d, cfg, log)
	}
}

// handleError runs the dispatch cycle for err and writes the result.
func handleError(c *gin.Context, err error, d *dispatch.Dispatcher, cfg config.Dispatch, log *logger.Logger) {
	current := err
	for i := 0; i < cfg.RedispatchLimit; i++ {
		outcome, confErr := d.Dispatch(current, c.Request)
		if confErr != nil {
			log.Error("Dispatch misconfigured", map[string]any{
				"error":      confErr.Error(),
				"request_id": c.GetString("request_id"),
			})
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "error handling misconfigured",
			})
			return
		}
		if outcome.Response != nil {
			writeResponse(c, outcome.Response)
			return
		}
		current = outcome.Err
	}

	log.Error("Re-dispatch limit exhausted", map[string]any{
		"limit":      cfg.RedispatchLimit,
		"error":      current.Error(),
		"request_id": c.GetString("request_id"),
	})
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": "unresolvable error",
	})
}

// writeResponse writes a dispatch response onto the Gin context. String and
// byte bodies go out verbatim, everything else as JSON. An explicit
// Content-Type on the response wins over the per-branch defaults.
func writeResponse(c *gin.Context, resp *dispatch.Response) {
	for key, values := range resp.Header {
		// Content-Type is set by the body writers below.
		if http.CanonicalHeaderKey(key) == "Content-Type" {
			continue
		}
		for _, v := range values {
			c.Writer.Header().Add(key, v)
		}
	}

	switch body := resp.Body.(type) {
	case nil:
		c.Status(resp.Status)
	case string:
		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "text/plain"
		}
		c.Data(resp.Status, contentType, []byte(body))
	case []byte:
		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Data(resp.Status, contentType, body)
	default:
		if contentType := resp.Header.Get("Content-Type"); contentType != "" {
			if data, err := json.Marshal(body); err == nil {
				c.Data(resp.Status, contentType, data)
				break
			}
		}
		c.JSON(resp.Status, body)
	}
	c.Abort()
}
