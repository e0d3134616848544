package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/errdispatch/dispatch"
)

// Decode binds the JSON request body into out. A body that cannot be parsed
// yields a decode-failure tagged error carrying the format name, ready for
// the decode-failure handler.
func Decode(c *gin.Context, out any) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return dispatch.NewError(dispatch.TagDecodeFailure, "malformed request body").
			WithCause(err).
			WithDatum("format", "json")
	}
	return nil
}
