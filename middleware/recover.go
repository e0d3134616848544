package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/errdispatch/config"
	"github.com/kbukum/errdispatch/dispatch"
	"github.com/kbukum/errdispatch/logger"
)

// Recover returns a Gin middleware that converts panics into panic-tagged
// dispatch errors and resolves them through the same engine as collected
// errors. Register a handler on dispatch.TagPanic to customize the response.
func Recover(d *dispatch.Dispatcher, cfg config.Dispatch, log *logger.Logger) gin.HandlerFunc {
	if cfg.RedispatchLimit < 1 {
		cfg.RedispatchLimit = 4
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent("dispatch")

	return func(c *gin.Context) {
		defer func() {
			if rv := recover(); rv != nil {
				err := dispatch.NewError(dispatch.TagPanic, fmt.Sprintf("panic: %v", rv))
				handleError(c, err, d, cfg, log)
			}
		}()
		c.Next()
	}
}
