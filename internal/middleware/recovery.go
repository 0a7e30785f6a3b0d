package middleware

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/gin-gonic/gin"

	apperrors "budgetplaner/internal/errors"
	"budgetplaner/internal/logger"
)

// Recovery returns a Gin middleware that turns panics into the JSON
// INTERNAL_ERROR response. A client that disconnected mid-response is only
// logged at warn level; nothing is written back to it.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}

			if isClientGone(err) {
				logger.Get().Warnw("client disconnected",
					"error", err.Error(),
					"path", c.Request.URL.Path,
				)
				c.Abort()
				return
			}

			logger.Get().Errorw("panic recovered",
				"error", err.Error(),
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"request_id", RequestID(c),
			)
			abortWithError(c, apperrors.ErrInternalServer)
		}()

		c.Next()
	}
}

func isClientGone(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET)
}
