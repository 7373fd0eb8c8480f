package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/care-api/pkg/httputil"
)

// Recovery turns a panic into a 500 and logs the stack with the request id.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}

			err, ok := p.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", p)
			}

			log.Error().
				Err(err).
				Bytes("stack", debug.Stack()).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("request_id", c.GetString(ContextRequestID)).
				Msg("Request panic recovered")

			c.AbortWithStatusJSON(http.StatusInternalServerError, httputil.Response{
				Status:  "error",
				Message: "Internal server error",
			})
		}()
		c.Next()
	}
}
