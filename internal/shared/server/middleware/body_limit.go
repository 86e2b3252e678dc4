package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LimitBodySize caps the readable request body. Reads past the limit fail,
// which JSON binding surfaces as an invalid body.
func LimitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
