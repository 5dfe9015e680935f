package middleware

import "github.com/gin-gonic/gin"

// SecurityHeaders sets the baseline response headers for an API that
// never serves markup.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Next()
	}
}
