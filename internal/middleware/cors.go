package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var corsAllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}

var corsAllowedHeaders = []string{
	"Accept",
	"Accept-Language",
	"Authorization",
	"Content-Language",
	"Content-Type",
	"Cache-Control",
	"X-Requested-With",
	"X-Request-Id",
	"Origin",
}

// CORS sets CORS response headers for allowed origins and short-circuits
// OPTIONS preflight requests.
func CORS(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && originAllowed(origin, allowedOrigins) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", strings.Join(corsAllowedMethods, ", "))
			c.Header("Access-Control-Allow-Headers", strings.Join(corsAllowedHeaders, ", "))
			if allowCredentials {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if origin == a || a == "*" {
			return true
		}
	}
	return false
}
