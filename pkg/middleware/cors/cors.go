// Package cors applies cross-origin headers against a configured
// origin allowlist. An empty allowlist permits every origin.
package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	allowHeaders = "Authorization, Content-Type, X-Requested-With, X-Request-ID"
	allowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	maxAge       = "600"
)

// New builds the CORS middleware for the given allowlist. Origins are
// compared without a trailing slash. Preflight OPTIONS requests are
// answered with 204 and never reach the handlers.
func New(allowedOrigins []string) gin.HandlerFunc {
	allowlist := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowlist[strings.TrimRight(origin, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		header := c.Writer.Header()

		switch origin := c.GetHeader("Origin"); {
		case origin != "" && originAllowed(allowlist, origin):
			header.Set("Access-Control-Allow-Origin", origin)
		case origin == "" && len(allowlist) == 0:
			header.Set("Access-Control-Allow-Origin", "*")
		}

		header.Set("Vary", "Origin")
		header.Set("Access-Control-Allow-Credentials", "true")
		header.Set("Access-Control-Allow-Headers", allowHeaders)
		header.Set("Access-Control-Allow-Methods", allowMethods)
		header.Set("Access-Control-Max-Age", maxAge)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func originAllowed(allowlist map[string]struct{}, origin string) bool {
	if len(allowlist) == 0 {
		return true
	}

	_, ok := allowlist[strings.TrimRight(origin, "/")]
	return ok
}
