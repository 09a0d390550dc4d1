// Package requestid tags every request with an identifier so log lines
// from one request can be correlated. A client-supplied X-Request-ID is
// trusted and echoed back; otherwise a random one is minted.
package requestid

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	headerKey  = "X-Request-ID"
	contextKey = "request_id"
)

// Middleware resolves the request ID, stores it in the gin context and
// mirrors it on the response header.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerKey)
		if id == "" {
			id = newID()
		}

		c.Set(contextKey, id)
		c.Writer.Header().Set(headerKey, id)

		c.Next()
	}
}

// Value reads the request ID back out of the gin context, or "" when
// the middleware did not run.
func Value(c *gin.Context) string {
	v, exists := c.Get(contextKey)
	if !exists {
		return ""
	}

	id, _ := v.(string)
	return id
}

func newID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is nearly impossible; a timestamp keeps
		// the ID unique enough for log correlation.
		return "req-" + strconv.FormatInt(time.Now().UnixNano(), 16)
	}

	return hex.EncodeToString(buf)
}
