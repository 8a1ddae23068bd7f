package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"bookhub.backend/pkg/logger"
)

const RequestIDKey = "request_id"

// RequestIDMiddleware tags each request with a unique id, honoring an
// incoming X-Request-ID header. The id is placed on the request context
// under the key pkg/logger reads, so log lines correlate per request.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)

		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
