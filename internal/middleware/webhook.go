package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/asyncopatedsoul/health-protocol/pkg/response"
)

const (
	webhookTokenHeader = "X-Webhook-Token"
	webhookTokenQuery  = "token"
)

// WebhookAuth checks the shared webhook token sent by the notes service, either in the
// X-Webhook-Token header or the token query parameter.
func (m Middleware) WebhookAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.webhookSecret == "" {
			c.Next()
			return
		}

		token := c.GetHeader(webhookTokenHeader)
		if token == "" {
			token = c.Query(webhookTokenQuery)
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(m.webhookSecret)) != 1 {
			m.l.Warnf(c.Request.Context(), "middleware.WebhookAuth: rejected webhook from %s", c.ClientIP())
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
