package sync

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Handler defines the interface for the webhook sync handler.
type Handler interface {
	// HandleMemosWebhook acknowledges a Memos webhook and syncs the memo in the background.
	HandleMemosWebhook(c *gin.Context)
	// Process applies one webhook payload synchronously.
	Process(ctx context.Context, p MemosWebhookPayload)
}
