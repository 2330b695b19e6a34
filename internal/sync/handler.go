package sync

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	pkgErrors "github.com/asyncopatedsoul/health-protocol/pkg/errors"
	pkgResponse "github.com/asyncopatedsoul/health-protocol/pkg/response"
)

var errMissingMemo = pkgErrors.NewHTTPError(http.StatusBadRequest, "memo name or uid is required")

// HandleMemosWebhook processes Memos webhook events.
func (h *WebhookHandler) HandleMemosWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var payload MemosWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.l.Errorf(ctx, "webhook: failed to parse payload: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}
	if payload.NoteID() == "" {
		pkgResponse.Error(c, errMissingMemo, nil)
		return
	}

	h.l.Infof(ctx, "webhook: received %s for memo %s", payload.ActivityType, payload.NoteID())

	// Process in background to avoid blocking Memos
	go func(p MemosWebhookPayload) {
		bgCtx, cancel := context.WithTimeout(context.Background(), processTimeout)
		defer cancel()
		h.Process(bgCtx, p)
	}(payload)

	// Acknowledge immediately
	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// Process imports created and updated memos and drops the events of deleted ones.
// Other activity types are ignored. Deliveries for the same memo run one at a time, in arrival
// order of the lock.
func (h *WebhookHandler) Process(ctx context.Context, p MemosWebhookPayload) {
	noteID := p.NoteID()
	unlock := h.locks.lock(noteID)
	defer unlock()

	switch p.ActivityType {
	case ActivityMemoCreated, ActivityMemoUpdated:
		h.syncWithRetry(ctx, noteID)

	case ActivityMemoDeleted:
		n, err := h.events.DeleteEventsForNote(ctx, noteID)
		if err != nil {
			h.l.Errorf(ctx, "webhook: failed to delete events of %s: %v", noteID, err)
			return
		}
		h.l.Infof(ctx, "webhook: deleted %d events of %s", n, noteID)

	default:
		h.l.Debugf(ctx, "webhook: ignoring %s for %s", p.ActivityType, noteID)
	}
}

// syncWithRetry imports the note with exponential backoff. Duplicates are always skipped
// so repeated deliveries never double-count activities.
func (h *WebhookHandler) syncWithRetry(ctx context.Context, noteID string) {
	skip := true
	backoff := h.backoff

	for i := 0; i < h.maxRetries; i++ {
		out, err := h.importer.ImportNote(ctx, importer.ImportNoteInput{NoteID: noteID, SkipDuplicates: &skip})
		if err == nil {
			h.l.Infof(ctx, "webhook: synced %s (found=%d created=%d skipped=%d errors=%d)",
				noteID, out.ActivitiesFound, out.EventsCreated, out.Skipped, out.Errors)
			return
		}
		if errors.Is(err, importer.ErrNoteNotFound) {
			h.l.Warnf(ctx, "webhook: note %s no longer exists", noteID)
			return
		}

		h.l.Warnf(ctx, "webhook: import failed (retry %d/%d): %v", i+1, h.maxRetries, err)
		select {
		case <-ctx.Done():
			h.l.Errorf(ctx, "webhook: gave up on %s: %v", noteID, ctx.Err())
			return
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	h.l.Errorf(ctx, "webhook: FAILED to sync %s after %d retries", noteID, h.maxRetries)
}
