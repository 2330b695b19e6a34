// Package kafka consumes note.saved messages and imports the referenced note.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/asyncopatedsoul/health-protocol/internal/eventbus"
	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	pkgKafka "github.com/asyncopatedsoul/health-protocol/pkg/kafka"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

type handler struct {
	l  log.Logger
	uc importer.UseCase
}

// New returns a processor handler. Messages for missing notes or with malformed payloads are
// acknowledged and dropped; any other import error leaves the offset uncommitted for redelivery.
func New(l log.Logger, uc importer.UseCase) pkgKafka.Handler {
	return &handler{l: l, uc: uc}
}

func (h *handler) Handle(ctx context.Context, msg pkgKafka.Message) error {
	if msg.EventType != eventbus.EventTypeNoteSaved {
		h.l.Debugf(ctx, "importer consumer: ignore %s at %s/%d/%d", msg.EventType, msg.Topic, msg.Partition, msg.Offset)
		return nil
	}

	var payload eventbus.NoteSaved
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.l.Warnf(ctx, "importer consumer: bad payload at offset %d: %v", msg.Offset, err)
		return nil
	}
	if payload.NoteID == "" {
		h.l.Warnf(ctx, "importer consumer: note.saved without noteId at offset %d", msg.Offset)
		return nil
	}

	out, err := h.uc.ImportNote(ctx, importer.ImportNoteInput{
		NoteID:         payload.NoteID,
		SkipDuplicates: payload.SkipDuplicates,
	})
	if err != nil {
		if errors.Is(err, importer.ErrNoteNotFound) {
			h.l.Warnf(ctx, "importer consumer: note %s no longer exists", payload.NoteID)
			return nil
		}
		return fmt.Errorf("import note %s: %w", payload.NoteID, err)
	}

	h.l.Infof(ctx, "importer consumer: note=%s activities=%d events=%d skipped=%d errors=%d",
		out.NoteID, out.ActivitiesFound, out.EventsCreated, out.Skipped, out.Errors)
	return nil
}
