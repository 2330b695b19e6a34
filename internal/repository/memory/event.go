package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

func (r *implRepository) InsertEvent(ctx context.Context, opt repository.InsertEventOptions) (model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := opt.TimestampMs
	if ts == 0 {
		ts = r.now().UnixMilli()
	}
	ev := model.Event{
		ID:          uuid.NewString(),
		UserID:      opt.UserID,
		Type:        opt.Type,
		Status:      opt.Status,
		TimestampMs: ts,
		IsVerified:  opt.IsVerified,
		Context:     opt.Context,
		Metadata:    opt.Metadata,
	}
	r.events = append(r.events, ev)
	return ev, nil
}

func (r *implRepository) ListEventsForUser(ctx context.Context, opt repository.ListEventsOptions) ([]model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Event
	for _, ev := range r.events {
		if ev.UserID != opt.UserID {
			continue
		}
		if opt.Type != "" && ev.Type != opt.Type {
			continue
		}
		if !repository.InRange(ev.TimestampMs, opt.StartMs, opt.EndMs) {
			continue
		}
		out = append(out, ev)
		if opt.Limit > 0 && len(out) == opt.Limit {
			break
		}
	}
	return out, nil
}

func (r *implRepository) DeleteEventsForNote(ctx context.Context, noteID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.events[:0]
	deleted := 0
	for _, ev := range r.events {
		if ev.Context.NoteID == noteID {
			deleted++
			continue
		}
		kept = append(kept, ev)
	}
	r.events = kept
	return deleted, nil
}
