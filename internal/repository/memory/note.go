package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

func (r *implRepository) CreateNote(ctx context.Context, opt repository.CreateNoteOptions) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UnixMilli()
	created := opt.CreatedAtMs
	if created == 0 {
		created = now
	}
	source := opt.Source
	if source == "" {
		source = model.NoteSourceLocal
	}

	note := model.Note{
		ID:          uuid.NewString(),
		UserID:      opt.UserID,
		Content:     opt.Content,
		Source:      source,
		ExternalID:  opt.ExternalID,
		CreatedAtMs: created,
		LastSavedMs: created,
	}
	r.notes[note.ID] = note
	return note, nil
}

func (r *implRepository) GetNote(ctx context.Context, id string) (model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[id]
	if !ok {
		return model.Note{}, repository.ErrNotFound
	}
	return note, nil
}

func (r *implRepository) UpdateNote(ctx context.Context, opt repository.UpdateNoteOptions) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.notes[opt.ID]
	if !ok {
		return model.Note{}, repository.ErrNotFound
	}
	if opt.Content != nil {
		note.Content = *opt.Content
	}
	if opt.ActivityTimestampMs != nil {
		ts := *opt.ActivityTimestampMs
		note.ActivityTimestampMs = &ts
	}
	note.LastSavedMs = r.now().UnixMilli()
	r.notes[note.ID] = note
	return note, nil
}

func (r *implRepository) ListNotes(ctx context.Context, opt repository.ListNotesOptions) ([]model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Note
	for _, n := range r.notes {
		if opt.UserID != "" && n.UserID != opt.UserID {
			continue
		}
		ts := n.CreatedAtMs
		if opt.TimeField == repository.NoteTimeLastSaved {
			ts = n.LastSavedMs
		}
		if !repository.InRange(ts, opt.StartMs, opt.EndMs) {
			continue
		}
		out = append(out, n)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAtMs == out[j].CreatedAtMs {
			return strings.Compare(out[i].ID, out[j].ID) < 0
		}
		return out[i].CreatedAtMs < out[j].CreatedAtMs
	})
	if opt.Limit > 0 && len(out) > opt.Limit {
		out = out[:opt.Limit]
	}
	return out, nil
}
