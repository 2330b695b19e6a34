// Package memos reads journal notes from a self-hosted Memos instance.
package memos

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	pkgLog "github.com/asyncopatedsoul/health-protocol/pkg/log"
)

const listPageSize = 100

type implRepository struct {
	client *Client
	userID string // journal user that owns every memo on this instance
	l      pkgLog.Logger
}

// New creates a NoteRepository over the Memos API. Every memo is attributed to userID.
func New(client *Client, userID string, l pkgLog.Logger) repository.NoteRepository {
	return &implRepository{
		client: client,
		userID: userID,
		l:      l,
	}
}

func (r *implRepository) CreateNote(ctx context.Context, opt repository.CreateNoteOptions) (model.Note, error) {
	memo, err := r.client.CreateMemo(ctx, CreateMemoRequest{
		Content:    opt.Content,
		Visibility: "PRIVATE",
	})
	if err != nil {
		r.l.Errorf(ctx, "memos repository: failed to create memo: %v", err)
		return model.Note{}, repository.ErrFailedToInsert
	}
	return r.memoToNote(memo), nil
}

func (r *implRepository) GetNote(ctx context.Context, id string) (model.Note, error) {
	memo, err := r.client.GetMemo(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMemoNotFound) {
			return model.Note{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "memos repository: failed to get memo %s: %v", id, err)
		return model.Note{}, repository.ErrFailedToGet
	}
	return r.memoToNote(memo), nil
}

func (r *implRepository) UpdateNote(ctx context.Context, opt repository.UpdateNoteOptions) (model.Note, error) {
	var (
		req  UpdateMemoRequest
		mask []string
	)
	if opt.Content != nil {
		req.Content = *opt.Content
		mask = append(mask, "content")
	}
	if opt.ActivityTimestampMs != nil {
		req.DisplayTime = formatTimeMs(*opt.ActivityTimestampMs)
		mask = append(mask, "display_time")
	}
	if len(mask) == 0 {
		return r.GetNote(ctx, opt.ID)
	}
	req.UpdateMask = strings.Join(mask, ",")

	memo, err := r.client.UpdateMemo(ctx, opt.ID, req)
	if err != nil {
		if errors.Is(err, ErrMemoNotFound) {
			return model.Note{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "memos repository: failed to update memo %s: %v", opt.ID, err)
		return model.Note{}, repository.ErrFailedToUpdate
	}
	return r.memoToNote(memo), nil
}

// ListNotes pages through every memo and filters by time range locally.
func (r *implRepository) ListNotes(ctx context.Context, opt repository.ListNotesOptions) ([]model.Note, error) {
	if opt.UserID != "" && opt.UserID != r.userID {
		return nil, nil
	}

	var (
		notes []model.Note
		token string
	)
	for {
		page, err := r.client.ListMemos(ctx, ListMemosRequest{PageSize: listPageSize, PageToken: token})
		if err != nil {
			r.l.Errorf(ctx, "memos repository: failed to list memos: %v", err)
			return nil, repository.ErrFailedToList
		}
		for i := range page.Memos {
			note := r.memoToNote(&page.Memos[i])
			ts := note.CreatedAtMs
			if opt.TimeField == repository.NoteTimeLastSaved {
				ts = note.LastSavedMs
			}
			if repository.InRange(ts, opt.StartMs, opt.EndMs) {
				notes = append(notes, note)
			}
		}
		if page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}

	sort.SliceStable(notes, func(i, j int) bool { return notes[i].CreatedAtMs < notes[j].CreatedAtMs })
	if opt.Limit > 0 && len(notes) > opt.Limit {
		notes = notes[:opt.Limit]
	}
	return notes, nil
}

// memoToNote converts a Memos API memo to a journal note. A display time that differs from
// the creation time is treated as the extracted activity timestamp.
func (r *implRepository) memoToNote(m *Memo) model.Note {
	note := model.Note{
		ID:          resourceName(m.UIDFromName()),
		UserID:      r.userID,
		Content:     m.Content,
		Source:      model.NoteSourceMemos,
		ExternalID:  m.UIDFromName(),
		CreatedAtMs: parseTimeMs(m.CreateTime),
		LastSavedMs: parseTimeMs(m.UpdateTime),
	}
	if note.LastSavedMs == 0 {
		note.LastSavedMs = note.CreatedAtMs
	}
	if m.DisplayTime != "" && m.DisplayTime != m.CreateTime {
		if ts := parseTimeMs(m.DisplayTime); ts > 0 {
			note.ActivityTimestampMs = &ts
		}
	}
	return note
}
