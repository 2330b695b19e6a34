package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/internal/repository/memory"
)

func fixedClock() time.Time { return time.UnixMilli(1_700_000_000_000) }

func TestNotes(t *testing.T) {
	ctx := context.Background()
	store := memory.New(memory.WithClock(fixedClock))

	a, _ := store.CreateNote(ctx, repository.CreateNoteOptions{UserID: "u1", Content: "Squat\n100 x 5", CreatedAtMs: 100})
	_, _ = store.CreateNote(ctx, repository.CreateNoteOptions{UserID: "u1", Content: "Bench", CreatedAtMs: 300})
	_, _ = store.CreateNote(ctx, repository.CreateNoteOptions{UserID: "u2", Content: "Row", CreatedAtMs: 200})

	t.Run("get missing", func(t *testing.T) {
		if _, err := store.GetNote(ctx, "nope"); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list by user and range", func(t *testing.T) {
		start, end := int64(50), int64(250)
		notes, err := store.ListNotes(ctx, repository.ListNotesOptions{UserID: "u1", StartMs: &start, EndMs: &end})
		if err != nil {
			t.Fatalf("ListNotes: %v", err)
		}
		if len(notes) != 1 || notes[0].ID != a.ID {
			t.Errorf("unexpected notes %+v", notes)
		}
	})

	t.Run("update sets last saved", func(t *testing.T) {
		content := "100 x 5"
		ts := int64(99)
		got, err := store.UpdateNote(ctx, repository.UpdateNoteOptions{ID: a.ID, Content: &content, ActivityTimestampMs: &ts})
		if err != nil {
			t.Fatalf("UpdateNote: %v", err)
		}
		if got.Content != content || *got.ActivityTimestampMs != 99 {
			t.Errorf("unexpected note %+v", got)
		}
		if got.LastSavedMs != fixedClock().UnixMilli() {
			t.Errorf("LastSavedMs = %d", got.LastSavedMs)
		}
	})
}

func TestEvents(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	for _, noteID := range []string{"n1", "n1", "n2"} {
		if _, err := store.InsertEvent(ctx, repository.InsertEventOptions{
			UserID:  "u1",
			Type:    model.EventTypeActivity,
			Status:  model.EventStatusCompleted,
			Context: model.EventContext{NoteID: noteID},
		}); err != nil {
			t.Fatalf("InsertEvent: %v", err)
		}
	}

	deleted, err := store.DeleteEventsForNote(ctx, "n1")
	if err != nil {
		t.Fatalf("DeleteEventsForNote: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	events, _ := store.ListEventsForUser(ctx, repository.ListEventsOptions{UserID: "u1", Type: model.EventTypeActivity})
	if len(events) != 1 || events[0].Context.NoteID != "n2" {
		t.Errorf("unexpected events %+v", events)
	}
}

func TestActivities(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	dl, _ := store.InsertActivity(ctx, repository.InsertActivityOptions{Name: "Deadlift", Slug: "deadlift"})
	_, _ = store.InsertActivity(ctx, repository.InsertActivityOptions{Name: "Romanian Deadlift", Slug: "romanian-deadlift"})

	if _, err := store.InsertActivity(ctx, repository.InsertActivityOptions{Name: "Deadlift", Slug: "deadlift"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	found, _ := store.FindActivitiesByName(ctx, "DEADLIFT", 1)
	if len(found) != 1 || found[0].ID != dl.ID {
		t.Errorf("unexpected match %+v", found)
	}

	bySlug, err := store.GetActivityBySlug(ctx, "romanian-deadlift")
	if err != nil || bySlug.Name != "Romanian Deadlift" {
		t.Errorf("GetActivityBySlug = %+v, %v", bySlug, err)
	}
}

func TestFindUser(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	u, _ := store.CreateUser(ctx, model.User{Email: "a@example.com", TokenID: "tok", ExternalUserID: "ext"})

	tests := []struct {
		name string
		sel  model.UserSelector
	}{
		{name: "id", sel: model.UserSelector{ID: u.ID}},
		{name: "email case insensitive", sel: model.UserSelector{Email: "A@example.com"}},
		{name: "token", sel: model.UserSelector{TokenID: "tok"}},
		{name: "external", sel: model.UserSelector{ExternalUserID: "ext"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.FindUser(ctx, tt.sel)
			if err != nil || got.ID != u.ID {
				t.Errorf("FindUser = %+v, %v", got, err)
			}
		})
	}

	if _, err := store.FindUser(ctx, model.UserSelector{Email: "b@example.com"}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
