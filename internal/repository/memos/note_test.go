package memos_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/internal/repository/memos"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

func TestNoteRepository(t *testing.T) {
	stored := map[string]memos.Memo{
		"a": {Name: "memos/a", Content: "2025-01-15\nSquat\n100 x 5", CreateTime: "2025-01-15T08:00:00Z", UpdateTime: "2025-01-15T08:00:00Z", DisplayTime: "2025-01-15T08:00:00Z"},
		"b": {Name: "memos/b", Content: "Bench\n80 x 5", CreateTime: "2025-01-20T08:00:00Z", UpdateTime: "2025-01-21T08:00:00Z"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/memos", func(w http.ResponseWriter, r *http.Request) {
		page := memos.ListMemosResponse{}
		if r.URL.Query().Get("pageToken") == "" {
			page.Memos = []memos.Memo{stored["b"]}
			page.NextPageToken = "p2"
		} else {
			page.Memos = []memos.Memo{stored["a"]}
		}
		json.NewEncoder(w).Encode(page)
	})
	mux.HandleFunc("/api/v1/memos/", func(w http.ResponseWriter, r *http.Request) {
		uid := r.URL.Path[len("/api/v1/memos/"):]
		m, ok := stored[uid]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Method == http.MethodPatch {
			var req memos.UpdateMemoRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Content != "" {
				m.Content = req.Content
			}
			if req.DisplayTime != "" {
				m.DisplayTime = req.DisplayTime
			}
			stored[uid] = m
		}
		json.NewEncoder(w).Encode(m)
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	repo := memos.New(memos.NewClient(ts.URL, "token"), "user-1", &mockLogger{})
	ctx := context.Background()

	t.Run("GetNote maps fields", func(t *testing.T) {
		note, err := repo.GetNote(ctx, "memos/b")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if note.ID != "memos/b" || note.ExternalID != "b" || note.UserID != "user-1" {
			t.Errorf("unexpected ids: %+v", note)
		}
		if note.Source != model.NoteSourceMemos {
			t.Errorf("unexpected source %s", note.Source)
		}
		if note.LastSavedMs <= note.CreatedAtMs {
			t.Errorf("expected update time after create time: %+v", note)
		}
		if note.ActivityTimestampMs != nil {
			t.Errorf("expected no activity timestamp without display time")
		}
	})

	t.Run("GetNote missing", func(t *testing.T) {
		if _, err := repo.GetNote(ctx, "zzz"); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateNote writes display time", func(t *testing.T) {
		content := "Squat\n100 x 5"
		ts := int64(1736971200000) // 2025-01-15T20:00:00Z
		note, err := repo.UpdateNote(ctx, repository.UpdateNoteOptions{ID: "memos/a", Content: &content, ActivityTimestampMs: &ts})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if note.Content != content {
			t.Errorf("content = %q", note.Content)
		}
		if note.ActivityTimestampMs == nil || *note.ActivityTimestampMs != ts {
			t.Errorf("activity timestamp = %v, want %d", note.ActivityTimestampMs, ts)
		}
	})

	t.Run("ListNotes pages and filters", func(t *testing.T) {
		start := int64(1737158400000) // 2025-01-18
		notes, err := repo.ListNotes(ctx, repository.ListNotesOptions{UserID: "user-1", StartMs: &start})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(notes) != 1 || notes[0].ID != "memos/b" {
			t.Errorf("unexpected notes: %+v", notes)
		}

		all, _ := repo.ListNotes(ctx, repository.ListNotesOptions{})
		if len(all) != 2 || all[0].ID != "memos/a" {
			t.Errorf("expected both notes oldest first, got %+v", all)
		}

		other, _ := repo.ListNotes(ctx, repository.ListNotesOptions{UserID: "someone-else"})
		if len(other) != 0 {
			t.Errorf("expected no notes for another user")
		}
	})
}
