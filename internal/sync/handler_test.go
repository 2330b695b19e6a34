package sync_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	stdsync "sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/internal/repository/memory"
	"github.com/asyncopatedsoul/health-protocol/internal/sync"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

// stubImporter fails the first failures calls with err and records every call.
type stubImporter struct {
	importer.UseCase

	mu       stdsync.Mutex
	calls    []importer.ImportNoteInput
	failures int
	err      error
	done     chan struct{}
}

func (s *stubImporter) ImportNote(ctx context.Context, input importer.ImportNoteInput) (importer.ImportNoteOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, input)
	if len(s.calls) <= s.failures {
		return importer.ImportNoteOutput{}, s.err
	}
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	return importer.ImportNoteOutput{NoteID: input.NoteID, ActivitiesFound: 1, EventsCreated: 1}, nil
}

func payload(activity, uid string) sync.MemosWebhookPayload {
	var p sync.MemosWebhookPayload
	p.ActivityType = activity
	p.Memo.UID = uid
	return p
}

func TestProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("created imports with duplicates skipped", func(t *testing.T) {
		imp := &stubImporter{}
		h := sync.NewWebhookHandler(imp, memory.New(), log.NewNop())

		h.Process(ctx, payload(sync.ActivityMemoCreated, "abc123"))

		if len(imp.calls) != 1 {
			t.Fatalf("expected 1 import, got %d", len(imp.calls))
		}
		if imp.calls[0].NoteID != "memos/abc123" {
			t.Errorf("NoteID = %q", imp.calls[0].NoteID)
		}
		if skip := imp.calls[0].SkipDuplicates; skip == nil || !*skip {
			t.Errorf("expected SkipDuplicates=true, got %v", skip)
		}
	})

	t.Run("retries transient failures", func(t *testing.T) {
		imp := &stubImporter{failures: 2, err: errors.New("memos unavailable")}
		h := sync.NewWebhookHandler(imp, memory.New(), log.NewNop(), sync.WithRetry(3, time.Millisecond))

		h.Process(ctx, payload(sync.ActivityMemoUpdated, "abc123"))
		if len(imp.calls) != 3 {
			t.Errorf("expected 3 attempts, got %d", len(imp.calls))
		}
	})

	t.Run("gives up after the retry budget", func(t *testing.T) {
		imp := &stubImporter{failures: 10, err: errors.New("memos unavailable")}
		h := sync.NewWebhookHandler(imp, memory.New(), log.NewNop(), sync.WithRetry(2, time.Millisecond))

		h.Process(ctx, payload(sync.ActivityMemoUpdated, "abc123"))
		if len(imp.calls) != 2 {
			t.Errorf("expected 2 attempts, got %d", len(imp.calls))
		}
	})

	t.Run("missing note is not retried", func(t *testing.T) {
		imp := &stubImporter{failures: 10, err: importer.ErrNoteNotFound}
		h := sync.NewWebhookHandler(imp, memory.New(), log.NewNop(), sync.WithRetry(3, time.Millisecond))

		h.Process(ctx, payload(sync.ActivityMemoCreated, "gone"))
		if len(imp.calls) != 1 {
			t.Errorf("expected 1 attempt, got %d", len(imp.calls))
		}
	})

	t.Run("deleted drops the note events", func(t *testing.T) {
		store := memory.New()
		for _, noteID := range []string{"memos/abc123", "memos/abc123", "memos/other"} {
			_, err := store.InsertEvent(ctx, repository.InsertEventOptions{
				UserID:  "u1",
				Type:    model.EventTypeActivity,
				Status:  model.EventStatusCompleted,
				Context: model.EventContext{NoteID: noteID},
			})
			if err != nil {
				t.Fatalf("InsertEvent: %v", err)
			}
		}
		imp := &stubImporter{}
		h := sync.NewWebhookHandler(imp, store, log.NewNop())

		h.Process(ctx, payload(sync.ActivityMemoDeleted, "abc123"))

		if len(imp.calls) != 0 {
			t.Errorf("expected no imports, got %d", len(imp.calls))
		}
		left, err := store.ListEventsForUser(ctx, repository.ListEventsOptions{UserID: "u1"})
		if err != nil {
			t.Fatalf("ListEventsForUser: %v", err)
		}
		if len(left) != 1 || left[0].Context.NoteID != "memos/other" {
			t.Errorf("unexpected remaining events %+v", left)
		}
	})
}

func TestHandleMemosWebhook(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("acknowledges and syncs in the background", func(t *testing.T) {
		done := make(chan struct{})
		imp := &stubImporter{done: done}
		h := sync.NewWebhookHandler(imp, memory.New(), log.NewNop())

		r := gin.New()
		r.POST("/webhook/memos", h.HandleMemosWebhook)

		w := httptest.NewRecorder()
		body := `{"activityType":"memos.memo.created","memo":{"name":"memos/xyz","uid":"xyz"}}`
		req := httptest.NewRequest(http.MethodPost, "/webhook/memos", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "accepted") {
			t.Errorf("unexpected body %s", w.Body.String())
		}

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("background import did not run")
		}
	})

	t.Run("rejects payloads without a memo", func(t *testing.T) {
		imp := &stubImporter{}
		h := sync.NewWebhookHandler(imp, memory.New(), log.NewNop())

		r := gin.New()
		r.POST("/webhook/memos", h.HandleMemosWebhook)

		for _, body := range []string{`{"activityType":"memos.memo.created"}`, `not json`} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/webhook/memos", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("%s: status = %d, want 400", body, w.Code)
			}
		}
	})
}

// overlapImporter records the largest number of imports running at once.
type overlapImporter struct {
	importer.UseCase

	mu        stdsync.Mutex
	active    int
	maxActive int
	calls     int
}

func (s *overlapImporter) ImportNote(ctx context.Context, input importer.ImportNoteInput) (importer.ImportNoteOutput, error) {
	s.mu.Lock()
	s.active++
	s.calls++
	s.maxActive = max(s.maxActive, s.active)
	s.mu.Unlock()

	time.Sleep(20 * time.Millisecond)

	s.mu.Lock()
	s.active--
	s.mu.Unlock()
	return importer.ImportNoteOutput{NoteID: input.NoteID}, nil
}

func TestProcessSerialisesSameMemo(t *testing.T) {
	imp := &overlapImporter{}
	h := sync.NewWebhookHandler(imp, memory.New(), log.NewNop())

	var wg stdsync.WaitGroup
	for _, activity := range []string{sync.ActivityMemoCreated, sync.ActivityMemoUpdated, sync.ActivityMemoUpdated} {
		wg.Add(1)
		go func(activity string) {
			defer wg.Done()
			h.Process(context.Background(), payload(activity, "abc123"))
		}(activity)
	}
	wg.Wait()

	if imp.calls != 3 {
		t.Errorf("calls = %d, want 3", imp.calls)
	}
	if imp.maxActive != 1 {
		t.Errorf("imports for one memo overlapped: maxActive = %d", imp.maxActive)
	}
}
