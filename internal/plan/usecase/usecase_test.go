package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/asyncopatedsoul/health-protocol/internal/eventbus"
	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/plan"
	"github.com/asyncopatedsoul/health-protocol/internal/plan/usecase"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/internal/repository/memory"
	"github.com/asyncopatedsoul/health-protocol/pkg/gcalendar"
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

type recordingPublisher struct {
	planned []model.PlannedActivity
}

func (p *recordingPublisher) PublishActivityEvent(ctx context.Context, ev model.Event) error {
	return nil
}

func (p *recordingPublisher) PublishPlannedActivities(ctx context.Context, items []model.PlannedActivity) error {
	p.planned = append(p.planned, items...)
	return nil
}

func (p *recordingPublisher) PublishNoteSaved(ctx context.Context, msg eventbus.NoteSaved) error {
	return nil
}

type fakeCalendar struct {
	requests []gcalendar.CreateEventRequest
	events   []gcalendar.Event
	failOn   int
	listErr  error
}

func (c *fakeCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	c.requests = append(c.requests, req)
	if c.failOn > 0 && len(c.requests) == c.failOn {
		return nil, errors.New("calendar quota exceeded")
	}
	ev := gcalendar.Event{ID: "evt", Summary: req.Summary, StartTime: req.StartTime, EndTime: req.EndTime, PrivateProperties: req.PrivateProperties}
	c.events = append(c.events, ev)
	return &ev, nil
}

func (c *fakeCalendar) ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error) {
	if c.listErr != nil {
		return nil, c.listErr
	}
	var out []gcalendar.Event
	for _, ev := range c.events {
		if ev.StartTime.Before(req.TimeMin) || !ev.StartTime.Before(req.TimeMax) {
			continue
		}
		match := true
		for k, v := range req.PrivateProperties {
			if ev.PrivateProperties[k] != v {
				match = false
			}
		}
		if match {
			out = append(out, ev)
		}
	}
	return out, nil
}

// Thursday 2025-05-01 09:00 UTC.
var clock = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func now() time.Time { return clock }

func intPtr(v int) *int { return &v }

type fixture struct {
	store     repository.Store
	publisher *recordingPublisher
	calendar  *fakeCalendar
	uc        plan.UseCase
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New(
		memory.WithClock(now),
		memory.WithActivities(
			model.Activity{ID: "act-breathe", Name: "Box Breathing", Slug: "breathe"},
			model.Activity{ID: "act-squat", Name: "Squat", Slug: "squat"},
		),
	)
	if _, err := store.CreateUser(ctx, model.User{ID: "u-la", Email: "west@example.com"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := store.CreateUser(ctx, model.User{ID: "u-tokyo", Email: "east@example.com", Timezone: "Asia/Tokyo"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := store.UpsertProgram(ctx, model.Program{
		ID:   "breathing",
		Name: "Daily Calm",
		Phases: []model.Phase{{
			Name: "foundation",
			ExitCriteria: []model.ExitCriterion{
				{Slug: "breathe"},
				{Slug: "foam-roll", Target: &model.Target{Total: 2}},
			},
			Sequence: []model.SequenceItem{{
				Weekday:    intPtr(1),
				Activities: []model.SlugRef{{Slug: "breathe"}, {Slug: "foam-roll"}},
			}},
		}},
	}); err != nil {
		t.Fatalf("UpsertProgram: %v", err)
	}

	pub := &recordingPublisher{}
	cal := &fakeCalendar{}
	uc := usecase.New(&mockLogger{}, store, store, store, store, pub, plan.DefaultConfig(),
		usecase.WithClock(now),
		usecase.WithCalendar(cal),
	)
	return fixture{store: store, publisher: pub, calendar: cal, uc: uc}
}

func TestPlanProgramForUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.uc.PlanProgramForUser(ctx, plan.PlanInput{UserID: "u-la", ProgramID: "breathing", DurationWeeks: 2})
	if err != nil {
		t.Fatalf("PlanProgramForUser: %v", err)
	}
	if out.DurationDays != 14 || out.Timezone != model.DefaultTimezone {
		t.Errorf("duration=%d timezone=%s", out.DurationDays, out.Timezone)
	}
	if len(out.UnknownSlugs) != 1 || out.UnknownSlugs[0] != "foam-roll" {
		t.Errorf("unknown slugs = %v", out.UnknownSlugs)
	}
	if len(out.Planned) != 2 {
		t.Fatalf("planned = %+v", out.Planned)
	}

	la, _ := time.LoadLocation(model.DefaultTimezone)
	want := []time.Time{
		time.Date(2025, 5, 5, 12, 0, 0, 0, la),
		time.Date(2025, 5, 12, 12, 0, 0, 0, la),
	}
	for i, p := range out.Planned {
		if p.ID == "" {
			t.Errorf("planned[%d] has no id", i)
		}
		if got := time.UnixMilli(p.PlannedTimeUtcMs); !got.Equal(want[i]) {
			t.Errorf("planned[%d] at %v, want %v", i, got.In(la), want[i])
		}
		if p.ActivityID != "act-breathe" || p.UserID != "u-la" || p.ProgramID != "breathing" {
			t.Errorf("planned[%d] = %+v", i, p)
		}
	}

	if len(f.publisher.planned) != 2 {
		t.Errorf("published %d planned activities", len(f.publisher.planned))
	}
	stored, err := f.uc.ListPlanned(ctx, plan.ListPlannedInput{UserID: "u-la"})
	if err != nil || len(stored) != 2 {
		t.Errorf("ListPlanned = %d, %v", len(stored), err)
	}
	if len(f.calendar.requests) != 0 {
		t.Errorf("calendar called without export")
	}
}

func TestPlanProgramForUserDuration(t *testing.T) {
	tests := []struct {
		name  string
		input plan.PlanInput
		days  int
		count int
	}{
		{name: "days win over weeks", input: plan.PlanInput{DurationDays: 7, DurationWeeks: 4}, days: 7, count: 1},
		{name: "weeks", input: plan.PlanInput{DurationWeeks: 3}, days: 21, count: 3},
		{name: "default", input: plan.PlanInput{}, days: 30, count: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.input.UserID = "u-la"
			tt.input.ProgramID = "breathing"

			out, err := f.uc.PlanProgramForUser(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("PlanProgramForUser: %v", err)
			}
			if out.DurationDays != tt.days {
				t.Errorf("days = %d, want %d", out.DurationDays, tt.days)
			}
			if len(out.Planned) != tt.count {
				t.Errorf("planned = %d, want %d", len(out.Planned), tt.count)
			}
		})
	}
}

func TestPlanProgramForUserTimezoneAndStart(t *testing.T) {
	f := newFixture(t)
	tokyo, _ := time.LoadLocation("Asia/Tokyo")
	// Monday 2025-06-02 23:30 in Tokyo.
	start := time.Date(2025, 6, 2, 23, 30, 0, 0, tokyo).UnixMilli()

	out, err := f.uc.PlanProgramForUser(context.Background(), plan.PlanInput{
		UserID:       "u-tokyo",
		ProgramID:    "breathing",
		DurationDays: 7,
		StartMs:      &start,
	})
	if err != nil {
		t.Fatalf("PlanProgramForUser: %v", err)
	}
	if out.Timezone != "Asia/Tokyo" || len(out.Planned) != 1 {
		t.Fatalf("out = %+v", out)
	}
	if got, want := time.UnixMilli(out.Planned[0].PlannedTimeUtcMs), time.Date(2025, 6, 2, 12, 0, 0, 0, tokyo); !got.Equal(want) {
		t.Errorf("planned at %v, want %v", got.In(tokyo), want)
	}
}

func TestPlanProgramForUserStartDate(t *testing.T) {
	tokyo, _ := time.LoadLocation("Asia/Tokyo")
	la, _ := time.LoadLocation(model.DefaultTimezone)

	tests := []struct {
		name   string
		userID string
		start  string
		want   time.Time
	}{
		// Noon in Los Angeles on 2025-06-02 is already 2025-06-03 in Tokyo.
		{name: "east of default timezone", userID: "u-tokyo", start: "2025-06-02", want: time.Date(2025, 6, 2, 12, 0, 0, 0, tokyo)},
		{name: "default timezone", userID: "u-la", start: "2025-06-02", want: time.Date(2025, 6, 2, 12, 0, 0, 0, la)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			out, err := f.uc.PlanProgramForUser(context.Background(), plan.PlanInput{
				UserID:       tt.userID,
				ProgramID:    "breathing",
				DurationDays: 7,
				StartDate:    tt.start,
			})
			if err != nil {
				t.Fatalf("PlanProgramForUser: %v", err)
			}
			if len(out.Planned) != 1 {
				t.Fatalf("planned = %+v", out.Planned)
			}
			if got := time.UnixMilli(out.Planned[0].PlannedTimeUtcMs); !got.Equal(tt.want) {
				t.Errorf("planned at %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("invalid", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.PlanProgramForUser(context.Background(), plan.PlanInput{
			UserID:    "u-la",
			ProgramID: "breathing",
			StartDate: "2025-13-40",
		})
		if !errors.Is(err, plan.ErrInvalidStartDate) {
			t.Errorf("expected ErrInvalidStartDate, got %v", err)
		}
	})
}

func TestPlanProgramForUserCalendarExport(t *testing.T) {
	f := newFixture(t)
	f.calendar.failOn = 1

	out, err := f.uc.PlanProgramForUser(context.Background(), plan.PlanInput{
		UserID:           "u-la",
		ProgramID:        "breathing",
		DurationWeeks:    2,
		ExportToCalendar: true,
	})
	if err != nil {
		t.Fatalf("PlanProgramForUser: %v", err)
	}
	if len(f.calendar.requests) != 2 || out.CalendarEvents != 1 {
		t.Fatalf("requests=%d created=%d", len(f.calendar.requests), out.CalendarEvents)
	}
	req := f.calendar.requests[1]
	if req.Summary != "Box Breathing" || req.Timezone != model.DefaultTimezone {
		t.Errorf("request = %+v", req)
	}
	if req.EndTime.Sub(req.StartTime) != 30*time.Minute {
		t.Errorf("event length = %v", req.EndTime.Sub(req.StartTime))
	}
	if req.PrivateProperties[gcalendar.PropProgramID] != "breathing" || req.PrivateProperties[gcalendar.PropActivitySlug] != "breathe" {
		t.Errorf("private properties = %v", req.PrivateProperties)
	}
}

func TestPlanProgramForUserCalendarExportSkipsExported(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input := plan.PlanInput{
		UserID:           "u-la",
		ProgramID:        "breathing",
		DurationWeeks:    2,
		ExportToCalendar: true,
	}

	first, err := f.uc.PlanProgramForUser(ctx, input)
	if err != nil {
		t.Fatalf("PlanProgramForUser: %v", err)
	}
	if first.CalendarEvents != 2 || first.CalendarSkipped != 0 {
		t.Fatalf("first run created=%d skipped=%d", first.CalendarEvents, first.CalendarSkipped)
	}

	second, err := f.uc.PlanProgramForUser(ctx, input)
	if err != nil {
		t.Fatalf("PlanProgramForUser: %v", err)
	}
	if second.CalendarEvents != 0 || second.CalendarSkipped != 2 {
		t.Fatalf("second run created=%d skipped=%d", second.CalendarEvents, second.CalendarSkipped)
	}
	if len(f.calendar.requests) != 2 {
		t.Errorf("calendar received %d create requests, want 2", len(f.calendar.requests))
	}

	f.calendar.listErr = errors.New("list unavailable")
	third, err := f.uc.PlanProgramForUser(ctx, input)
	if err != nil {
		t.Fatalf("PlanProgramForUser: %v", err)
	}
	if third.CalendarEvents != 2 {
		t.Errorf("listing failure should export everything, created=%d", third.CalendarEvents)
	}
}

func TestPlanProgramForUserErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.store.UpsertProgram(ctx, model.Program{
		ID:   "broken",
		Name: "Broken",
		Phases: []model.Phase{{
			Name:         "p1",
			ExitCriteria: []model.ExitCriterion{{Slug: "squat"}},
			Sequence:     []model.SequenceItem{{Activities: []model.SlugRef{{Slug: "squat"}}}},
		}},
	}); err != nil {
		t.Fatalf("UpsertProgram: %v", err)
	}

	tests := []struct {
		name  string
		input plan.PlanInput
		want  error
	}{
		{name: "missing user", input: plan.PlanInput{ProgramID: "breathing"}, want: plan.ErrMissingUser},
		{name: "missing program", input: plan.PlanInput{UserID: "u-la"}, want: plan.ErrMissingProgram},
		{name: "unknown user", input: plan.PlanInput{UserID: "nobody", ProgramID: "breathing"}, want: plan.ErrUserNotFound},
		{name: "unknown program", input: plan.PlanInput{UserID: "u-la", ProgramID: "nope"}, want: plan.ErrProgramNotFound},
		{name: "negative duration", input: plan.PlanInput{UserID: "u-la", ProgramID: "breathing", DurationDays: -3}, want: plan.ErrInvalidDuration},
		{name: "malformed program", input: plan.PlanInput{UserID: "u-la", ProgramID: "broken"}, want: plan.ErrInvalidSequenceItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.PlanProgramForUser(ctx, tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	planned, _ := f.store.ListPlannedActivities(ctx, repository.ListPlannedActivitiesOptions{UserID: "u-la"})
	if len(planned) != 0 {
		t.Errorf("failed plans persisted %d activities", len(planned))
	}
}

func TestLoadProgramFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := t.TempDir()

	valid := filepath.Join(dir, "strength.yaml")
	if err := os.WriteFile(valid, []byte(`id: strength
name: Strength Base
phases:
  - name: base
    exitCriteria:
      - slug: squat
        target:
          total: 4
    sequence:
      - weekday: 2
        activities:
          - slug: squat
`), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := f.uc.LoadProgramFile(ctx, plan.LoadProgramFileInput{Path: valid, UserID: "u-la"})
	if err != nil {
		t.Fatalf("LoadProgramFile: %v", err)
	}
	if p.ID != "strength" || p.UserID != "u-la" || len(p.Phases) != 1 {
		t.Errorf("program = %+v", p)
	}
	got, err := f.uc.GetProgram(ctx, "strength")
	if err != nil || got.Name != "Strength Base" {
		t.Errorf("GetProgram = %+v, %v", got, err)
	}

	invalid := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(invalid, []byte(`name: Broken
phases:
  - name: p
    sequence:
      - activities:
          - slug: squat
`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := f.uc.LoadProgramFile(ctx, plan.LoadProgramFileInput{Path: invalid}); !errors.Is(err, plan.ErrInvalidSequenceItem) {
		t.Errorf("err = %v, want ErrInvalidSequenceItem", err)
	}

	if _, err := f.uc.GetProgram(ctx, "missing"); !errors.Is(err, plan.ErrProgramNotFound) {
		t.Errorf("err = %v, want ErrProgramNotFound", err)
	}
}
