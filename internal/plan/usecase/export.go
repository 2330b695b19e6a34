package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/pkg/gcalendar"
)

// exportToCalendar creates one calendar event per planned activity that the calendar does not
// already hold for this program, slug and start time. It returns the created and skipped
// counts. Export failures never fail the plan.
func (uc *implUseCase) exportToCalendar(ctx context.Context, program model.Program, items []model.PlannedActivity, catalog map[string]model.Activity, loc *time.Location) (created, skipped int) {
	if uc.calendar == nil {
		uc.l.Warnf(ctx, "PlanProgramForUser: calendar export requested but no calendar is configured")
		return 0, 0
	}
	if len(items) == 0 {
		return 0, 0
	}

	length := uc.cfg.EventDuration
	if length <= 0 {
		length = 30 * time.Minute
	}

	existing := uc.exportedSlots(ctx, program.ID, items, length)

	for _, it := range items {
		start := time.UnixMilli(it.PlannedTimeUtcMs).In(loc)
		if existing[slotKey(it.ActivitySlug, start)] {
			skipped++
			continue
		}

		name := it.ActivitySlug
		if act, ok := catalog[it.ActivitySlug]; ok && act.Name != "" {
			name = act.Name
		}

		_, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
			CalendarID:  uc.cfg.CalendarID,
			Summary:     name,
			Description: fmt.Sprintf("%s (%s)\nPlanned activity %s", program.Name, it.Phase, it.ID),
			StartTime:   start,
			EndTime:     start.Add(length),
			Timezone:    loc.String(),
			PrivateProperties: map[string]string{
				gcalendar.PropProgramID:         program.ID,
				gcalendar.PropActivitySlug:      it.ActivitySlug,
				gcalendar.PropPlannedActivityID: it.ID,
			},
		})
		if err != nil {
			uc.l.Warnf(ctx, "PlanProgramForUser: export %s to calendar: %v", it.ID, err)
			continue
		}
		created++
	}
	return created, skipped
}

// exportedSlots lists events previously exported for the program within the planned window.
// A listing failure is logged and yields no slots.
func (uc *implUseCase) exportedSlots(ctx context.Context, programID string, items []model.PlannedActivity, length time.Duration) map[string]bool {
	first, last := items[0].PlannedTimeUtcMs, items[0].PlannedTimeUtcMs
	for _, it := range items[1:] {
		first = min(first, it.PlannedTimeUtcMs)
		last = max(last, it.PlannedTimeUtcMs)
	}

	events, err := uc.calendar.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID:        uc.cfg.CalendarID,
		TimeMin:           time.UnixMilli(first),
		TimeMax:           time.UnixMilli(last).Add(length),
		PrivateProperties: map[string]string{gcalendar.PropProgramID: programID},
	})
	if err != nil {
		uc.l.Warnf(ctx, "PlanProgramForUser: list exported events for %s: %v", programID, err)
		return nil
	}

	slots := make(map[string]bool, len(events))
	for _, ev := range events {
		if slug := ev.PrivateProperties[gcalendar.PropActivitySlug]; slug != "" {
			slots[slotKey(slug, ev.StartTime)] = true
		}
	}
	return slots
}

func slotKey(slug string, start time.Time) string {
	return fmt.Sprintf("%s@%d", slug, start.Unix())
}
