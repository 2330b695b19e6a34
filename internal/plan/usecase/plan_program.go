package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/observability"
	"github.com/asyncopatedsoul/health-protocol/internal/plan"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/pkg/datemath"
)

func (uc *implUseCase) PlanProgramForUser(ctx context.Context, input plan.PlanInput) (plan.PlanOutput, error) {
	started := time.Now()

	input.UserID = strings.TrimSpace(input.UserID)
	input.ProgramID = strings.TrimSpace(input.ProgramID)
	if input.UserID == "" {
		return plan.PlanOutput{}, plan.ErrMissingUser
	}
	if input.ProgramID == "" {
		return plan.PlanOutput{}, plan.ErrMissingProgram
	}
	if input.DurationDays < 0 || input.DurationWeeks < 0 {
		return plan.PlanOutput{}, plan.ErrInvalidDuration
	}

	user, err := uc.users.GetUser(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return plan.PlanOutput{}, fmt.Errorf("%w: %s", plan.ErrUserNotFound, input.UserID)
		}
		uc.l.Errorf(ctx, "PlanProgramForUser: get user %s: %v", input.UserID, err)
		return plan.PlanOutput{}, err
	}

	program, err := uc.programs.GetProgram(ctx, input.ProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return plan.PlanOutput{}, fmt.Errorf("%w: %s", plan.ErrProgramNotFound, input.ProgramID)
		}
		uc.l.Errorf(ctx, "PlanProgramForUser: get program %s: %v", input.ProgramID, err)
		return plan.PlanOutput{}, err
	}

	tz := user.Timezone
	if tz == "" {
		tz = uc.defaultTimezone()
	}
	loc, err := datemath.LoadLocationOr(tz, uc.defaultTimezone())
	if err != nil {
		uc.l.Errorf(ctx, "PlanProgramForUser: load timezone %q: %v", tz, err)
		return plan.PlanOutput{}, err
	}

	start := uc.now()
	switch {
	case input.StartDate != "":
		day, err := time.ParseInLocation(plan.DateLayout, strings.TrimSpace(input.StartDate), loc)
		if err != nil {
			return plan.PlanOutput{}, fmt.Errorf("%w: %q", plan.ErrInvalidStartDate, input.StartDate)
		}
		start = datemath.LocalNoon(day, 0, loc)
	case input.StartMs != nil:
		start = time.UnixMilli(*input.StartMs)
	}

	catalog, unknown, err := uc.resolveSlugs(ctx, program)
	if err != nil {
		return plan.PlanOutput{}, err
	}

	days := uc.durationDays(input)
	items, err := plan.Schedule(program, plan.ScheduleInput{
		UserID:       user.ID,
		DurationDays: days,
		Start:        start,
		Location:     loc,
		Activities:   catalog,
	})
	if err != nil {
		uc.l.Errorf(ctx, "PlanProgramForUser: program %s: %v", program.ID, err)
		return plan.PlanOutput{}, fmt.Errorf("%w: %w", plan.ErrInvalidProgram, err)
	}

	if len(items) > 0 {
		items, err = uc.planned.InsertPlannedActivities(ctx, items)
		if err != nil {
			uc.l.Errorf(ctx, "PlanProgramForUser: insert planned activities: %v", err)
			return plan.PlanOutput{}, err
		}
		if err := uc.publisher.PublishPlannedActivities(ctx, items); err != nil {
			uc.l.Warnf(ctx, "PlanProgramForUser: publish planned activities: %v", err)
		}
	}

	out := plan.PlanOutput{
		UserID:       user.ID,
		ProgramID:    program.ID,
		DurationDays: days,
		Timezone:     loc.String(),
		Start:        datemath.StartOfDay(start, loc),
		Planned:      items,
		UnknownSlugs: unknown,
	}
	if input.ExportToCalendar {
		out.CalendarEvents, out.CalendarSkipped = uc.exportToCalendar(ctx, program, items, catalog, loc)
	}

	observability.RecordPlan(len(items), time.Since(started))
	uc.l.Infof(ctx, "PlanProgramForUser: user=%s program=%s days=%d planned=%d", user.ID, program.ID, days, len(items))
	return out, nil
}

// durationDays applies the priority days > weeks > configured default.
func (uc *implUseCase) durationDays(input plan.PlanInput) int {
	switch {
	case input.DurationDays > 0:
		return input.DurationDays
	case input.DurationWeeks > 0:
		return input.DurationWeeks * 7
	default:
		return uc.cfg.DefaultDurationDays
	}
}

func (uc *implUseCase) defaultTimezone() string {
	if uc.cfg.DefaultTimezone == "" {
		return model.DefaultTimezone
	}
	return uc.cfg.DefaultTimezone
}

// resolveSlugs loads the catalog activity of every slug the program references.
// Unknown slugs are reported and left out of the schedule.
func (uc *implUseCase) resolveSlugs(ctx context.Context, program model.Program) (map[string]model.Activity, []string, error) {
	catalog := make(map[string]model.Activity)
	var unknown []string
	seen := make(map[string]bool)

	for _, phase := range program.Phases {
		for _, ec := range phase.ExitCriteria {
			if seen[ec.Slug] {
				continue
			}
			seen[ec.Slug] = true

			act, err := uc.activities.GetActivityBySlug(ctx, ec.Slug)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					uc.l.Warnf(ctx, "PlanProgramForUser: program %s references unknown activity %q", program.ID, ec.Slug)
					unknown = append(unknown, ec.Slug)
					continue
				}
				uc.l.Errorf(ctx, "PlanProgramForUser: get activity %q: %v", ec.Slug, err)
				return nil, nil, err
			}
			catalog[ec.Slug] = act
		}
	}
	return catalog, unknown, nil
}
