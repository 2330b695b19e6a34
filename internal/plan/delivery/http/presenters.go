package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/plan"
	"github.com/asyncopatedsoul/health-protocol/pkg/datemath"
	"github.com/asyncopatedsoul/health-protocol/pkg/response"
)

var errInvalidStartDate = errors.New("invalid start date")

// --- Request DTOs ---

// planReq accepts start_date as epoch milliseconds, YYYY-MM-DD, or a relative expression.
// Only its calendar date is used; the use case places it in the user's timezone.
type planReq struct {
	ProgramID      string `json:"-"`
	UserID         string `json:"user_id" binding:"required"`
	DurationWeeks  int    `json:"duration_weeks" binding:"omitempty,min=1,max=104"`
	DurationDays   int    `json:"duration_days" binding:"omitempty,min=1,max=730"`
	StartDate      string `json:"start_date"`
	ExportCalendar bool   `json:"export_calendar"`

	startDate string
}

func (r planReq) validate() error {
	if r.UserID == "" {
		return plan.ErrMissingUser
	}
	return nil
}

func (r *planReq) resolveStart(p *datemath.Parser) error {
	if r.StartDate == "" {
		return nil
	}
	t, err := p.Parse(r.StartDate, time.Now())
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidStartDate, err)
	}
	r.startDate = t.In(p.Location()).Format(plan.DateLayout)
	return nil
}

func (r planReq) toInput() plan.PlanInput {
	return plan.PlanInput{
		UserID:           r.UserID,
		ProgramID:        r.ProgramID,
		DurationWeeks:    r.DurationWeeks,
		DurationDays:     r.DurationDays,
		StartDate:        r.startDate,
		ExportToCalendar: r.ExportCalendar,
	}
}

type listPlannedReq struct {
	UserID    string `form:"user_id" binding:"required"`
	ProgramID string `form:"program_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`

	startMs *int64
	endMs   *int64
}

func (r listPlannedReq) validate() error {
	if r.UserID == "" {
		return plan.ErrMissingUser
	}
	return nil
}

func (r *listPlannedReq) resolveDates(p *datemath.Parser) error {
	start, end, err := p.ParseRangeMs(r.StartDate, r.EndDate, time.Now())
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidStartDate, err)
	}
	r.startMs, r.endMs = start, end
	return nil
}

func (r listPlannedReq) toInput() plan.ListPlannedInput {
	return plan.ListPlannedInput{
		UserID:    r.UserID,
		ProgramID: r.ProgramID,
		StartMs:   r.startMs,
		EndMs:     r.endMs,
	}
}

// --- Response DTOs ---

type plannedResp struct {
	ID           string            `json:"id"`
	ActivityID   string            `json:"activity_id"`
	ActivitySlug string            `json:"activity_slug"`
	ProgramID    string            `json:"program_id"`
	Phase        string            `json:"phase,omitempty"`
	PlannedAtMs  int64             `json:"planned_at_ms"`
	PlannedAt    response.DateTime `json:"planned_at"`
}

func newPlannedResp(items []model.PlannedActivity) []plannedResp {
	out := make([]plannedResp, len(items))
	for i, it := range items {
		out[i] = plannedResp{
			ID:           it.ID,
			ActivityID:   it.ActivityID,
			ActivitySlug: it.ActivitySlug,
			ProgramID:    it.ProgramID,
			Phase:        it.Phase,
			PlannedAtMs:  it.PlannedTimeUtcMs,
			PlannedAt:    response.MillisToDateTime(it.PlannedTimeUtcMs),
		}
	}
	return out
}

type planResp struct {
	UserID          string        `json:"user_id"`
	ProgramID       string        `json:"program_id"`
	DurationDays    int           `json:"duration_days"`
	Timezone        string        `json:"timezone"`
	StartDate       string        `json:"start_date"`
	Planned         []plannedResp `json:"planned"`
	UnknownSlugs    []string      `json:"unknown_slugs,omitempty"`
	CalendarEvents  int           `json:"calendar_events"`
	CalendarSkipped int           `json:"calendar_skipped,omitempty"`
}

func (h *handler) newPlanResp(out plan.PlanOutput) planResp {
	return planResp{
		UserID:          out.UserID,
		ProgramID:       out.ProgramID,
		DurationDays:    out.DurationDays,
		Timezone:        out.Timezone,
		StartDate:       out.Start.Format(response.DateFormat),
		Planned:         newPlannedResp(out.Planned),
		UnknownSlugs:    out.UnknownSlugs,
		CalendarEvents:  out.CalendarEvents,
		CalendarSkipped: out.CalendarSkipped,
	}
}

type listPlannedResp struct {
	Planned []plannedResp `json:"planned"`
	Total   int           `json:"total"`
}

func (h *handler) newListPlannedResp(items []model.PlannedActivity) listPlannedResp {
	return listPlannedResp{
		Planned: newPlannedResp(items),
		Total:   len(items),
	}
}

type sequenceItemResp struct {
	Day        *int     `json:"day,omitempty"`
	Weekday    *int     `json:"weekday,omitempty"`
	Activities []string `json:"activities"`
}

type exitCriterionResp struct {
	Slug        string `json:"slug"`
	TargetTotal int    `json:"target_total"`
	DailyLimit  int    `json:"daily_limit,omitempty"`
}

type phaseResp struct {
	Name         string              `json:"name"`
	ExitCriteria []exitCriterionResp `json:"exit_criteria"`
	Sequence     []sequenceItemResp  `json:"sequence"`
}

type programResp struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	UserID string      `json:"user_id,omitempty"`
	Phases []phaseResp `json:"phases"`
}

func (h *handler) newProgramResp(p model.Program) programResp {
	resp := programResp{
		ID:     p.ID,
		Name:   p.Name,
		UserID: p.UserID,
		Phases: make([]phaseResp, len(p.Phases)),
	}
	for i, ph := range p.Phases {
		pr := phaseResp{
			Name:         ph.Name,
			ExitCriteria: make([]exitCriterionResp, len(ph.ExitCriteria)),
			Sequence:     make([]sequenceItemResp, len(ph.Sequence)),
		}
		for j, ec := range ph.ExitCriteria {
			er := exitCriterionResp{Slug: ec.Slug}
			if ec.Target != nil {
				er.TargetTotal = ec.Target.Total
			}
			if ec.Limit != nil {
				er.DailyLimit = ec.Limit.Daily
			}
			pr.ExitCriteria[j] = er
		}
		for j, it := range ph.Sequence {
			slugs := make([]string, len(it.Activities))
			for k, a := range it.Activities {
				slugs[k] = a.Slug
			}
			pr.Sequence[j] = sequenceItemResp{Day: it.Day, Weekday: it.Weekday, Activities: slugs}
		}
		resp.Phases[i] = pr
	}
	return resp
}
