package plan

import (
	"fmt"
	"time"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/pkg/datemath"
)

// Schedule expands a program into planned activities over in.DurationDays days starting on
// the calendar date of in.Start in in.Location. Each planned instant is local noon.
//
// Phases are scheduled in program order and each phase starts again from day one. Day
// indexed items are placed once. When a phase contains weekday items its sequence repeats
// week after week until the horizon is reached. Items whose date falls outside the horizon
// are dropped. Per-slug targets from the exit criteria cap the occurrences within a phase.
//
// The output keeps insertion order (phase, sequence item, activity). A sequence item that
// is neither day nor weekday indexed fails the whole call with ErrInvalidSequenceItem.
func Schedule(program model.Program, in ScheduleInput) ([]model.PlannedActivity, error) {
	if in.DurationDays < 0 {
		return nil, ErrInvalidDuration
	}
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	if err := Validate(program); err != nil {
		return nil, err
	}

	start := datemath.StartOfDay(in.Start, loc)
	var out []model.PlannedActivity
	for _, phase := range program.Phases {
		out = append(out, schedulePhase(program, phase, in, start, loc)...)
	}
	return out, nil
}

// Validate rejects sequence items that are neither day nor weekday indexed or whose index
// is out of range.
func Validate(program model.Program) error {
	for pi, phase := range program.Phases {
		for si, item := range phase.Sequence {
			switch {
			case item.Day != nil:
				if *item.Day < 1 {
					return fmt.Errorf("phase %d (%s) item %d: %w", pi+1, phase.Name, si+1, ErrInvalidDay)
				}
			case item.Weekday != nil:
				if *item.Weekday < 1 || *item.Weekday > 7 {
					return fmt.Errorf("phase %d (%s) item %d: %w", pi+1, phase.Name, si+1, ErrInvalidWeekday)
				}
			default:
				return fmt.Errorf("phase %d (%s) item %d: %w", pi+1, phase.Name, si+1, ErrInvalidSequenceItem)
			}
		}
	}
	return nil
}

type phaseState struct {
	daysScheduled int
	counts        map[string]int
	targets       map[string]int
	// lastWeekday is the day offset of the latest weekday-indexed slot, -1 before the first.
	lastWeekday int
}

func schedulePhase(program model.Program, phase model.Phase, in ScheduleInput, start time.Time, loc *time.Location) []model.PlannedActivity {
	st := phaseState{
		counts:      make(map[string]int),
		targets:     make(map[string]int, len(phase.ExitCriteria)),
		lastWeekday: -1,
	}
	for _, ec := range phase.ExitCriteria {
		target := 0
		if ec.Target != nil {
			target = ec.Target.Total
		}
		st.targets[ec.Slug] = target
	}

	var out []model.PlannedActivity
	for pass := 0; st.daysScheduled < in.DurationDays; pass++ {
		before := st.daysScheduled
		for _, item := range phase.Sequence {
			if st.daysScheduled >= in.DurationDays {
				break
			}

			var offset int
			switch {
			case item.Day != nil:
				if pass > 0 {
					continue
				}
				offset = *item.Day - 1
				st.daysScheduled = max(st.daysScheduled, *item.Day)
			default:
				offset = st.weekdayOffset(start, *item.Weekday)
				st.lastWeekday = offset
				st.daysScheduled += 7
			}

			if offset >= in.DurationDays {
				continue
			}
			at := datemath.LocalNoon(start, offset, loc)
			out = append(out, st.emit(program, phase, item, in, at)...)
		}
		if st.daysScheduled == before {
			break
		}
	}
	return out
}

// weekdayOffset finds the day offset of the next isoWeekday on or after the week window
// that daysScheduled points into. A slot landing on or before the previous weekday slot
// moves to the following week.
func (st *phaseState) weekdayOffset(start time.Time, isoWeekday int) int {
	base := 7 * (st.daysScheduled / 7)
	current := datemath.ISOWeekday(start.AddDate(0, 0, base))
	offset := base + (isoWeekday-current+7)%7
	if offset == base && st.daysScheduled > 0 && offset <= st.lastWeekday {
		offset += 7
	}
	return offset
}

func (st *phaseState) emit(program model.Program, phase model.Phase, item model.SequenceItem, in ScheduleInput, at time.Time) []model.PlannedActivity {
	var out []model.PlannedActivity
	for _, ref := range item.Activities {
		target, known := st.targets[ref.Slug]
		if !known {
			continue
		}
		if target > 0 && st.counts[ref.Slug] >= target {
			continue
		}
		act, ok := in.Activities[ref.Slug]
		if !ok {
			continue
		}
		out = append(out, model.PlannedActivity{
			UserID:           in.UserID,
			ActivityID:       act.ID,
			ActivitySlug:     ref.Slug,
			ProgramID:        program.ID,
			Phase:            phase.Name,
			PlannedTimeUtcMs: at.UTC().UnixMilli(),
		})
		st.counts[ref.Slug]++
	}
	return out
}
