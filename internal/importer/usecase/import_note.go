package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asyncopatedsoul/health-protocol/internal/activity"
	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/observability"
	"github.com/asyncopatedsoul/health-protocol/internal/parser"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/pkg/datemath"
)

// ImportNote parses one note and records an activity event per parsed activity.
func (uc *implUseCase) ImportNote(ctx context.Context, input importer.ImportNoteInput) (importer.ImportNoteOutput, error) {
	if strings.TrimSpace(input.NoteID) == "" {
		return importer.ImportNoteOutput{}, importer.ErrMissingNoteID
	}

	note, err := uc.notes.GetNote(ctx, input.NoteID)
	if err != nil {
		observability.RecordNoteImported(uc.now(), err)
		if errors.Is(err, repository.ErrNotFound) {
			return importer.ImportNoteOutput{}, fmt.Errorf("%w: %s", importer.ErrNoteNotFound, input.NoteID)
		}
		uc.l.Errorf(ctx, "ImportNote: GetNote %s: %v", input.NoteID, err)
		return importer.ImportNoteOutput{}, err
	}

	out, err := uc.importLoaded(ctx, note, uc.skipDuplicates(input.SkipDuplicates), input.Threshold)
	observability.RecordNoteImported(uc.now(), err)
	return out, err
}

func (uc *implUseCase) skipDuplicates(v *bool) bool {
	if v == nil {
		return uc.cfg.SkipDuplicates
	}
	return *v
}

func (uc *implUseCase) threshold(v float64) float64 {
	if v > 0 {
		return v
	}
	return uc.cfg.Threshold
}

// importLoaded runs the per-note procedure. Per-activity failures are captured in the
// results; only failures that make the whole note unprocessable are returned.
// An extracted date is written back to the note only after its events exist, because the
// write can trigger another import of the same note through the Memos webhook.
func (uc *implUseCase) importLoaded(ctx context.Context, note model.Note, skipDuplicates bool, threshold float64) (importer.ImportNoteOutput, error) {
	out := importer.ImportNoteOutput{NoteID: note.ID, Results: []importer.ActivityResult{}}

	loc := uc.userLocation(ctx, note.UserID)
	parsed := parser.ParseWithDate(note.Content, loc)
	if parsed.Date != nil {
		tsMs := parsed.Date.UnixMilli()
		note.ActivityTimestampMs = &tsMs
		defer uc.applyExtractedDate(ctx, note.ID, parsed.RemainingContent, tsMs)
	}

	out.ActivitiesFound = len(parsed.Activities)
	uc.l.Infof(ctx, "ImportNote: note=%s user=%s activities=%d skipDuplicates=%v", note.ID, note.UserID, out.ActivitiesFound, skipDuplicates)
	if out.ActivitiesFound == 0 {
		return out, nil
	}

	var seen map[string]bool
	if skipDuplicates {
		var err error
		seen, err = uc.importedNames(ctx, note)
		if err != nil {
			return out, err
		}
	} else {
		removed, err := uc.events.DeleteEventsForNote(ctx, note.ID)
		if err != nil {
			uc.l.Errorf(ctx, "ImportNote: DeleteEventsForNote %s: %v", note.ID, err)
			return out, err
		}
		if removed > 0 {
			uc.l.Infof(ctx, "ImportNote: note=%s removed %d previous events", note.ID, removed)
		}
	}

	timestamp := note.Timestamp(uc.now().UnixMilli())
	for _, pa := range parsed.Activities {
		if seen[normalizeName(pa.NameRaw)] {
			out.Skipped++
			out.Results = append(out.Results, importer.ActivityResult{
				Parsed:  pa,
				Success: true,
				Skipped: true,
				Reason:  importer.ReasonDuplicate,
			})
			continue
		}

		res := uc.importActivity(ctx, note, pa, timestamp, uc.threshold(threshold))
		if res.Success {
			out.EventsCreated++
		} else {
			out.Errors++
		}
		out.Results = append(out.Results, res)
	}

	observability.RecordActivityResults(out.EventsCreated, out.Skipped, out.Errors)
	return out, nil
}

// importActivity resolves one parsed activity and appends its event.
func (uc *implUseCase) importActivity(ctx context.Context, note model.Note, pa model.ParsedActivity, timestamp int64, threshold float64) importer.ActivityResult {
	res := importer.ActivityResult{Parsed: pa}

	resolved, err := uc.resolver.Resolve(ctx, activity.ResolveInput{
		Name:        pa.NameRaw,
		Threshold:   threshold,
		RawMetadata: pa.MetadataRaw,
	})
	if err != nil {
		uc.l.Errorf(ctx, "ImportNote: note=%s resolve %q: %v", note.ID, pa.NameRaw, err)
		res.Error = err.Error()
		return res
	}
	act := resolved.Activity
	res.Activity = &act
	res.Created = resolved.Created

	parsedCopy := pa
	ev, err := uc.events.InsertEvent(ctx, repository.InsertEventOptions{
		UserID:      note.UserID,
		Type:        model.EventTypeActivity,
		Status:      model.EventStatusCompleted,
		TimestampMs: timestamp,
		Context: model.EventContext{
			ActivityID: act.ID,
			NoteID:     note.ID,
		},
		Metadata: model.EventMetadata{
			Activity: &act,
			Parsed:   &parsedCopy,
		},
	})
	if err != nil {
		uc.l.Errorf(ctx, "ImportNote: note=%s InsertEvent %q: %v", note.ID, pa.NameRaw, err)
		res.Error = err.Error()
		return res
	}

	if err := uc.publisher.PublishActivityEvent(ctx, ev); err != nil {
		uc.l.Warnf(ctx, "ImportNote: publish event %s: %v", ev.ID, err)
	}

	res.Success = true
	res.EventID = ev.ID
	return res
}

// importedNames returns the normalised names of activities already imported from note.
// The snapshot is taken once so repeated names inside the same note are all imported.
func (uc *implUseCase) importedNames(ctx context.Context, note model.Note) (map[string]bool, error) {
	events, err := uc.events.ListEventsForUser(ctx, repository.ListEventsOptions{
		UserID: note.UserID,
		Type:   model.EventTypeActivity,
	})
	if err != nil {
		uc.l.Errorf(ctx, "ImportNote: ListEventsForUser %s: %v", note.UserID, err)
		return nil, err
	}

	names := make(map[string]bool)
	cache := make(map[string]string)
	for _, ev := range events {
		if ev.Context.NoteID != note.ID {
			continue
		}
		name := uc.eventActivityName(ctx, ev, cache)
		if name != "" {
			names[normalizeName(name)] = true
		}
	}
	return names, nil
}

// eventActivityName prefers the current catalog name and falls back to the copy stored on
// the event.
func (uc *implUseCase) eventActivityName(ctx context.Context, ev model.Event, cache map[string]string) string {
	id := ev.Context.ActivityID
	if id != "" {
		if name, ok := cache[id]; ok {
			return name
		}
		act, err := uc.activities.GetActivity(ctx, id)
		if err == nil {
			cache[id] = act.Name
			return act.Name
		}
		if !errors.Is(err, repository.ErrNotFound) {
			uc.l.Warnf(ctx, "ImportNote: GetActivity %s: %v", id, err)
		}
	}
	if ev.Metadata.Activity != nil {
		return ev.Metadata.Activity.Name
	}
	return ""
}

// applyExtractedDate persists the stripped content and activity timestamp on the note. A
// failed update is only logged.
func (uc *implUseCase) applyExtractedDate(ctx context.Context, noteID, content string, tsMs int64) {
	if _, err := uc.notes.UpdateNote(ctx, repository.UpdateNoteOptions{
		ID:                  noteID,
		Content:             &content,
		ActivityTimestampMs: &tsMs,
	}); err != nil {
		uc.l.Warnf(ctx, "ImportNote: UpdateNote %s: %v", noteID, err)
	}
}

func (uc *implUseCase) userLocation(ctx context.Context, userID string) *time.Location {
	tz := uc.defaultTimezone()
	if userID != "" && uc.users != nil {
		user, err := uc.users.GetUser(ctx, userID)
		switch {
		case err == nil:
			if user.Timezone != "" {
				tz = user.Timezone
			}
		case errors.Is(err, repository.ErrNotFound):
		default:
			uc.l.Warnf(ctx, "ImportNote: GetUser %s: %v", userID, err)
		}
	}

	loc, err := datemath.LoadLocationOr(tz, model.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
