package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/pkg/datemath"
	"github.com/asyncopatedsoul/health-protocol/pkg/response"
)

// --- Request DTOs ---

type parseReq struct {
	Content  string `json:"content"`
	Timezone string `json:"timezone"`
}

func (r parseReq) validate() error { return nil }

func (r parseReq) toInput() importer.ParseNoteInput {
	return importer.ParseNoteInput{Content: r.Content, Timezone: r.Timezone}
}

type createReq struct {
	UserID         string `json:"user_id" binding:"required"`
	Content        string `json:"content" binding:"required"`
	CreatedAtMs    int64  `json:"created_at_ms"`
	SkipDuplicates *bool  `json:"skip_duplicates"`
}

func (r createReq) validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return importer.ErrEmptyContent
	}
	return nil
}

func (r createReq) toInput() importer.CreateNoteInput {
	return importer.CreateNoteInput{
		UserID:         r.UserID,
		Content:        r.Content,
		CreatedAtMs:    r.CreatedAtMs,
		SkipDuplicates: r.SkipDuplicates,
	}
}

type importReq struct {
	NoteID         string  `json:"-"`
	SkipDuplicates *bool   `json:"skip_duplicates"`
	Threshold      float64 `json:"threshold" binding:"omitempty,gt=0,lte=1"`
}

func (r importReq) validate() error { return nil }

func (r importReq) toInput() importer.ImportNoteInput {
	return importer.ImportNoteInput{
		NoteID:         r.NoteID,
		SkipDuplicates: r.SkipDuplicates,
		Threshold:      r.Threshold,
	}
}

type batchReq struct {
	NoteIDs        []string `json:"note_ids" binding:"required,min=1,max=500"`
	SkipDuplicates *bool    `json:"skip_duplicates"`
	Threshold      float64  `json:"threshold" binding:"omitempty,gt=0,lte=1"`
}

func (r batchReq) validate() error { return nil }

func (r batchReq) toInput() importer.ImportNotesInput {
	return importer.ImportNotesInput{
		NoteIDs:        r.NoteIDs,
		SkipDuplicates: r.SkipDuplicates,
		Threshold:      r.Threshold,
	}
}

// importForUserReq accepts start and end as epoch milliseconds, YYYY-MM-DD, or a relative
// expression such as "today" or "in 3 days".
type importForUserReq struct {
	model.UserSelector
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	ImportBy       string  `json:"import_by" binding:"omitempty,oneof=createdAtMs lastSavedMs"`
	SkipDuplicates *bool   `json:"skip_duplicates"`
	Threshold      float64 `json:"threshold" binding:"omitempty,gt=0,lte=1"`

	startMs *int64
	endMs   *int64
}

func (r importForUserReq) validate() error {
	if r.UserSelector.IsZero() {
		return importer.ErrMissingUser
	}
	return nil
}

func (r *importForUserReq) resolveDates(p *datemath.Parser) error {
	start, end, err := p.ParseRangeMs(r.StartDate, r.EndDate, time.Now())
	if err != nil {
		return fmt.Errorf("%w: %v", importer.ErrInvalidDateRange, err)
	}
	r.startMs, r.endMs = start, end
	return nil
}

func (r importForUserReq) toInput() importer.ImportNotesForUserInput {
	return importer.ImportNotesForUserInput{
		User:           r.UserSelector,
		StartMs:        r.startMs,
		EndMs:          r.endMs,
		ImportBy:       repository.NoteTimeField(r.ImportBy),
		SkipDuplicates: r.SkipDuplicates,
		Threshold:      r.Threshold,
	}
}

// --- Response DTOs ---

type parsedActivityResp struct {
	Name     string         `json:"name"`
	Metadata []string       `json:"metadata"`
	Kind     string         `json:"kind"`
	Parsed   model.Metadata `json:"parsed"`
}

func newParsedActivityResp(pa model.ParsedActivity) parsedActivityResp {
	md := pa.MetadataParsed
	if md == nil {
		md = model.Raw{Lines: pa.MetadataRaw}
	}
	return parsedActivityResp{
		Name:     pa.NameRaw,
		Metadata: pa.MetadataRaw,
		Kind:     string(md.Kind()),
		Parsed:   md,
	}
}

type parseResp struct {
	Date             *response.DateTime   `json:"date,omitempty"`
	RemainingContent string               `json:"remaining_content"`
	Activities       []parsedActivityResp `json:"activities"`
}

func (h *handler) newParseResp(out importer.ParseNoteOutput) parseResp {
	resp := parseResp{
		RemainingContent: out.RemainingContent,
		Activities:       make([]parsedActivityResp, len(out.Activities)),
	}
	if out.Date != nil {
		d := response.DateTime(*out.Date)
		resp.Date = &d
	}
	for i, pa := range out.Activities {
		resp.Activities[i] = newParsedActivityResp(pa)
	}
	return resp
}

type noteResp struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Source      string            `json:"source"`
	CreatedAt   response.DateTime `json:"created_at"`
	ContentSize int               `json:"content_size"`
}

func (h *handler) newCreateResp(out importer.CreateNoteOutput) noteResp {
	return noteResp{
		ID:          out.Note.ID,
		UserID:      out.Note.UserID,
		Source:      string(out.Note.Source),
		CreatedAt:   response.MillisToDateTime(out.Note.CreatedAtMs),
		ContentSize: len(out.Note.Content),
	}
}

type activityResultResp struct {
	Name         string `json:"name"`
	Success      bool   `json:"success"`
	Skipped      bool   `json:"skipped,omitempty"`
	Reason       string `json:"reason,omitempty"`
	Error        string `json:"error,omitempty"`
	ActivityID   string `json:"activity_id,omitempty"`
	ActivityName string `json:"activity_name,omitempty"`
	Created      bool   `json:"created,omitempty"`
	EventID      string `json:"event_id,omitempty"`
}

type importResp struct {
	NoteID          string               `json:"note_id"`
	ActivitiesFound int                  `json:"activities_found"`
	EventsCreated   int                  `json:"events_created"`
	Skipped         int                  `json:"skipped"`
	Errors          int                  `json:"errors"`
	Results         []activityResultResp `json:"results"`
}

func (h *handler) newImportResp(out importer.ImportNoteOutput) importResp {
	resp := importResp{
		NoteID:          out.NoteID,
		ActivitiesFound: out.ActivitiesFound,
		EventsCreated:   out.EventsCreated,
		Skipped:         out.Skipped,
		Errors:          out.Errors,
		Results:         make([]activityResultResp, len(out.Results)),
	}
	for i, r := range out.Results {
		item := activityResultResp{
			Name:    r.Parsed.NameRaw,
			Success: r.Success,
			Skipped: r.Skipped,
			Reason:  r.Reason,
			Error:   r.Error,
			Created: r.Created,
			EventID: r.EventID,
		}
		if r.Activity != nil {
			item.ActivityID = r.Activity.ID
			item.ActivityName = r.Activity.Name
		}
		resp.Results[i] = item
	}
	return resp
}

type noteResultResp struct {
	NoteID          string `json:"note_id"`
	Success         bool   `json:"success"`
	Error           string `json:"error,omitempty"`
	ActivitiesFound int    `json:"activities_found"`
	EventsCreated   int    `json:"events_created"`
	Skipped         int    `json:"skipped"`
	Errors          int    `json:"errors"`
}

type bulkResp struct {
	UserID          string           `json:"user_id,omitempty"`
	NotesProcessed  int              `json:"notes_processed"`
	ActivitiesFound int              `json:"activities_found"`
	EventsCreated   int              `json:"events_created"`
	Skipped         int              `json:"skipped"`
	Errors          int              `json:"errors"`
	Notes           []noteResultResp `json:"notes"`
}

func (h *handler) newBulkResp(out importer.ImportNotesOutput) bulkResp {
	resp := bulkResp{
		UserID:          out.UserID,
		NotesProcessed:  out.NotesProcessed,
		ActivitiesFound: out.ActivitiesFound,
		EventsCreated:   out.EventsCreated,
		Skipped:         out.Skipped,
		Errors:          out.Errors,
		Notes:           make([]noteResultResp, len(out.Notes)),
	}
	for i, n := range out.Notes {
		resp.Notes[i] = noteResultResp{
			NoteID:          n.NoteID,
			Success:         n.Success,
			Error:           n.Error,
			ActivitiesFound: n.ActivitiesFound,
			EventsCreated:   n.EventsCreated,
			Skipped:         n.Skipped,
			Errors:          n.Errors,
		}
	}
	return resp
}
