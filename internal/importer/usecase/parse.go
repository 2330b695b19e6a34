package usecase

import (
	"context"

	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/parser"
	"github.com/asyncopatedsoul/health-protocol/pkg/datemath"
)

// ParseNote extracts the leading date and the activities of a note.
func (uc *implUseCase) ParseNote(ctx context.Context, input importer.ParseNoteInput) (importer.ParseNoteOutput, error) {
	loc, err := datemath.LoadLocationOr(input.Timezone, uc.defaultTimezone())
	if err != nil {
		uc.l.Errorf(ctx, "ParseNote: load timezone: %v", err)
		return importer.ParseNoteOutput{}, err
	}

	res := parser.ParseWithDate(input.Content, loc)
	return importer.ParseNoteOutput{
		Date:             res.Date,
		RemainingContent: res.RemainingContent,
		Activities:       res.Activities,
	}, nil
}

func (uc *implUseCase) defaultTimezone() string {
	if uc.cfg.DefaultTimezone == "" {
		return model.DefaultTimezone
	}
	return uc.cfg.DefaultTimezone
}
