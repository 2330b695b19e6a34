// Package parser turns free-form workout journal notes into structured activities.
//
// A note looks like:
//
//	2025-04-17 6:30pm
//
//	Deadlift
//	130
//	140 x 6
//
//	Pull-ups
//	Goal: 33 in 12 mins
//	7 7 4 4 3 4 4 2
//
// The leading date line is optional. Each blank-line separated block is one activity whose
// first line is the name and whose remaining lines are classified by Classify.
package parser

import (
	"time"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
)

// Result is a parsed note.
type Result struct {
	Date             *time.Time
	RemainingContent string
	Activities       []model.ParsedActivity
}

// Parse extracts the ordered list of activities from note content. It never returns an
// activity with an empty name.
func Parse(content string) []model.ParsedActivity {
	return ParseWithDate(content, time.UTC).Activities
}

// ParseWithDate is Parse that also reports the leading date, interpreted in loc.
func ParseWithDate(content string, loc *time.Location) Result {
	dr := ExtractDate(content, loc)

	res := Result{
		Date:             dr.Date,
		RemainingContent: dr.RemainingContent,
		Activities:       []model.ParsedActivity{},
	}

	for _, section := range SplitSections(dr.RemainingContent) {
		name, metadata := splitNameAndMetadata(section)
		if name == "" {
			continue
		}
		if metadata == nil {
			metadata = []string{}
		}
		res.Activities = append(res.Activities, model.ParsedActivity{
			NameRaw:        name,
			MetadataRaw:    metadata,
			MetadataParsed: Classify(metadata),
		})
	}

	return res
}
