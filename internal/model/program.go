package model

// Program is a declarative multi-phase training plan.
type Program struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	UserID   string  `json:"userId,omitempty" yaml:"userId,omitempty"`
	AuthorID string  `json:"authorId,omitempty" yaml:"authorId,omitempty"`
	Phases   []Phase `json:"phases" yaml:"phases"`
}

// Phase is one stage of a program.
type Phase struct {
	Name         string          `json:"name" yaml:"name"`
	ExitCriteria []ExitCriterion `json:"exitCriteria" yaml:"exitCriteria"`
	Sequence     []SequenceItem  `json:"sequence" yaml:"sequence"`
}

// ExitCriterion bounds how often an activity is scheduled within a phase.
type ExitCriterion struct {
	Slug   string  `json:"slug" yaml:"slug"`
	Target *Target `json:"target,omitempty" yaml:"target,omitempty"`
	Limit  *Limit  `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// Target is the number of occurrences a phase aims for. Zero means unlimited.
type Target struct {
	Total int `json:"total,omitempty" yaml:"total,omitempty"`
	Daily int `json:"daily,omitempty" yaml:"daily,omitempty"`
}

// Limit caps occurrences per day.
type Limit struct {
	Daily int `json:"daily,omitempty" yaml:"daily,omitempty"`
}

// SequenceItem is a scheduled slot anchored to a 1-indexed day or an ISO weekday (1=Monday).
type SequenceItem struct {
	Day        *int      `json:"day,omitempty" yaml:"day,omitempty"`
	Weekday    *int      `json:"weekday,omitempty" yaml:"weekday,omitempty"`
	Activities []SlugRef `json:"activities" yaml:"activities"`
}

// SlugRef points at a catalog activity by slug.
type SlugRef struct {
	Slug string `json:"slug" yaml:"slug"`
}
