package model

// Activity is a canonical catalog entry, e.g. "Deadlift".
type Activity struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Slug         string   `json:"slug,omitempty"`
	Description  string   `json:"description,omitempty"`
	Category     string   `json:"category,omitempty"`
	MuscleGroups []string `json:"muscleGroups,omitempty"`
	Equipment    []string `json:"equipment,omitempty"`
	CreatedAtMs  int64    `json:"createdAtMs,omitempty"`
}
