package model

// PlannedActivity is a future occurrence of an activity produced by the scheduler.
type PlannedActivity struct {
	ID               string `json:"id"`
	UserID           string `json:"userId"`
	ActivityID       string `json:"activityId"`
	ActivitySlug     string `json:"activitySlug"`
	ProgramID        string `json:"programId"`
	ProtocolID       string `json:"protocolId,omitempty"`
	Phase            string `json:"phase,omitempty"`
	PlannedTimeUtcMs int64  `json:"plannedTimeUtcMs"`
}
