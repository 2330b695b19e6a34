package sync

// Memos webhook activity types.
const (
	ActivityMemoCreated = "memos.memo.created"
	ActivityMemoUpdated = "memos.memo.updated"
	ActivityMemoDeleted = "memos.memo.deleted"
)

// MemosWebhookPayload matches Memos API v1 webhook format.
type MemosWebhookPayload struct {
	ActivityType string `json:"activityType" binding:"required"` // e.g., "memos.memo.created"
	Memo         struct {
		Name string `json:"name"` // e.g., "memos/123"
		UID  string `json:"uid"`  // Short UID (Base58)
	} `json:"memo"`
}

// NoteID returns the journal note id of the memo, "memos/{uid}".
func (p MemosWebhookPayload) NoteID() string {
	if p.Memo.Name != "" {
		return p.Memo.Name
	}
	if p.Memo.UID == "" {
		return ""
	}
	return "memos/" + p.Memo.UID
}
