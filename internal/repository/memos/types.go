package memos

import (
	"errors"
	"strings"
	"time"
)

// ErrMemoNotFound is returned when the API answers 404.
var ErrMemoNotFound = errors.New("memo not found")

// CreateMemoRequest is the body for POST /api/v1/memos.
type CreateMemoRequest struct {
	Content    string `json:"content"`
	Visibility string `json:"visibility"`
}

// UpdateMemoRequest is the body for PATCH /api/v1/memos/{uid}. UpdateMask is sent as a query parameter.
type UpdateMemoRequest struct {
	Content     string `json:"content,omitempty"`
	DisplayTime string `json:"displayTime,omitempty"`
	UpdateMask  string `json:"-"`
}

// ListMemosRequest selects a page of memos.
type ListMemosRequest struct {
	PageSize  int
	PageToken string
	Filter    string
}

// ListMemosResponse is one page of the list endpoint.
type ListMemosResponse struct {
	Memos         []Memo `json:"memos"`
	NextPageToken string `json:"nextPageToken"`
}

// Memo is the Memos API memo object.
type Memo struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	UID         string `json:"uid,omitempty"`
	Creator     string `json:"creator,omitempty"`
	Content     string `json:"content"`
	Visibility  string `json:"visibility,omitempty"`
	CreateTime  string `json:"createTime,omitempty"`
	UpdateTime  string `json:"updateTime,omitempty"`
	DisplayTime string `json:"displayTime,omitempty"`
}

// UIDFromName extracts {uid} from a "memos/{uid}" resource name.
func (m Memo) UIDFromName() string {
	if m.UID != "" {
		return m.UID
	}
	if uid, ok := strings.CutPrefix(m.Name, "memos/"); ok {
		return uid
	}
	return m.Name
}

func parseTimeMs(s string) int64 {
	if s == "" {
		return 0
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}

func formatTimeMs(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
