package activity

import "errors"

var (
	ErrEmptyName         = errors.New("activity name is required")
	ErrEmptyQuery        = errors.New("search query is required")
	ErrActivityNotFound  = errors.New("activity not found")
	ErrSearchUnavailable = errors.New("search service unavailable")
)
