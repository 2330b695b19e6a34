package importer

import "errors"

var (
	ErrNoteNotFound     = errors.New("note not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrMissingNoteID    = errors.New("note id is required")
	ErrMissingUser      = errors.New("one of user id, email, token id or external user id is required")
	ErrEmptyContent     = errors.New("note content is required")
	ErrInvalidImportBy  = errors.New("importBy must be createdAtMs or lastSavedMs")
	ErrInvalidDateRange = errors.New("start date is after end date")
)
