package plan

import "errors"

var (
	ErrInvalidSequenceItem = errors.New("sequence item needs a day or a weekday")
	ErrInvalidWeekday      = errors.New("weekday must be between 1 (Monday) and 7 (Sunday)")
	ErrInvalidDay          = errors.New("day must be 1 or greater")
	ErrInvalidDuration     = errors.New("duration must not be negative")
	ErrInvalidStartDate    = errors.New("start date must be YYYY-MM-DD")
	ErrInvalidProgram      = errors.New("program definition is invalid")
	ErrProgramNotFound     = errors.New("program not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrMissingUser         = errors.New("user id is required")
	ErrMissingProgram      = errors.New("program id is required")
)
