package postgre

import (
	"fmt"
	"strings"

	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

// whereBuilder accumulates AND conditions with $n placeholders.
type whereBuilder struct {
	conditions []string
	args       []any
}

func (b *whereBuilder) add(format string, arg any) {
	b.args = append(b.args, arg)
	b.conditions = append(b.conditions, fmt.Sprintf(format, len(b.args)))
}

func (b *whereBuilder) addRange(column string, start, end *int64) {
	if start != nil {
		b.add(column+" >= $%d", *start)
	}
	if end != nil {
		b.add(column+" <= $%d", *end)
	}
}

// next returns the placeholder for an argument appended after the conditions.
func (b *whereBuilder) next(arg any) string {
	b.args = append(b.args, arg)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *whereBuilder) String() string {
	if len(b.conditions) == 0 {
		return "TRUE"
	}
	return strings.Join(b.conditions, " AND ")
}

func noteTimeColumn(f repository.NoteTimeField) string {
	if f == repository.NoteTimeLastSaved {
		return "last_saved_ms"
	}
	return "created_at_ms"
}
