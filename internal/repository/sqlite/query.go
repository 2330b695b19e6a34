package sqlite

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

// whereBuilder accumulates AND conditions with positional '?' args.
type whereBuilder struct {
	conditions []string
	args       []any
}

func (b *whereBuilder) add(cond string, arg any) {
	b.conditions = append(b.conditions, cond)
	b.args = append(b.args, arg)
}

func (b *whereBuilder) addRange(column string, start, end *int64) {
	if start != nil {
		b.add(column+" >= ?", *start)
	}
	if end != nil {
		b.add(column+" <= ?", *end)
	}
}

func (b *whereBuilder) String() string {
	if len(b.conditions) == 0 {
		return "1=1"
	}
	return strings.Join(b.conditions, " AND ")
}

func noteTimeColumn(f repository.NoteTimeField) string {
	if f == repository.NoteTimeLastSaved {
		return "last_saved_ms"
	}
	return "created_at_ms"
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func decodeStrings(raw string) []string {
	var out []string
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func joinComma(parts []string) string {
	return strings.Join(parts, ", ")
}
