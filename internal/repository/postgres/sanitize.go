package postgres

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
)

// Column allow-lists per entity. Anything a caller sends outside these sets is
// dropped before a statement is built, so an unexpected key can never reach
// the store as a column.
var (
	projectCreateColumns = []string{
		"workspace_id", "name", "description", "status", "priority", "color",
		"visibility", "default_role", "default_task_status",
		"default_task_priority", "start_date", "end_date", "team_lead",
	}
	projectUpdateColumns = []string{
		"name", "description", "status", "priority", "color", "visibility",
		"default_role", "default_task_status", "default_task_priority",
		"start_date", "end_date", "team_lead", "progress",
	}
	taskCreateColumns = []string{
		"project_id", "title", "description", "status", "priority", "type",
		"assignee_id", "due_date",
	}
	taskUpdateColumns = []string{
		"project_id", "title", "description", "status", "priority", "type",
		"assignee_id", "due_date",
	}
	commentCreateColumns = []string{"task_id", "user_id", "body"}
)

// Foreign-key columns a UI form may leave blank. An empty string must become
// NULL; the store rejects "" as a key value.
var foreignKeyColumns = map[string]bool{
	"team_lead":   true,
	"assignee_id": true,
}

// sanitizeFields filters fields down to the allowed column set, converts
// blank foreign keys to NULL, and serializes date values to RFC 3339.
func sanitizeFields(fields domain.Fields, allowed []string) domain.Fields {
	out := make(domain.Fields, len(fields))
	for _, col := range allowed {
		v, ok := fields[col]
		if !ok {
			continue
		}
		if foreignKeyColumns[col] {
			if s, isStr := v.(string); isStr && s == "" {
				v = nil
			}
		}
		switch t := v.(type) {
		case time.Time:
			v = t.UTC().Format(time.RFC3339)
		case *time.Time:
			if t == nil {
				v = nil
			} else {
				v = t.UTC().Format(time.RFC3339)
			}
		}
		out[col] = v
	}
	return out
}

// insertQuery builds an INSERT over the sanitized fields with a RETURNING
// clause. Columns are emitted in sorted order so statements are deterministic.
func insertQuery(table string, fields domain.Fields, returning string) (string, []any) {
	cols := sortedColumns(fields)
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = fields[col]
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		returning,
	)
	return query, args
}

// updateQuery builds an UPDATE over the sanitized fields. updated_at is always
// touched, so the statement stays valid even when every field was filtered out.
func updateQuery(table string, id string, fields domain.Fields, returning string) (string, []any) {
	cols := sortedColumns(fields)
	assignments := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	args = append(args, id)
	for i, col := range cols {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, i+2))
		args = append(args, fields[col])
	}
	assignments = append(assignments, "updated_at = now()")
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $1 RETURNING %s",
		table,
		strings.Join(assignments, ", "),
		returning,
	)
	return query, args
}

func sortedColumns(fields domain.Fields) []string {
	cols := make([]string, 0, len(fields))
	for col := range fields {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}
