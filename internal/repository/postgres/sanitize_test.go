package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fizzhq/fizz/fizz-client/internal/domain"
)

func TestSanitizeFields_StripsUnknownKeys(t *testing.T) {
	fields := domain.Fields{
		"title":       "T",
		"foo":         "bar",
		"assignee_id": "",
	}
	out := sanitizeFields(fields, taskCreateColumns)

	assert.NotContains(t, out, "foo")
	assert.Contains(t, out, "title")
}

func TestSanitizeFields_BlankForeignKeyBecomesNull(t *testing.T) {
	out := sanitizeFields(domain.Fields{
		"title":       "T",
		"assignee_id": "",
	}, taskCreateColumns)

	require.Contains(t, out, "assignee_id")
	assert.Nil(t, out["assignee_id"])
}

func TestSanitizeFields_NonBlankForeignKeyKept(t *testing.T) {
	out := sanitizeFields(domain.Fields{
		"assignee_id": "user_1",
	}, taskCreateColumns)

	assert.Equal(t, "user_1", out["assignee_id"])
}

func TestSanitizeFields_SerializesDates(t *testing.T) {
	due := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	out := sanitizeFields(domain.Fields{
		"due_date": due,
	}, taskCreateColumns)

	assert.Equal(t, "2026-03-14T09:30:00Z", out["due_date"])
}

func TestSanitizeFields_SerializesDatePointers(t *testing.T) {
	start := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	out := sanitizeFields(domain.Fields{
		"start_date": &start,
		"end_date":   (*time.Time)(nil),
	}, projectUpdateColumns)

	assert.Equal(t, "2026-01-02T00:00:00Z", out["start_date"])
	assert.Nil(t, out["end_date"])
}

func TestSanitizeFields_TeamLeadBlankBecomesNull(t *testing.T) {
	out := sanitizeFields(domain.Fields{
		"name":      "Alpha",
		"team_lead": "",
	}, projectCreateColumns)

	require.Contains(t, out, "team_lead")
	assert.Nil(t, out["team_lead"])
}

func TestInsertQuery_DeterministicColumnOrder(t *testing.T) {
	fields := domain.Fields{
		"title":      "Write spec",
		"project_id": "P1",
		"status":     "TODO",
	}
	query, args := insertQuery("tasks", fields, "id")

	assert.Equal(t,
		"INSERT INTO tasks (project_id, status, title) VALUES ($1, $2, $3) RETURNING id",
		query)
	assert.Equal(t, []any{"P1", "TODO", "Write spec"}, args)
}

func TestUpdateQuery_AlwaysTouchesUpdatedAt(t *testing.T) {
	query, args := updateQuery("tasks", "T1", domain.Fields{}, "id")

	assert.Equal(t, "UPDATE tasks SET updated_at = now() WHERE id = $1 RETURNING id", query)
	assert.Equal(t, []any{"T1"}, args)
}

func TestUpdateQuery_NumbersPlaceholdersAfterID(t *testing.T) {
	query, args := updateQuery("tasks", "T1", domain.Fields{
		"title":  "Y",
		"status": "DONE",
	}, "id")

	assert.Equal(t,
		"UPDATE tasks SET status = $2, title = $3, updated_at = now() WHERE id = $1 RETURNING id",
		query)
	assert.Equal(t, []any{"T1", "DONE", "Y"}, args)
}
