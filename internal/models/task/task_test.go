package task_test

import (
	"math"
	"testing"
	"time"

	"taskboard/internal/models/task"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDateOf_UsesLocation(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	moment := time.Date(2026, 3, 10, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), task.DateOf(moment, time.UTC))
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), task.DateOf(moment, moscow))
}

func TestTask_IsPastDue(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		due     *time.Time
		status  task.Status
		pastDue bool
		overdue bool
		today   bool
	}{
		{name: "no due date", due: nil, status: task.StatusTodo},
		{name: "due yesterday", due: &yesterday, status: task.StatusTodo, pastDue: true, overdue: true},
		{name: "due yesterday done", due: &yesterday, status: task.StatusDone, pastDue: true},
		{name: "due today", due: &today, status: task.StatusDoing, today: true},
		{name: "due today done", due: &today, status: task.StatusDone},
		{name: "due tomorrow", due: &tomorrow, status: task.StatusTodo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := &task.Task{DueDate: tt.due, Status: tt.status}
			assert.Equal(t, tt.pastDue, tk.IsPastDue(today))
			assert.Equal(t, tt.overdue, tk.IsOverdue(today))
			assert.Equal(t, tt.today, tk.IsDueToday(today))
		})
	}
}

func TestNormalizeSort(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		admin     bool
		wantField task.SortField
		wantOrder task.SortOrder
	}{
		{name: "default", wantField: task.SortByCreatedAt, wantOrder: task.SortDesc},
		{name: "title asc", sortBy: "title", sortOrder: "asc", wantField: task.SortByTitle, wantOrder: task.SortAsc},
		{name: "due date any order", sortBy: "due_date", sortOrder: "sideways", wantField: task.SortByDueDate, wantOrder: task.SortDesc},
		{name: "unknown field falls back", sortBy: "password_hash", sortOrder: "asc", wantField: task.SortByCreatedAt, wantOrder: task.SortDesc},
		{name: "user name for admin", sortBy: "user_name", sortOrder: "ASC", admin: true, wantField: task.SortByUserName, wantOrder: task.SortAsc},
		{name: "user name for user", sortBy: "user_name", sortOrder: "asc", wantField: task.SortByCreatedAt, wantOrder: task.SortDesc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, order := task.NormalizeSort(tt.sortBy, tt.sortOrder, tt.admin)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestNormalizePage(t *testing.T) {
	page, limit := task.NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = task.NormalizePage(3, 500)
	assert.Equal(t, 3, page)
	assert.Equal(t, task.MaxLimit, limit)

	page, limit = task.NormalizePage(math.MaxInt, task.MaxLimit)
	assert.Equal(t, task.MaxPage, page)
	assert.Positive(t, task.PageOffset(page, limit))
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, task.PageOffset(1, 10))
	assert.Equal(t, 20, task.PageOffset(3, 10))
	assert.Equal(t, 0, task.PageOffset(-5, 10))
	assert.GreaterOrEqual(t, task.PageOffset(math.MaxInt, math.MaxInt), 0)
	assert.Equal(t, task.PageOffset(4, 25), task.Filter{Page: 4, Limit: 25}.Offset())
}

func TestPatch_Apply(t *testing.T) {
	desc := "old"
	categoryID := uuid.New()
	categoryName := "Work"
	due := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tk := &task.Task{
		Title:        "title",
		Description:  &desc,
		Status:       task.StatusTodo,
		DueDate:      &due,
		CategoryID:   &categoryID,
		CategoryName: &categoryName,
	}

	assert.True(t, task.Patch{}.Empty())

	done := task.StatusDone
	patch := task.Patch{
		Description: task.Null[string](),
		Status:      &done,
		CategoryID:  task.Null[uuid.UUID](),
	}
	assert.False(t, patch.Empty())
	assert.True(t, patch.ChangesStatus(tk))

	patch.Apply(tk)

	assert.Equal(t, "title", tk.Title)
	assert.Nil(t, tk.Description)
	assert.Equal(t, task.StatusDone, tk.Status)
	assert.Equal(t, &due, tk.DueDate)
	assert.Nil(t, tk.CategoryID)
	assert.Nil(t, tk.CategoryName)
	assert.False(t, patch.ChangesStatus(tk))
}
