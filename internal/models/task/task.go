package task

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Description  *string    `json:"description" db:"description"`
	Status       Status     `json:"status" db:"status"`
	DueDate      *time.Time `json:"due_date" db:"due_date"`
	CategoryID   *uuid.UUID `json:"category_id" db:"category_id"`
	CategoryName *string    `json:"category_name" db:"category_name"`
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	UserName     string     `json:"user_name" db:"user_name"`
	UserEmail    string     `json:"user_email" db:"user_email"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

type Status string

const StatusTodo Status = "todo"
const StatusDoing Status = "doing"
const StatusDone Status = "done"

var Statuses = []Status{StatusTodo, StatusDoing, StatusDone}

func (s Status) Valid() bool {
	return s == StatusTodo || s == StatusDoing || s == StatusDone
}

// DateOf возвращает календарную дату момента t в зоне loc,
// записанную как полночь UTC. Так хранятся все сроки задач.
func DateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsPastDue: срок задан и строго раньше today (today получен через DateOf).
func (t *Task) IsPastDue(today time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(today)
}

func (t *Task) IsOverdue(today time.Time) bool {
	return t.Status != StatusDone && t.IsPastDue(today)
}

func (t *Task) IsDueToday(today time.Time) bool {
	return t.Status != StatusDone && t.DueDate != nil && t.DueDate.Equal(today)
}
