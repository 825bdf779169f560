package task

import (
	"time"

	"github.com/google/uuid"
)

// Field - значение, которое можно явно задать, явно очистить (Set и Value == nil)
// или не передать вовсе.
type Field[T any] struct {
	Set   bool
	Value *T
}

func Value[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

// Patch описывает частичное обновление задачи. Незаданные поля не меняются.
type Patch struct {
	Title       *string
	Description Field[string]
	Status      *Status
	DueDate     Field[time.Time]
	CategoryID  Field[uuid.UUID]
}

func (p Patch) Empty() bool {
	return p.Title == nil && !p.Description.Set && p.Status == nil && !p.DueDate.Set && !p.CategoryID.Set
}

// ChangesStatus сообщает, пытается ли патч сменить статус задачи t.
func (p Patch) ChangesStatus(t *Task) bool {
	return p.Status != nil && *p.Status != t.Status
}

func (p Patch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description.Set {
		t.Description = p.Description.Value
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate.Set {
		t.DueDate = p.DueDate.Value
	}
	if p.CategoryID.Set {
		t.CategoryID = p.CategoryID.Value
		if p.CategoryID.Value == nil {
			t.CategoryName = nil
		}
	}
}

// Draft - данные новой задачи. Пустой Status означает StatusTodo.
type Draft struct {
	Title       string
	Description *string
	Status      Status
	DueDate     *time.Time
	CategoryID  *uuid.UUID
}
