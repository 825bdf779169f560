package inmemory

import (
	"context"
	"sort"
	"strings"

	"taskboard/internal/models/task"
	repo "taskboard/internal/repository"

	"github.com/google/uuid"
)

type TaskStorage struct {
	*Storage
}

func (s *TaskStorage) Create(ctx context.Context, t *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.checkRefs(t); err != nil {
		return err
	}
	if _, exists := s.tasks[t.ID]; exists {
		return repo.ErrDuplicate
	}

	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now

	cp := *t
	s.tasks[t.ID] = &cp
	s.taskIDs = append(s.taskIDs, t.ID)
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return s.joinedTask(t), nil
}

func (s *TaskStorage) Update(ctx context.Context, t *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.tasks[t.ID]
	if !ok {
		return repo.ErrNotFound
	}
	if err := s.checkRefs(t); err != nil {
		return err
	}

	existing.Title = t.Title
	existing.Description = t.Description
	existing.Status = t.Status
	existing.DueDate = t.DueDate
	existing.CategoryID = t.CategoryID
	existing.UpdatedAt = s.now()
	t.UpdatedAt = existing.UpdatedAt
	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.tasks, id)
	s.taskIDs = removeID(s.taskIDs, id)
	return nil
}

func (s *TaskStorage) List(ctx context.Context, f task.Filter) ([]*task.Task, int, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	matched := []*task.Task{}
	for _, id := range s.taskIDs {
		t := s.tasks[id]
		if !matches(t, f) {
			continue
		}
		matched = append(matched, s.joinedTask(t))
	}

	sortTasks(matched, f.SortBy, f.SortOrder)
	return paginate(matched, f.Offset(), f.Limit), len(matched), nil
}

// checkRefs проверяет ссылки задачи на владельца и категорию.
func (s *TaskStorage) checkRefs(t *task.Task) error {
	if _, ok := s.users[t.UserID]; !ok {
		return repo.ErrReferenced
	}
	if t.CategoryID != nil {
		if _, ok := s.categories[*t.CategoryID]; !ok {
			return repo.ErrReferenced
		}
	}
	return nil
}

func matches(t *task.Task, f task.Filter) bool {
	if f.OwnerID != nil && t.UserID != *f.OwnerID {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *f.CategoryID) {
		return false
	}
	if f.DueDateFrom != nil && (t.DueDate == nil || t.DueDate.Before(*f.DueDateFrom)) {
		return false
	}
	if f.DueDateTo != nil && (t.DueDate == nil || t.DueDate.After(*f.DueDateTo)) {
		return false
	}
	return true
}

// sortTasks сортирует устойчиво; при равенстве ключей порядок вставки
// (для DESC - обратный), как вторичная сортировка по id в SQL.
// Задачи без срока идут последними при ASC и первыми при DESC, как NULL в PostgreSQL.
func sortTasks(tasks []*task.Task, by task.SortField, order task.SortOrder) {
	desc := order != task.SortAsc
	if desc {
		for i, j := 0, len(tasks)-1; i < j; i, j = i+1, j-1 {
			tasks[i], tasks[j] = tasks[j], tasks[i]
		}
	}

	less := func(a, b *task.Task) int {
		switch by {
		case task.SortByUpdatedAt:
			return a.UpdatedAt.Compare(b.UpdatedAt)
		case task.SortByDueDate:
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return 0
			case a.DueDate == nil:
				return 1
			case b.DueDate == nil:
				return -1
			}
			return a.DueDate.Compare(*b.DueDate)
		case task.SortByTitle:
			return strings.Compare(a.Title, b.Title)
		case task.SortByStatus:
			return strings.Compare(string(a.Status), string(b.Status))
		case task.SortByUserName:
			return strings.Compare(a.UserName, b.UserName)
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		c := less(tasks[i], tasks[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}
