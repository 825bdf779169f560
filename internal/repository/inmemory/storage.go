package inmemory

import (
	"context"
	"sync"
	"time"

	"taskboard/internal/logger"
	"taskboard/internal/models/category"
	"taskboard/internal/models/task"
	"taskboard/internal/models/user"

	"github.com/google/uuid"
)

// Storage держит все сущности под одним мьютексом, чтобы каскады и проверки
// ссылок выполнялись атомарно, как в реляционном хранилище.
// Срезы *IDs хранят порядок вставки.
type Storage struct {
	mtx *sync.RWMutex
	now func() time.Time

	users   map[uuid.UUID]*user.User
	userIDs []uuid.UUID

	categories  map[uuid.UUID]*category.Category
	categoryIDs []uuid.UUID

	tasks   map[uuid.UUID]*task.Task
	taskIDs []uuid.UUID
}

func New() *Storage {
	return &Storage{
		mtx:        &sync.RWMutex{},
		now:        time.Now,
		users:      make(map[uuid.UUID]*user.User),
		categories: make(map[uuid.UUID]*category.Category),
		tasks:      make(map[uuid.UUID]*task.Task),
	}
}

// WithClock подменяет источник времени для created_at/updated_at.
func (s *Storage) WithClock(now func() time.Time) *Storage {
	s.now = now
	return s
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	logger.Debug("Repository: Соединение стабильно")
	return nil
}

func (s *Storage) Close() {}

func (s *Storage) Users() *UserStorage {
	return &UserStorage{s}
}

func (s *Storage) Categories() *CategoryStorage {
	return &CategoryStorage{s}
}

func (s *Storage) Tasks() *TaskStorage {
	return &TaskStorage{s}
}

func (s *Storage) Reports() *ReportStorage {
	return &ReportStorage{s}
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for ind, val := range ids {
		if val == id {
			return append(ids[:ind], ids[ind+1:]...)
		}
	}
	return ids
}

func cloneUser(u *user.User) *user.User {
	cp := *u
	return &cp
}

// joinedCategory дополняет копию категории именем автора (nil, если автор удалён).
func (s *Storage) joinedCategory(c *category.Category) *category.Category {
	cp := *c
	cp.CreatedByName = nil
	if c.CreatedBy != nil {
		if u, ok := s.users[*c.CreatedBy]; ok {
			name := u.Name
			cp.CreatedByName = &name
		}
	}
	return &cp
}

// joinedTask дополняет копию задачи именем категории и данными владельца.
func (s *Storage) joinedTask(t *task.Task) *task.Task {
	cp := *t
	cp.CategoryName = nil
	if t.CategoryID != nil {
		if c, ok := s.categories[*t.CategoryID]; ok {
			name := c.Name
			cp.CategoryName = &name
		}
	}
	if u, ok := s.users[t.UserID]; ok {
		cp.UserName = u.Name
		cp.UserEmail = u.Email
	}
	return &cp
}
