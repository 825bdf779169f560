package inmemory

import (
	"context"
	"sort"

	"taskboard/internal/models/category"
	repo "taskboard/internal/repository"

	"github.com/google/uuid"
)

type CategoryStorage struct {
	*Storage
}

func (s *CategoryStorage) Create(ctx context.Context, c *category.Category) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.nameTaken(c.Name, c.ID) {
		return repo.ErrDuplicate
	}

	now := s.now()
	c.CreatedAt = now
	c.UpdatedAt = now

	cp := *c
	s.categories[c.ID] = &cp
	s.categoryIDs = append(s.categoryIDs, c.ID)
	return nil
}

func (s *CategoryStorage) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return s.joinedCategory(c), nil
}

func (s *CategoryStorage) GetByName(ctx context.Context, name string) (*category.Category, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, id := range s.categoryIDs {
		if c := s.categories[id]; c.Name == name {
			return s.joinedCategory(c), nil
		}
	}
	return nil, repo.ErrNotFound
}

// List возвращает категории по алфавиту.
func (s *CategoryStorage) List(ctx context.Context) ([]*category.Category, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*category.Category, 0, len(s.categoryIDs))
	for _, id := range s.categoryIDs {
		res = append(res, s.joinedCategory(s.categories[id]))
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Name < res[j].Name
	})
	return res, nil
}

func (s *CategoryStorage) Update(ctx context.Context, c *category.Category) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.categories[c.ID]
	if !ok {
		return repo.ErrNotFound
	}
	if s.nameTaken(c.Name, c.ID) {
		return repo.ErrDuplicate
	}

	existing.Name = c.Name
	existing.Description = c.Description
	existing.UpdatedAt = s.now()
	c.UpdatedAt = existing.UpdatedAt
	return nil
}

func (s *CategoryStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.categories[id]; !ok {
		return repo.ErrNotFound
	}
	if s.countTasks(id) > 0 {
		return repo.ErrInUse
	}

	delete(s.categories, id)
	s.categoryIDs = removeID(s.categoryIDs, id)
	return nil
}

func (s *CategoryStorage) CountTasks(ctx context.Context, id uuid.UUID) (int, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.countTasks(id), nil
}

func (s *CategoryStorage) countTasks(id uuid.UUID) int {
	count := 0
	for _, t := range s.tasks {
		if t.CategoryID != nil && *t.CategoryID == id {
			count++
		}
	}
	return count
}

func (s *CategoryStorage) nameTaken(name string, self uuid.UUID) bool {
	for _, c := range s.categories {
		if c.Name == name && c.ID != self {
			return true
		}
	}
	return false
}
