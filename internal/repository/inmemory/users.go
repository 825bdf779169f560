package inmemory

import (
	"context"
	"sort"
	"strings"

	"taskboard/internal/models/report"
	"taskboard/internal/models/task"
	"taskboard/internal/models/user"
	repo "taskboard/internal/repository"

	"github.com/google/uuid"
)

type UserStorage struct {
	*Storage
}

func (s *UserStorage) Create(ctx context.Context, u *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.emailTaken(u.Email, u.ID) {
		return repo.ErrDuplicate
	}
	if _, exists := s.users[u.ID]; exists {
		return repo.ErrDuplicate
	}

	now := s.now()
	u.CreatedAt = now
	u.UpdatedAt = now

	s.users[u.ID] = cloneUser(u)
	s.userIDs = append(s.userIDs, u.ID)
	return nil
}

func (s *UserStorage) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, id := range s.userIDs {
		if u := s.users[id]; u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *UserStorage) Update(ctx context.Context, u *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.users[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	if s.emailTaken(u.Email, u.ID) {
		return repo.ErrDuplicate
	}

	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = s.now()
	s.users[u.ID] = cloneUser(u)
	return nil
}

// Delete удаляет пользователя и все его задачи.
func (s *UserStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.users[id]; !ok {
		return repo.ErrNotFound
	}

	for _, taskID := range append([]uuid.UUID(nil), s.taskIDs...) {
		if s.tasks[taskID].UserID == id {
			delete(s.tasks, taskID)
			s.taskIDs = removeID(s.taskIDs, taskID)
		}
	}

	delete(s.users, id)
	s.userIDs = removeID(s.userIDs, id)
	return nil
}

func (s *UserStorage) List(ctx context.Context, f user.ListFilter) (*report.UserList, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))
	matched := []*report.UserSummary{}
	for i := len(s.userIDs) - 1; i >= 0; i-- {
		u := s.users[s.userIDs[i]]
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Name), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}

		summary := &report.UserSummary{User: *cloneUser(u)}
		for _, t := range s.tasks {
			if t.UserID != u.ID {
				continue
			}
			summary.TaskCount++
			if t.Status == task.StatusDone {
				summary.CompletedTasks++
			}
		}
		matched = append(matched, summary)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return &report.UserList{
		Users: paginate(matched, f.Offset(), f.Limit),
		Total: len(matched),
		Page:  f.Page,
		Limit: f.Limit,
	}, nil
}

func (s *UserStorage) Count(ctx context.Context) (int, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return len(s.users), nil
}

func (s *UserStorage) emailTaken(email string, self uuid.UUID) bool {
	for _, u := range s.users {
		if u.Email == email && u.ID != self {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
