package inmemory

import (
	"context"
	"sort"
	"time"

	"taskboard/internal/models/report"
	"taskboard/internal/models/task"

	"github.com/google/uuid"
)

type ReportStorage struct {
	*Storage
}

func (s *ReportStorage) TaskCounts(ctx context.Context, ownerID *uuid.UUID, today time.Time) (report.Counts, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var counts report.Counts
	for _, t := range s.tasks {
		if ownerID != nil && t.UserID != *ownerID {
			continue
		}
		counts.Add(t, today)
	}
	return counts, nil
}

// CategoryBreakdown перечисляет все категории, включая пустые, по алфавиту.
func (s *ReportStorage) CategoryBreakdown(ctx context.Context) ([]report.CategoryCount, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	byID := make(map[uuid.UUID]*report.CategoryCount, len(s.categories))
	res := make([]report.CategoryCount, 0, len(s.categories))
	for _, id := range s.categoryIDs {
		res = append(res, report.CategoryCount{CategoryID: id, CategoryName: s.categories[id].Name})
	}
	for i := range res {
		byID[res[i].CategoryID] = &res[i]
	}

	for _, t := range s.tasks {
		if t.CategoryID == nil {
			continue
		}
		c, ok := byID[*t.CategoryID]
		if !ok {
			continue
		}
		c.TaskCount++
		switch t.Status {
		case task.StatusTodo:
			c.Todo++
		case task.StatusDoing:
			c.Doing++
		case task.StatusDone:
			c.Done++
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CategoryName < res[j].CategoryName
	})
	return res, nil
}

// UserActivity: пользователи по убыванию числа задач, затем по имени.
func (s *ReportStorage) UserActivity(ctx context.Context, today time.Time) ([]report.UserActivity, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]report.UserActivity, 0, len(s.users))
	index := make(map[uuid.UUID]int, len(s.users))
	for _, id := range s.userIDs {
		u := s.users[id]
		index[id] = len(res)
		res = append(res, report.UserActivity{UserID: u.ID, Name: u.Name, Email: u.Email})
	}

	for _, t := range s.tasks {
		i, ok := index[t.UserID]
		if !ok {
			continue
		}
		a := &res[i]
		a.TotalTasks++
		if t.Status == task.StatusDone {
			a.CompletedTasks++
		}
		if t.IsOverdue(today) {
			a.OverdueTasks++
		}
		if a.LastTaskCreated == nil || t.CreatedAt.After(*a.LastTaskCreated) {
			created := t.CreatedAt
			a.LastTaskCreated = &created
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		if res[i].TotalTasks != res[j].TotalTasks {
			return res[i].TotalTasks > res[j].TotalTasks
		}
		return res[i].Name < res[j].Name
	})
	return res, nil
}

func (s *ReportStorage) RecentTasks(ctx context.Context, since time.Time, limit int) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	recent := []*task.Task{}
	for _, id := range s.taskIDs {
		t := s.tasks[id]
		if t.CreatedAt.Before(since) {
			continue
		}
		recent = append(recent, s.joinedTask(t))
	}

	sortTasks(recent, task.SortByCreatedAt, task.SortDesc)
	return paginate(recent, 0, limit), nil
}
