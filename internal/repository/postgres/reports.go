package postgres

import (
	"context"
	"time"

	"taskboard/internal/models/report"
	"taskboard/internal/models/task"

	"github.com/google/uuid"
)

type ReportStorage struct {
	*Storage
}

func (s *ReportStorage) TaskCounts(ctx context.Context, ownerID *uuid.UUID, today time.Time) (report.Counts, error) {
	start := time.Now()
	defer logSlow("reports.task_counts", start)

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'todo'),
		       COUNT(*) FILTER (WHERE status = 'doing'),
		       COUNT(*) FILTER (WHERE status = 'done'),
		       COUNT(*) FILTER (WHERE due_date < $1::date AND status <> 'done'),
		       COUNT(*) FILTER (WHERE due_date = $1::date AND status <> 'done')
		FROM tasks
		WHERE $2::uuid IS NULL OR user_id = $2`

	var c report.Counts
	err := s.pool.QueryRow(ctx, query, today, ownerID).
		Scan(&c.Total, &c.Todo, &c.Doing, &c.Done, &c.Overdue, &c.DueToday)
	if err != nil {
		return report.Counts{}, mapError("reports.task_counts", err)
	}
	return c, nil
}

func (s *ReportStorage) CategoryBreakdown(ctx context.Context) ([]report.CategoryCount, error) {
	start := time.Now()
	defer logSlow("reports.category_breakdown", start)

	rows, err := s.pool.Query(ctx, `
		SELECT c.id, c.name,
		       COUNT(t.id),
		       COUNT(t.id) FILTER (WHERE t.status = 'todo'),
		       COUNT(t.id) FILTER (WHERE t.status = 'doing'),
		       COUNT(t.id) FILTER (WHERE t.status = 'done')
		FROM categories c
		LEFT JOIN tasks t ON t.category_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name`)
	if err != nil {
		return nil, mapError("reports.category_breakdown", err)
	}
	defer rows.Close()

	res := []report.CategoryCount{}
	for rows.Next() {
		var c report.CategoryCount
		if err := rows.Scan(&c.CategoryID, &c.CategoryName, &c.TaskCount, &c.Todo, &c.Doing, &c.Done); err != nil {
			return nil, mapError("reports.category_breakdown", err)
		}
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("reports.category_breakdown", err)
	}
	return res, nil
}

func (s *ReportStorage) UserActivity(ctx context.Context, today time.Time) ([]report.UserActivity, error) {
	start := time.Now()
	defer logSlow("reports.user_activity", start)

	rows, err := s.pool.Query(ctx, `
		SELECT u.id, u.name, u.email,
		       COUNT(t.id),
		       COUNT(t.id) FILTER (WHERE t.status = 'done'),
		       COUNT(t.id) FILTER (WHERE t.due_date < $1::date AND t.status <> 'done'),
		       MAX(t.created_at)
		FROM users u
		LEFT JOIN tasks t ON t.user_id = u.id
		GROUP BY u.id, u.name, u.email
		ORDER BY COUNT(t.id) DESC, u.name`, today)
	if err != nil {
		return nil, mapError("reports.user_activity", err)
	}
	defer rows.Close()

	res := []report.UserActivity{}
	for rows.Next() {
		var a report.UserActivity
		if err := rows.Scan(&a.UserID, &a.Name, &a.Email, &a.TotalTasks, &a.CompletedTasks, &a.OverdueTasks, &a.LastTaskCreated); err != nil {
			return nil, mapError("reports.user_activity", err)
		}
		res = append(res, a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("reports.user_activity", err)
	}
	return res, nil
}

func (s *ReportStorage) RecentTasks(ctx context.Context, since time.Time, limit int) ([]*task.Task, error) {
	start := time.Now()
	defer logSlow("reports.recent_tasks", start)

	rows, err := s.pool.Query(ctx, taskSelect+`
		WHERE t.created_at >= $1
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $2`, since, limit)
	if err != nil {
		return nil, mapError("reports.recent_tasks", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, mapError("reports.recent_tasks", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("reports.recent_tasks", err)
	}
	return tasks, nil
}
