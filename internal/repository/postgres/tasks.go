package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/models/task"
	repo "taskboard/internal/repository"

	"github.com/google/uuid"
)

type TaskStorage struct {
	*Storage
}

const taskSelect = `
	SELECT t.id, t.title, t.description, t.status, t.due_date, t.category_id, c.name,
	       t.user_id, u.name, u.email, t.created_at, t.updated_at
	FROM tasks t
	JOIN users u ON u.id = t.user_id
	LEFT JOIN categories c ON c.id = t.category_id`

// sortColumns - единственный источник имён столбцов для ORDER BY.
var sortColumns = map[task.SortField]string{
	task.SortByCreatedAt: "t.created_at",
	task.SortByUpdatedAt: "t.updated_at",
	task.SortByDueDate:   "t.due_date",
	task.SortByTitle:     "t.title",
	task.SortByStatus:    "t.status",
	task.SortByUserName:  "u.name",
}

func scanTask(row scanner) (*task.Task, error) {
	var t task.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.DueDate, &t.CategoryID, &t.CategoryName,
		&t.UserID, &t.UserName, &t.UserEmail, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TaskStorage) Create(ctx context.Context, t *task.Task) error {
	start := time.Now()
	defer logSlow("tasks.create", start)

	query := `
		INSERT INTO tasks (id, title, description, status, due_date, category_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := s.pool.QueryRow(ctx, query, t.ID, t.Title, t.Description, t.Status, t.DueDate, t.CategoryID, t.UserID).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return mapError("tasks.create", err)
	}
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	start := time.Now()
	defer logSlow("tasks.get_by_id", start)

	t, err := scanTask(s.pool.QueryRow(ctx, taskSelect+` WHERE t.id = $1`, id))
	if err != nil {
		return nil, mapError("tasks.get_by_id", err)
	}
	return t, nil
}

func (s *TaskStorage) Update(ctx context.Context, t *task.Task) error {
	start := time.Now()
	defer logSlow("tasks.update", start)

	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, due_date = $5, category_id = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := s.pool.QueryRow(ctx, query, t.ID, t.Title, t.Description, t.Status, t.DueDate, t.CategoryID).
		Scan(&t.UpdatedAt)
	if err != nil {
		return mapError("tasks.update", err)
	}
	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	defer logSlow("tasks.delete", start)

	res, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return mapError("tasks.delete", err)
	}
	if res.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *TaskStorage) List(ctx context.Context, f task.Filter) ([]*task.Task, int, error) {
	start := time.Now()
	defer logSlow("tasks.list", start)

	where, args := filterClause(f)

	var total int
	countQuery := `SELECT COUNT(*) FROM tasks t` + where
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, mapError("tasks.count", err)
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = sortColumns[task.SortByCreatedAt]
	}
	order := "DESC"
	if f.SortOrder == task.SortAsc {
		order = "ASC"
	}

	args = append(args, f.Limit, f.Offset())
	query := fmt.Sprintf("%s%s ORDER BY %s %s, t.id %s LIMIT $%d OFFSET $%d",
		taskSelect, where, column, order, order, len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError("tasks.list", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, mapError("tasks.list", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("tasks.list", err)
	}
	return tasks, total, nil
}

// filterClause собирает WHERE по заданным полям фильтра с позиционными параметрами.
func filterClause(f task.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.OwnerID != nil {
		add("t.user_id = $%d", *f.OwnerID)
	}
	if f.Status != nil {
		add("t.status = $%d", *f.Status)
	}
	if f.CategoryID != nil {
		add("t.category_id = $%d", *f.CategoryID)
	}
	if f.DueDateFrom != nil {
		add("t.due_date >= $%d", *f.DueDateFrom)
	}
	if f.DueDateTo != nil {
		add("t.due_date <= $%d", *f.DueDateTo)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
