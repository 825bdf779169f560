package postgres

import (
	"context"
	"errors"
	"time"

	"taskboard/internal/models/category"
	repo "taskboard/internal/repository"

	"github.com/google/uuid"
)

type CategoryStorage struct {
	*Storage
}

const categorySelect = `
	SELECT c.id, c.name, c.description, c.created_by, u.name, c.created_at, c.updated_at
	FROM categories c
	LEFT JOIN users u ON u.id = c.created_by`

func scanCategory(row scanner) (*category.Category, error) {
	var c category.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedBy, &c.CreatedByName, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CategoryStorage) Create(ctx context.Context, c *category.Category) error {
	start := time.Now()
	defer logSlow("categories.create", start)

	query := `
		INSERT INTO categories (id, name, description, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := s.pool.QueryRow(ctx, query, c.ID, c.Name, c.Description, c.CreatedBy).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return mapError("categories.create", err)
	}
	return nil
}

func (s *CategoryStorage) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	start := time.Now()
	defer logSlow("categories.get_by_id", start)

	c, err := scanCategory(s.pool.QueryRow(ctx, categorySelect+` WHERE c.id = $1`, id))
	if err != nil {
		return nil, mapError("categories.get_by_id", err)
	}
	return c, nil
}

func (s *CategoryStorage) GetByName(ctx context.Context, name string) (*category.Category, error) {
	start := time.Now()
	defer logSlow("categories.get_by_name", start)

	c, err := scanCategory(s.pool.QueryRow(ctx, categorySelect+` WHERE c.name = $1`, name))
	if err != nil {
		return nil, mapError("categories.get_by_name", err)
	}
	return c, nil
}

func (s *CategoryStorage) List(ctx context.Context) ([]*category.Category, error) {
	start := time.Now()
	defer logSlow("categories.list", start)

	rows, err := s.pool.Query(ctx, categorySelect+` ORDER BY c.name`)
	if err != nil {
		return nil, mapError("categories.list", err)
	}
	defer rows.Close()

	categories := []*category.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, mapError("categories.list", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("categories.list", err)
	}
	return categories, nil
}

func (s *CategoryStorage) Update(ctx context.Context, c *category.Category) error {
	start := time.Now()
	defer logSlow("categories.update", start)

	query := `
		UPDATE categories
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	if err := s.pool.QueryRow(ctx, query, c.ID, c.Name, c.Description).Scan(&c.UpdatedAt); err != nil {
		return mapError("categories.update", err)
	}
	return nil
}

// Delete полагается на ON DELETE RESTRICT: ссылка из задачи даёт ErrInUse.
func (s *CategoryStorage) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	defer logSlow("categories.delete", start)

	res, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		err = mapError("categories.delete", err)
		if errors.Is(err, repo.ErrReferenced) {
			return repo.ErrInUse
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *CategoryStorage) CountTasks(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE category_id = $1`, id).Scan(&count); err != nil {
		return 0, mapError("categories.count_tasks", err)
	}
	return count, nil
}
