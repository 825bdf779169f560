package postgres

import (
	"context"
	"strings"
	"time"

	"taskboard/internal/models/report"
	"taskboard/internal/models/user"
	repo "taskboard/internal/repository"

	"github.com/google/uuid"
)

type UserStorage struct {
	*Storage
}

const userColumns = `id, name, email, password_hash, role, created_at, updated_at`

func scanUser(row scanner) (*user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStorage) Create(ctx context.Context, u *user.User) error {
	start := time.Now()
	defer logSlow("users.create", start)

	query := `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := s.pool.QueryRow(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.Role).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return mapError("users.create", err)
	}
	return nil
}

func (s *UserStorage) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	start := time.Now()
	defer logSlow("users.get_by_id", start)

	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("users.get_by_id", err)
	}
	return u, nil
}

func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	start := time.Now()
	defer logSlow("users.get_by_email", start)

	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, mapError("users.get_by_email", err)
	}
	return u, nil
}

func (s *UserStorage) Update(ctx context.Context, u *user.User) error {
	start := time.Now()
	defer logSlow("users.update", start)

	query := `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, role = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := s.pool.QueryRow(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.Role).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return mapError("users.update", err)
	}
	return nil
}

// Delete удаляет пользователя; задачи уходят каскадом по внешнему ключу.
func (s *UserStorage) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	defer logSlow("users.delete", start)

	res, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError("users.delete", err)
	}
	if res.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *UserStorage) List(ctx context.Context, f user.ListFilter) (*report.UserList, error) {
	start := time.Now()
	defer logSlow("users.list", start)

	pattern := "%" + escapeLike(strings.TrimSpace(f.Search)) + "%"

	var total int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM users
		WHERE name ILIKE $1 OR email ILIKE $1`, pattern).Scan(&total)
	if err != nil {
		return nil, mapError("users.count", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT u.id, u.name, u.email, u.password_hash, u.role, u.created_at, u.updated_at,
		       COUNT(t.id),
		       COUNT(t.id) FILTER (WHERE t.status = 'done')
		FROM users u
		LEFT JOIN tasks t ON t.user_id = u.id
		WHERE u.name ILIKE $1 OR u.email ILIKE $1
		GROUP BY u.id
		ORDER BY u.created_at DESC, u.id
		LIMIT $2 OFFSET $3`, pattern, f.Limit, f.Offset())
	if err != nil {
		return nil, mapError("users.list", err)
	}
	defer rows.Close()

	users := []*report.UserSummary{}
	for rows.Next() {
		var summary report.UserSummary
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.Email, &summary.PasswordHash, &summary.Role,
			&summary.CreatedAt, &summary.UpdatedAt, &summary.TaskCount, &summary.CompletedTasks); err != nil {
			return nil, mapError("users.list", err)
		}
		users = append(users, &summary)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("users.list", err)
	}

	return &report.UserList{Users: users, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

func (s *UserStorage) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, mapError("users.count", err)
	}
	return count, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
