package handlers

import (
	"context"

	"taskboard/internal/auth"
	"taskboard/internal/models/category"
	"taskboard/internal/models/report"
	"taskboard/internal/models/task"
	"taskboard/internal/models/user"
	"taskboard/internal/service"

	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*service.Session, error)
	Login(ctx context.Context, email, password string) (*service.Session, error)
	Profile(ctx context.Context, caller auth.Identity) (*user.User, error)
	UpdateProfile(ctx context.Context, caller auth.Identity, p user.Profile) (*user.User, error)
	ChangePassword(ctx context.Context, caller auth.Identity, current, next string) error
}

type TaskService interface {
	Create(ctx context.Context, caller auth.Identity, d task.Draft) (*task.Task, error)
	List(ctx context.Context, caller auth.Identity, f task.Filter) (*task.List, error)
	Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*task.Task, error)
	Update(ctx context.Context, caller auth.Identity, id uuid.UUID, p task.Patch) (*task.Task, error)
	Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error
	Stats(ctx context.Context, caller auth.Identity) (report.Counts, error)
}

type CategoryService interface {
	List(ctx context.Context) ([]*category.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*category.Category, error)
	Create(ctx context.Context, caller auth.Identity, name string, description *string) (*category.Category, error)
	Update(ctx context.Context, caller auth.Identity, id uuid.UUID, p category.Patch) (*category.Category, error)
	Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error
	Stats(ctx context.Context, caller auth.Identity) ([]report.CategoryCount, error)
}

type AdminService interface {
	Dashboard(ctx context.Context, caller auth.Identity) (*report.Dashboard, error)
	Users(ctx context.Context, caller auth.Identity, f user.ListFilter) (*report.UserList, error)
	UserDetails(ctx context.Context, caller auth.Identity, id uuid.UUID) (*report.UserDetails, error)
	UpdateUserRole(ctx context.Context, caller auth.Identity, id uuid.UUID, role user.Role) (*user.User, error)
	DeleteUser(ctx context.Context, caller auth.Identity, id uuid.UUID) error
	Tasks(ctx context.Context, caller auth.Identity, f task.Filter) (*task.List, error)
}

// HealthChecker - хранилище, состояние которого отдаёт /health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

var (
	_ AuthService     = (*service.AuthService)(nil)
	_ TaskService     = (*service.TaskService)(nil)
	_ CategoryService = (*service.CategoryService)(nil)
	_ AdminService    = (*service.AdminService)(nil)
)
