package service

import (
	"context"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/models/category"
	"taskboard/internal/models/report"
	"taskboard/internal/models/task"
	"taskboard/internal/models/user"

	"github.com/google/uuid"
)

// Хранилища возвращают ошибки из пакета repository (ErrNotFound, ErrDuplicate,
// ErrReferenced, ErrInUse); сервисы переводят их в BusinessError.

type UserRepository interface {
	Create(context.Context, *user.User) error
	GetByID(context.Context, uuid.UUID) (*user.User, error)
	GetByEmail(context.Context, string) (*user.User, error)
	Update(context.Context, *user.User) error
	Delete(context.Context, uuid.UUID) error
	List(context.Context, user.ListFilter) (*report.UserList, error)
	Count(context.Context) (int, error)
}

type CategoryRepository interface {
	Create(context.Context, *category.Category) error
	GetByID(context.Context, uuid.UUID) (*category.Category, error)
	GetByName(context.Context, string) (*category.Category, error)
	List(context.Context) ([]*category.Category, error)
	Update(context.Context, *category.Category) error
	Delete(context.Context, uuid.UUID) error
	CountTasks(context.Context, uuid.UUID) (int, error)
}

type TaskRepository interface {
	Create(context.Context, *task.Task) error
	GetByID(context.Context, uuid.UUID) (*task.Task, error)
	Update(context.Context, *task.Task) error
	Delete(context.Context, uuid.UUID) error
	List(context.Context, task.Filter) ([]*task.Task, int, error)
}

// ReportRepository - агрегирующие запросы для статистики.
// today - календарная дата (task.DateOf), от которой считаются просрочки.
type ReportRepository interface {
	TaskCounts(ctx context.Context, ownerID *uuid.UUID, today time.Time) (report.Counts, error)
	CategoryBreakdown(ctx context.Context) ([]report.CategoryCount, error)
	UserActivity(ctx context.Context, today time.Time) ([]report.UserActivity, error)
	RecentTasks(ctx context.Context, since time.Time, limit int) ([]*task.Task, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(auth.Identity) (string, error)
}

// DashboardCache хранит готовую сводку администратора. Промах - (nil, false).
type DashboardCache interface {
	GetDashboard(context.Context) (*report.Dashboard, bool)
	SetDashboard(context.Context, *report.Dashboard)
	Invalidate(context.Context)
}

type noCache struct{}

func (noCache) GetDashboard(context.Context) (*report.Dashboard, bool) { return nil, false }
func (noCache) SetDashboard(context.Context, *report.Dashboard)       {}
func (noCache) Invalidate(context.Context)                            {}

// Clock - источник "сегодня" в настроенной зоне.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Now: time.Now, Location: loc}
}

func (c Clock) Today() time.Time {
	return task.DateOf(c.Now(), c.Location)
}
