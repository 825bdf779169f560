package service

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/auth"
	"taskboard/internal/logger"
	"taskboard/internal/models/report"
	"taskboard/internal/models/task"
	"taskboard/internal/models/user"
	rep "taskboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const userDetailsTaskLimit = 500

type AdminService struct {
	users    UserRepository
	tasks    TaskRepository
	taskList *TaskService
	reports  ReportRepository
	cache    DashboardCache
	clock    Clock
}

// NewAdminService: taskList обслуживает общий список задач, tasks нужен для карточки пользователя.
func NewAdminService(users UserRepository, tasks TaskRepository, taskList *TaskService, reports ReportRepository, cache DashboardCache, clock Clock) *AdminService {
	if cache == nil {
		cache = noCache{}
	}
	return &AdminService{
		users:    users,
		tasks:    tasks,
		taskList: taskList,
		reports:  reports,
		cache:    cache,
		clock:    clock,
	}
}

// Dashboard собирает сводку параллельными запросами. Готовая сводка кешируется.
func (s *AdminService) Dashboard(ctx context.Context, caller auth.Identity) (*report.Dashboard, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, ErrForbidden()
	}

	if cached, ok := s.cache.GetDashboard(ctx); ok {
		logger.Debug("Service: Сводка взята из кеша")
		return cached, nil
	}

	today := s.clock.Today()
	since := s.clock.Now().Add(-report.RecentActivityWindow)

	var (
		counts     report.Counts
		totalUsers int
		categories []report.CategoryCount
		activity   []report.UserActivity
		recent     []*task.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.reports.TaskCounts(gctx, nil, today)
		return err
	})
	g.Go(func() error {
		var err error
		totalUsers, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.reports.CategoryBreakdown(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		activity, err = s.reports.UserActivity(gctx, today)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.reports.RecentTasks(gctx, since, report.RecentActivityLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("сводка администратора: %w", err)
	}

	dashboard := &report.Dashboard{
		Overall:           report.OverallFrom(counts, totalUsers),
		StatusBreakdown:   report.StatusBreakdown(counts),
		CategoryBreakdown: categories,
		UserActivity:      activity,
		RecentActivity:    recent,
	}
	s.cache.SetDashboard(ctx, dashboard)
	return dashboard, nil
}

func (s *AdminService) Users(ctx context.Context, caller auth.Identity, f user.ListFilter) (*report.UserList, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, ErrForbidden()
	}
	f.Page, f.Limit = task.NormalizePage(f.Page, f.Limit)

	list, err := s.users.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("получение пользователей: %w", err)
	}
	list.Page, list.Limit = f.Page, f.Limit
	return list, nil
}

func (s *AdminService) UserDetails(ctx context.Context, caller auth.Identity, id uuid.UUID) (*report.UserDetails, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, ErrForbidden()
	}

	u, err := s.user(ctx, id)
	if err != nil {
		return nil, err
	}

	tasks, _, err := s.tasks.List(ctx, task.Filter{
		OwnerID:   &id,
		Page:      1,
		Limit:     userDetailsTaskLimit,
		SortBy:    task.SortByCreatedAt,
		SortOrder: task.SortDesc,
	})
	if err != nil {
		return nil, fmt.Errorf("задачи пользователя: %w", err)
	}

	stats, err := s.reports.TaskCounts(ctx, &id, s.clock.Today())
	if err != nil {
		return nil, fmt.Errorf("статистика пользователя: %w", err)
	}

	return &report.UserDetails{User: u, Tasks: tasks, Stats: stats}, nil
}

func (s *AdminService) UpdateUserRole(ctx context.Context, caller auth.Identity, id uuid.UUID, role user.Role) (*user.User, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, ErrForbidden()
	}
	if !role.Valid() {
		return nil, NewBusinessError(CodeInvalidRole, `Invalid role. Must be either "admin" or "user"`)
	}

	u, err := s.user(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Role = role

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, ErrUserNotFound()
		}
		return nil, fmt.Errorf("смена роли: %w", err)
	}

	logger.Info("Service: Роль пользователя изменена",
		zap.String("user_id", id.String()),
		zap.String("role", string(role)),
		zap.String("by", caller.UserID.String()))
	return u, nil
}

// DeleteUser удаляет пользователя вместе с его задачами. Категории, созданные
// им, остаются с висячей ссылкой на автора.
func (s *AdminService) DeleteUser(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if err := auth.RequireAdmin(caller); err != nil {
		return ErrForbidden()
	}
	if caller.UserID == id {
		return NewBusinessError(CodeSelfDelete, "Cannot delete your own account")
	}

	if _, err := s.user(ctx, id); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return ErrUserNotFound()
		}
		return fmt.Errorf("удаление пользователя: %w", err)
	}

	s.cache.Invalidate(ctx)
	logger.Info("Service: Пользователь удалён",
		zap.String("user_id", id.String()),
		zap.String("by", caller.UserID.String()))
	return nil
}

// Tasks - список задач всех пользователей с фильтром по владельцу.
func (s *AdminService) Tasks(ctx context.Context, caller auth.Identity, f task.Filter) (*task.List, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, ErrForbidden()
	}
	return s.taskList.List(ctx, caller, f)
}

func (s *AdminService) user(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, ErrUserNotFound()
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return u, nil
}
