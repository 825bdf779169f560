package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskboard/internal/auth"
	"taskboard/internal/logger"
	"taskboard/internal/models/report"
	"taskboard/internal/models/task"
	rep "taskboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// здесь проверяются правила жизненного цикла задачи

type TaskService struct {
	tasks      TaskRepository
	categories CategoryRepository
	reports    ReportRepository
	clock      Clock
}

func NewTaskService(tasks TaskRepository, categories CategoryRepository, reports ReportRepository, clock Clock) *TaskService {
	return &TaskService{
		tasks:      tasks,
		categories: categories,
		reports:    reports,
		clock:      clock,
	}
}

func (s *TaskService) Create(ctx context.Context, caller auth.Identity, d task.Draft) (*task.Task, error) {
	status := d.Status
	if status == "" {
		status = task.StatusTodo
	}
	if !status.Valid() {
		return nil, NewValidationError(FieldError{Field: "status", Message: "Status must be todo, doing, or done"})
	}

	if d.CategoryID != nil {
		if err := s.ensureCategory(ctx, *d.CategoryID); err != nil {
			return nil, err
		}
	}

	t := &task.Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		Status:      status,
		DueDate:     d.DueDate,
		CategoryID:  d.CategoryID,
		UserID:      caller.UserID,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		if errors.Is(err, rep.ErrReferenced) {
			return nil, s.brokenReference(ctx, t.CategoryID)
		}
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана",
		zap.String("task_id", t.ID.String()),
		zap.String("user_id", caller.UserID.String()))
	return s.reload(ctx, t.ID)
}

// List ограничивает не-администратора его собственными задачами, что бы ни было в OwnerID.
func (s *TaskService) List(ctx context.Context, caller auth.Identity, f task.Filter) (*task.List, error) {
	if !caller.IsAdmin() {
		owner := caller.UserID
		f.OwnerID = &owner
	}
	f.Page, f.Limit = task.NormalizePage(f.Page, f.Limit)
	f.SortBy, f.SortOrder = task.NormalizeSort(string(f.SortBy), string(f.SortOrder), caller.IsAdmin())

	tasks, total, err := s.tasks.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return &task.List{Tasks: tasks, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

// Get: администратор читает любую задачу, остальные только свои.
// Чужая задача выглядит как несуществующая.
func (s *TaskService) Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*task.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", id.String()))
			return nil, ErrTaskNotFound()
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	if auth.RequireAdminOrOwner(caller, t.UserID) != nil {
		logger.Info("Service: Задача другого пользователя", zap.String("target_id", id.String()))
		return nil, ErrTaskNotFound()
	}
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, p task.Patch) (*task.Task, error) {
	if p.Empty() {
		return nil, ErrNoFieldsToUpdate()
	}
	if p.Status != nil && !p.Status.Valid() {
		return nil, NewValidationError(FieldError{Field: "status", Message: "Status must be todo, doing, or done"})
	}

	t, err := s.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if p.ChangesStatus(t) && t.IsPastDue(s.clock.Today()) {
		logger.Info("Service: Смена статуса просроченной задачи запрещена",
			zap.String("task_id", id.String()),
			zap.Time("due_date", *t.DueDate))
		return nil, ErrPastDueImmutable()
	}

	if p.CategoryID.Set && p.CategoryID.Value != nil {
		if err := s.ensureCategory(ctx, *p.CategoryID.Value); err != nil {
			return nil, err
		}
	}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		p.Title = &title
	}
	p.Apply(t)

	if err := s.tasks.Update(ctx, t); err != nil {
		switch {
		case errors.Is(err, rep.ErrNotFound):
			return nil, ErrTaskNotFound()
		case errors.Is(err, rep.ErrReferenced):
			return nil, s.brokenReference(ctx, t.CategoryID)
		}
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}

	logger.Info("Service: Задача обновлена", zap.String("task_id", id.String()))
	return s.reload(ctx, id)
}

// brokenReference разбирает нарушение ссылки при записи задачи. Категория уже проверена
// до записи, поэтому если она на месте, пропал владелец.
func (s *TaskService) brokenReference(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID != nil {
		if err := s.ensureCategory(ctx, *categoryID); err != nil {
			return err
		}
	}
	logger.Warn("Service: Владелец задачи не найден")
	return ErrUserNotFound()
}

func (s *TaskService) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if _, err := s.owned(ctx, caller, id); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return ErrTaskNotFound()
		}
		return fmt.Errorf("удаление задачи: %w", err)
	}

	logger.Info("Service: Задача удалена", zap.String("task_id", id.String()))
	return nil
}

// Stats - сводка по собственным задачам вызывающего.
func (s *TaskService) Stats(ctx context.Context, caller auth.Identity) (report.Counts, error) {
	owner := caller.UserID
	counts, err := s.reports.TaskCounts(ctx, &owner, s.clock.Today())
	if err != nil {
		return report.Counts{}, fmt.Errorf("статистика задач: %w", err)
	}
	return counts, nil
}

// owned находит задачу, принадлежащую вызывающему. Изменять и удалять
// задачи может только владелец, поэтому роль здесь не учитывается.
func (s *TaskService) owned(ctx context.Context, caller auth.Identity, id uuid.UUID) (*task.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", id.String()))
			return nil, ErrTaskNotFound()
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	if t.UserID != caller.UserID {
		logger.Info("Service: Задача другого пользователя", zap.String("target_id", id.String()))
		return nil, ErrTaskNotFound()
	}
	return t, nil
}

func (s *TaskService) ensureCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return ErrCategoryReference()
		}
		return fmt.Errorf("проверка категории: %w", err)
	}
	return nil
}

func (s *TaskService) reload(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("чтение задачи: %w", err)
	}
	return t, nil
}
