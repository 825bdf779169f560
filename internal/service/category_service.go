package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskboard/internal/auth"
	"taskboard/internal/logger"
	"taskboard/internal/models/category"
	"taskboard/internal/models/report"
	rep "taskboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryService struct {
	categories CategoryRepository
	reports    ReportRepository
	cache      DashboardCache
}

func NewCategoryService(categories CategoryRepository, reports ReportRepository, cache DashboardCache) *CategoryService {
	if cache == nil {
		cache = noCache{}
	}
	return &CategoryService{
		categories: categories,
		reports:    reports,
		cache:      cache,
	}
}

func (s *CategoryService) List(ctx context.Context) ([]*category.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение категорий: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, ErrCategoryNotFound()
		}
		return nil, fmt.Errorf("получение категории: %w", err)
	}
	return c, nil
}

func (s *CategoryService) Create(ctx context.Context, caller auth.Identity, name string, description *string) (*category.Category, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, ErrForbidden()
	}

	name = strings.TrimSpace(name)
	if err := s.ensureNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	creator := caller.UserID
	c := &category.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedBy:   &creator,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		if errors.Is(err, rep.ErrDuplicate) {
			return nil, ErrDuplicateCategoryName()
		}
		return nil, fmt.Errorf("создание категории: %w", err)
	}

	s.cache.Invalidate(ctx)
	logger.Info("Service: Категория создана", zap.String("category_id", c.ID.String()))
	return s.Get(ctx, c.ID)
}

func (s *CategoryService) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, p category.Patch) (*category.Category, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, ErrForbidden()
	}
	if p.Empty() {
		return nil, ErrNoFieldsToUpdate()
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name != c.Name {
			if err := s.ensureNameFree(ctx, name, id); err != nil {
				return nil, err
			}
		}
		p.Name = &name
	}
	p.Apply(c)

	if err := s.categories.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, rep.ErrDuplicate):
			return nil, ErrDuplicateCategoryName()
		case errors.Is(err, rep.ErrNotFound):
			return nil, ErrCategoryNotFound()
		}
		return nil, fmt.Errorf("обновление категории: %w", err)
	}

	s.cache.Invalidate(ctx)
	logger.Info("Service: Категория обновлена", zap.String("category_id", id.String()))
	return s.Get(ctx, id)
}

// Delete отказывает, пока на категорию ссылается хотя бы одна задача.
func (s *CategoryService) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if err := auth.RequireAdmin(caller); err != nil {
		return ErrForbidden()
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	inUse, err := s.categories.CountTasks(ctx, id)
	if err != nil {
		return fmt.Errorf("подсчёт задач категории: %w", err)
	}
	if inUse > 0 {
		logger.Info("Service: Категория используется", zap.String("category_id", id.String()), zap.Int("tasks", inUse))
		return ErrCategoryInUse(inUse)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, rep.ErrInUse):
			return ErrCategoryInUse(0)
		case errors.Is(err, rep.ErrNotFound):
			return ErrCategoryNotFound()
		}
		return fmt.Errorf("удаление категории: %w", err)
	}

	s.cache.Invalidate(ctx)
	logger.Info("Service: Категория удалена", zap.String("category_id", id.String()))
	return nil
}

func (s *CategoryService) Stats(ctx context.Context, caller auth.Identity) ([]report.CategoryCount, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, ErrForbidden()
	}
	stats, err := s.reports.CategoryBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("статистика категорий: %w", err)
	}
	return stats, nil
}

func (s *CategoryService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.categories.GetByName(ctx, name)
	switch {
	case err == nil && existing.ID != self:
		return ErrDuplicateCategoryName()
	case err != nil && !errors.Is(err, rep.ErrNotFound):
		return fmt.Errorf("поиск категории: %w", err)
	}
	return nil
}
