package handlers_test

import (
	"context"

	"taskboard/internal/auth"
	"taskboard/internal/handlers"
	"taskboard/internal/models/category"
	"taskboard/internal/models/report"
	"taskboard/internal/models/task"
	"taskboard/internal/models/user"
	"taskboard/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (*service.Session, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Profile(ctx context.Context, caller auth.Identity) (*user.User, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, caller auth.Identity, p user.Profile) (*user.User, error) {
	args := m.Called(ctx, caller, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, caller auth.Identity, current, next string) error {
	args := m.Called(ctx, caller, current, next)
	return args.Error(0)
}

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, caller auth.Identity, d task.Draft) (*task.Task, error) {
	args := m.Called(ctx, caller, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context, caller auth.Identity, f task.Filter) (*task.List, error) {
	args := m.Called(ctx, caller, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.List), args.Error(1)
}

func (m *MockTaskService) Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, p task.Patch) (*task.Task, error) {
	args := m.Called(ctx, caller, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *MockTaskService) Stats(ctx context.Context, caller auth.Identity) (report.Counts, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).(report.Counts), args.Error(1)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context) ([]*category.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, caller auth.Identity, name string, description *string) (*category.Category, error) {
	args := m.Called(ctx, caller, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, p category.Patch) (*category.Category, error) {
	args := m.Called(ctx, caller, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *MockCategoryService) Stats(ctx context.Context, caller auth.Identity) ([]report.CategoryCount, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.CategoryCount), args.Error(1)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Dashboard(ctx context.Context, caller auth.Identity) (*report.Dashboard, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Dashboard), args.Error(1)
}

func (m *MockAdminService) Users(ctx context.Context, caller auth.Identity, f user.ListFilter) (*report.UserList, error) {
	args := m.Called(ctx, caller, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.UserList), args.Error(1)
}

func (m *MockAdminService) UserDetails(ctx context.Context, caller auth.Identity, id uuid.UUID) (*report.UserDetails, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.UserDetails), args.Error(1)
}

func (m *MockAdminService) UpdateUserRole(ctx context.Context, caller auth.Identity, id uuid.UUID, role user.Role) (*user.User, error) {
	args := m.Called(ctx, caller, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockAdminService) DeleteUser(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *MockAdminService) Tasks(ctx context.Context, caller auth.Identity, f task.Filter) (*task.List, error) {
	args := m.Called(ctx, caller, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.List), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var (
	_ handlers.AuthService     = (*MockAuthService)(nil)
	_ handlers.TaskService     = (*MockTaskService)(nil)
	_ handlers.CategoryService = (*MockCategoryService)(nil)
	_ handlers.AdminService    = (*MockAdminService)(nil)
	_ handlers.HealthChecker   = (*MockHealthChecker)(nil)
)
