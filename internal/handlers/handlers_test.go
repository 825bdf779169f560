package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/handlers"
	"taskboard/internal/models/category"
	"taskboard/internal/models/report"
	"taskboard/internal/models/task"
	"taskboard/internal/models/user"
	"taskboard/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	member = auth.Identity{UserID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Role: user.RoleUser}
	admin  = auth.Identity{UserID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Role: user.RoleAdmin}
)

// newRequest собирает запрос с личностью вызывающего и параметрами пути chi.
func newRequest(method, target, body string, id *auth.Identity, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	ctx := req.Context()
	if id != nil {
		ctx = auth.WithIdentity(ctx, *id)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

func sampleTask(owner uuid.UUID) *task.Task {
	due := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	return &task.Task{
		ID:        uuid.MustParse("33333333-3333-3333-3333-333333333333"),
		Title:     "Write report",
		Status:    task.StatusTodo,
		DueDate:   &due,
		UserID:    owner,
		UserName:  "Member",
		UserEmail: "member@example.com",
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestTaskHandler_PostTask(t *testing.T) {
	categoryID := uuid.New()

	tests := []struct {
		name           string
		body           string
		contentType    string
		setupMock      func(m *MockTaskService)
		expectedStatus int
		check          func(t *testing.T, body map[string]any)
	}{
		{
			name: "создание с датой и категорией",
			body: `{"title":"  Write report ","due_date":"2026-03-20","category_id":"` + categoryID.String() + `"}`,
			setupMock: func(m *MockTaskService) {
				m.On("Create", mock.Anything, member, mock.MatchedBy(func(d task.Draft) bool {
					return d.Title == "Write report" &&
						d.DueDate != nil && d.DueDate.Format(time.DateOnly) == "2026-03-20" &&
						d.CategoryID != nil && *d.CategoryID == categoryID &&
						d.Description == nil
				})).Return(sampleTask(member.UserID), nil)
			},
			expectedStatus: http.StatusCreated,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, true, body["success"])
				assert.Equal(t, "Task created successfully", body["message"])
				created := body["data"].(map[string]any)["task"].(map[string]any)
				assert.Equal(t, "2026-03-20", created["due_date"])
				assert.Equal(t, "todo", created["status"])
			},
		},
		{
			name:           "неверный Content-Type",
			body:           `{"title":"x"}`,
			contentType:    "text/plain",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusUnsupportedMediaType,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Content-Type must be application/json", body["message"])
			},
		},
		{
			name:           "битый JSON",
			body:           `{"title":`,
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Invalid JSON in request body", body["message"])
			},
		},
		{
			name:           "ошибки валидации по полям",
			body:           `{"title":"   ","status":"blocked","due_date":"20-03-2026"}`,
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, service.CodeValidation, body["error"])
				fields := map[string]bool{}
				for _, e := range body["errors"].([]any) {
					fields[e.(map[string]any)["field"].(string)] = true
				}
				assert.True(t, fields["title"])
				assert.True(t, fields["status"])
				assert.True(t, fields["due_date"])
			},
		},
		{
			name: "несуществующая категория",
			body: `{"title":"x","category_id":"` + categoryID.String() + `"}`,
			setupMock: func(m *MockTaskService) {
				m.On("Create", mock.Anything, member, mock.Anything).Return(nil, service.ErrCategoryReference())
			},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, service.CodeCategoryMissing, body["error"])
			},
		},
		{
			name: "внутренняя ошибка скрыта",
			body: `{"title":"x"}`,
			setupMock: func(m *MockTaskService) {
				m.On("Create", mock.Anything, member, mock.Anything).Return(nil, errors.New("pool exhausted"))
			},
			expectedStatus: http.StatusInternalServerError,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, "Internal server error", body["message"])
				assert.NotContains(t, body, "error")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockTaskService)
			tt.setupMock(m)
			h := handlers.NewTaskHandler(m)

			req := newRequest(http.MethodPost, "/api/tasks", tt.body, &member, nil)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rr := httptest.NewRecorder()
			h.PostTask(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			tt.check(t, decode(t, rr))
			m.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_UpdateTaskByID(t *testing.T) {
	taskID := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(m *MockTaskService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "null очищает описание и срок",
			id:   taskID.String(),
			body: `{"description":null,"due_date":null}`,
			setupMock: func(m *MockTaskService) {
				m.On("Update", mock.Anything, member, taskID, mock.MatchedBy(func(p task.Patch) bool {
					return p.Description.Set && p.Description.Value == nil &&
						p.DueDate.Set && p.DueDate.Value == nil &&
						!p.CategoryID.Set && p.Title == nil && p.Status == nil
				})).Return(sampleTask(member.UserID), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "смена статуса просроченной задачи",
			id:   taskID.String(),
			body: `{"status":"done"}`,
			setupMock: func(m *MockTaskService) {
				m.On("Update", mock.Anything, member, taskID, mock.Anything).Return(nil, service.ErrPastDueImmutable())
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.CodePastDueImmutable,
		},
		{
			name: "чужая задача не найдена",
			id:   taskID.String(),
			body: `{"title":"new"}`,
			setupMock: func(m *MockTaskService) {
				m.On("Update", mock.Anything, member, taskID, mock.Anything).Return(nil, service.ErrTaskNotFound())
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   service.CodeTaskNotFound,
		},
		{
			name:           "неизвестный статус",
			id:             taskID.String(),
			body:           `{"status":"blocked"}`,
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.CodeValidation,
		},
		{
			name:           "неверный id",
			id:             "not-a-uuid",
			body:           `{"title":"new"}`,
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockTaskService)
			tt.setupMock(m)
			h := handlers.NewTaskHandler(m)

			req := newRequest(http.MethodPut, "/api/tasks/"+tt.id, tt.body, &member, map[string]string{"id": tt.id})
			rr := httptest.NewRecorder()
			h.UpdateTaskByID(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			body := decode(t, rr)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, body["error"])
			} else {
				assert.Equal(t, "Task updated successfully", body["message"])
			}
			m.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_ListTasks(t *testing.T) {
	t.Run("фильтр и пагинация", func(t *testing.T) {
		m := new(MockTaskService)
		categoryID := uuid.New()

		m.On("List", mock.Anything, member, mock.MatchedBy(func(f task.Filter) bool {
			return f.Status != nil && *f.Status == task.StatusDoing &&
				f.CategoryID != nil && *f.CategoryID == categoryID &&
				f.DueDateFrom != nil && f.DueDateFrom.Format(time.DateOnly) == "2026-01-01" &&
				f.Page == 2 && f.Limit == 5 &&
				f.SortBy == task.SortByTitle && f.SortOrder == "asc"
		})).Return(&task.List{
			Tasks: []*task.Task{sampleTask(member.UserID)},
			Total: 11,
			Page:  2,
			Limit: 5,
		}, nil)

		h := handlers.NewTaskHandler(m)
		target := "/api/tasks?status=doing&category_id=" + categoryID.String() +
			"&due_date_from=2026-01-01&page=2&limit=5&sort_by=title&sort_order=asc"
		rr := httptest.NewRecorder()
		h.ListTasks(rr, newRequest(http.MethodGet, target, "", &member, nil))

		require.Equal(t, http.StatusOK, rr.Code)
		data := decode(t, rr)["data"].(map[string]any)
		assert.Len(t, data["tasks"], 1)

		pagination := data["pagination"].(map[string]any)
		assert.EqualValues(t, 2, pagination["currentPage"])
		assert.EqualValues(t, 3, pagination["totalPages"])
		assert.EqualValues(t, 11, pagination["totalTasks"])
		assert.Equal(t, true, pagination["hasNextPage"])
		assert.Equal(t, true, pagination["hasPrevPage"])
		m.AssertExpectations(t)
	})

	t.Run("неверные параметры запроса", func(t *testing.T) {
		m := new(MockTaskService)
		h := handlers.NewTaskHandler(m)

		rr := httptest.NewRecorder()
		h.ListTasks(rr, newRequest(http.MethodGet, "/api/tasks?status=blocked&page=abc", "", &member, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		body := decode(t, rr)
		assert.Len(t, body["errors"], 2)
		m.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("без личности", func(t *testing.T) {
		m := new(MockTaskService)
		h := handlers.NewTaskHandler(m)

		rr := httptest.NewRecorder()
		h.ListTasks(rr, newRequest(http.MethodGet, "/api/tasks", "", nil, nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Access token required", decode(t, rr)["message"])
	})
}

func TestTaskHandler_DeleteAndStats(t *testing.T) {
	taskID := uuid.New()
	m := new(MockTaskService)
	m.On("Delete", mock.Anything, member, taskID).Return(nil)
	m.On("Stats", mock.Anything, member).Return(report.Counts{Total: 3, Todo: 1, Done: 2}, nil)
	h := handlers.NewTaskHandler(m)

	rr := httptest.NewRecorder()
	h.DeleteTaskByID(rr, newRequest(http.MethodDelete, "/api/tasks/"+taskID.String(), "", &member,
		map[string]string{"id": taskID.String()}))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Task deleted successfully", decode(t, rr)["message"])

	rr = httptest.NewRecorder()
	h.Stats(rr, newRequest(http.MethodGet, "/api/tasks/stats", "", &member, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	stats := decode(t, rr)["data"].(map[string]any)["stats"].(map[string]any)
	assert.EqualValues(t, 3, stats["total"])
	assert.EqualValues(t, 2, stats["done"])

	m.AssertExpectations(t)
}

func TestAuthHandler(t *testing.T) {
	u := &user.User{ID: member.UserID, Name: "Member", Email: "member@example.com", Role: user.RoleUser}

	tests := []struct {
		name           string
		call           func(h *handlers.AuthHandler, w http.ResponseWriter, r *http.Request)
		body           string
		id             *auth.Identity
		setupMock      func(m *MockAuthService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "регистрация нормализует email",
			call: (*handlers.AuthHandler).Register,
			body: `{"name":" Member ","email":" Member@Example.COM ","password":"secret1"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Register", mock.Anything, "Member", "member@example.com", "secret1").
					Return(&service.Session{User: u, Token: "jwt"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "регистрация с коротким паролем",
			call:           (*handlers.AuthHandler).Register,
			body:           `{"name":"Member","email":"member@example.com","password":"123"}`,
			setupMock:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.CodeValidation,
		},
		{
			name: "занятый email",
			call: (*handlers.AuthHandler).Register,
			body: `{"name":"Member","email":"member@example.com","password":"secret1"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Register", mock.Anything, "Member", "member@example.com", "secret1").
					Return(nil, service.ErrDuplicateEmail("User already exists with this email"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.CodeDuplicateEmail,
		},
		{
			name: "вход с неверным паролем",
			call: (*handlers.AuthHandler).Login,
			body: `{"email":"member@example.com","password":"wrong"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "member@example.com", "wrong").Return(nil, service.ErrInvalidCredentials())
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   service.CodeInvalidCredentials,
		},
		{
			name: "профиль",
			call: (*handlers.AuthHandler).Profile,
			id:   &member,
			setupMock: func(m *MockAuthService) {
				m.On("Profile", mock.Anything, member).Return(u, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "смена пароля",
			call: (*handlers.AuthHandler).ChangePassword,
			body: `{"current_password":"secret1","new_password":"secret2"}`,
			id:   &member,
			setupMock: func(m *MockAuthService) {
				m.On("ChangePassword", mock.Anything, member, "secret1", "secret2").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "выход без токена",
			call:           (*handlers.AuthHandler).Logout,
			setupMock:      func(m *MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockAuthService)
			tt.setupMock(m)
			h := handlers.NewAuthHandler(m)

			rr := httptest.NewRecorder()
			tt.call(&h, rr, newRequest(http.MethodPost, "/api/auth", tt.body, tt.id, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			body := decode(t, rr)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, body["error"])
			}
			m.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_RegisterHidesPasswordHash(t *testing.T) {
	m := new(MockAuthService)
	u := &user.User{ID: member.UserID, Name: "Member", Email: "member@example.com", PasswordHash: "$2a$hash", Role: user.RoleUser}
	m.On("Register", mock.Anything, "Member", "member@example.com", "secret1").
		Return(&service.Session{User: u, Token: "jwt"}, nil)
	h := handlers.NewAuthHandler(m)

	rr := httptest.NewRecorder()
	h.Register(rr, newRequest(http.MethodPost, "/api/auth/register",
		`{"name":"Member","email":"member@example.com","password":"secret1"}`, nil, nil))

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "$2a$hash")
	data := decode(t, rr)["data"].(map[string]any)
	assert.Equal(t, "jwt", data["token"])
}

func TestCategoryHandler(t *testing.T) {
	categoryID := uuid.New()
	c := &category.Category{ID: categoryID, Name: "Work"}

	t.Run("удаление используемой категории", func(t *testing.T) {
		m := new(MockCategoryService)
		m.On("Delete", mock.Anything, admin, categoryID).Return(service.ErrCategoryInUse(2))
		h := handlers.NewCategoryHandler(m)

		rr := httptest.NewRecorder()
		h.DeleteCategory(rr, newRequest(http.MethodDelete, "/api/categories/"+categoryID.String(), "", &admin,
			map[string]string{"id": categoryID.String()}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		body := decode(t, rr)
		assert.Equal(t, service.CodeCategoryInUse, body["error"])
		assert.EqualValues(t, 2, body["task_count"])
		m.AssertExpectations(t)
	})

	t.Run("частичное обновление", func(t *testing.T) {
		m := new(MockCategoryService)
		m.On("Update", mock.Anything, admin, categoryID, mock.MatchedBy(func(p category.Patch) bool {
			return p.Name == nil && p.DescriptionSet && p.Description == nil
		})).Return(c, nil)
		h := handlers.NewCategoryHandler(m)

		rr := httptest.NewRecorder()
		h.UpdateCategory(rr, newRequest(http.MethodPut, "/api/categories/"+categoryID.String(), `{"description":""}`, &admin,
			map[string]string{"id": categoryID.String()}))

		assert.Equal(t, http.StatusOK, rr.Code)
		m.AssertExpectations(t)
	})

	t.Run("создание без прав", func(t *testing.T) {
		m := new(MockCategoryService)
		m.On("Create", mock.Anything, member, "Work", (*string)(nil)).Return(nil, auth.ErrForbidden)
		h := handlers.NewCategoryHandler(m)

		rr := httptest.NewRecorder()
		h.PostCategory(rr, newRequest(http.MethodPost, "/api/categories", `{"name":"Work"}`, &member, nil))

		assert.Equal(t, http.StatusForbidden, rr.Code)
		m.AssertExpectations(t)
	})

	t.Run("категория не найдена", func(t *testing.T) {
		m := new(MockCategoryService)
		m.On("Get", mock.Anything, categoryID).Return(nil, service.ErrCategoryNotFound())
		h := handlers.NewCategoryHandler(m)

		rr := httptest.NewRecorder()
		h.GetCategory(rr, newRequest(http.MethodGet, "/api/categories/"+categoryID.String(), "", nil,
			map[string]string{"id": categoryID.String()}))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		m.AssertExpectations(t)
	})
}

func TestAdminHandler(t *testing.T) {
	target := uuid.New()

	t.Run("список пользователей", func(t *testing.T) {
		m := new(MockAdminService)
		m.On("Users", mock.Anything, admin, user.ListFilter{Search: "ann", Page: 1, Limit: 2}).Return(&report.UserList{
			Users: []*report.UserSummary{{User: user.User{ID: target, Name: "Ann"}, TaskCount: 4}},
			Total: 3,
			Page:  1,
			Limit: 2,
		}, nil)
		h := handlers.NewAdminHandler(m)

		rr := httptest.NewRecorder()
		h.ListUsers(rr, newRequest(http.MethodGet, "/api/admin/users?search=ann&page=1&limit=2", "", &admin, nil))

		require.Equal(t, http.StatusOK, rr.Code)
		data := decode(t, rr)["data"].(map[string]any)
		assert.Len(t, data["users"], 1)
		pagination := data["pagination"].(map[string]any)
		assert.EqualValues(t, 3, pagination["totalUsers"])
		assert.EqualValues(t, 2, pagination["totalPages"])
		m.AssertExpectations(t)
	})

	t.Run("неверная роль", func(t *testing.T) {
		m := new(MockAdminService)
		m.On("UpdateUserRole", mock.Anything, admin, target, user.Role("root")).
			Return(nil, service.NewBusinessError(service.CodeInvalidRole, `Invalid role. Must be either "admin" or "user"`))
		h := handlers.NewAdminHandler(m)

		rr := httptest.NewRecorder()
		h.UpdateUserRole(rr, newRequest(http.MethodPut, "/api/admin/users/"+target.String()+"/role", `{"role":"root"}`, &admin,
			map[string]string{"userId": target.String()}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, service.CodeInvalidRole, decode(t, rr)["error"])
		m.AssertExpectations(t)
	})

	t.Run("удаление себя", func(t *testing.T) {
		m := new(MockAdminService)
		m.On("DeleteUser", mock.Anything, admin, admin.UserID).
			Return(service.NewBusinessError(service.CodeSelfDelete, "Cannot delete your own account"))
		h := handlers.NewAdminHandler(m)

		rr := httptest.NewRecorder()
		h.DeleteUser(rr, newRequest(http.MethodDelete, "/api/admin/users/"+admin.UserID.String(), "", &admin,
			map[string]string{"userId": admin.UserID.String()}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, service.CodeSelfDelete, decode(t, rr)["error"])
		m.AssertExpectations(t)
	})

	t.Run("задачи по владельцу через userId", func(t *testing.T) {
		m := new(MockAdminService)
		m.On("Tasks", mock.Anything, admin, mock.MatchedBy(func(f task.Filter) bool {
			return f.OwnerID != nil && *f.OwnerID == target
		})).Return(&task.List{Tasks: []*task.Task{}, Total: 0, Page: 1, Limit: 10}, nil)
		h := handlers.NewAdminHandler(m)

		rr := httptest.NewRecorder()
		h.ListTasks(rr, newRequest(http.MethodGet, "/api/admin/tasks?userId="+target.String(), "", &admin, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		m.AssertExpectations(t)
	})

	t.Run("детали пользователя не найдены", func(t *testing.T) {
		m := new(MockAdminService)
		m.On("UserDetails", mock.Anything, admin, target).Return(nil, service.ErrUserNotFound())
		h := handlers.NewAdminHandler(m)

		rr := httptest.NewRecorder()
		h.UserDetails(rr, newRequest(http.MethodGet, "/api/admin/users/"+target.String(), "", &admin,
			map[string]string{"userId": target.String()}))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		m.AssertExpectations(t)
	})
}

func TestExposeInternalErrors(t *testing.T) {
	handlers.ExposeInternalErrors(true)
	t.Cleanup(func() { handlers.ExposeInternalErrors(false) })

	m := new(MockTaskService)
	m.On("Stats", mock.Anything, member).Return(report.Counts{}, errors.New("connection refused"))
	h := handlers.NewTaskHandler(m)

	rr := httptest.NewRecorder()
	h.Stats(rr, newRequest(http.MethodGet, "/api/tasks/stats", "", &member, nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "connection refused", decode(t, rr)["error"])
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name           string
		storageErr     error
		expectedStatus int
		expectedState  string
	}{
		{name: "хранилище доступно", expectedStatus: http.StatusOK, expectedState: "ok"},
		{name: "хранилище недоступно", storageErr: errors.New("down"), expectedStatus: http.StatusServiceUnavailable, expectedState: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockHealthChecker)
			m.On("HealthCheck", mock.Anything).Return(tt.storageErr)
			h := handlers.NewHealthHandler(m, "test")

			rr := httptest.NewRecorder()
			h.HealthCheck(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			body := decode(t, rr)
			assert.Equal(t, tt.expectedState, body["status"])
			assert.Equal(t, "test", body["version"])
		})
	}
}
