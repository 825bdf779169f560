package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/handlers/dto"
	"taskboard/internal/logger"
	"taskboard/internal/models/task"
	"taskboard/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// caller достаёт личность, положенную middleware.Authenticate. Без неё ответ 401 уже записан.
func caller(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		responseWithError(w, http.StatusUnauthorized, "Access token required")
		return auth.Identity{}, false
	}
	return id, true
}

// pathID разбирает параметр пути. Неверный id даёт ошибку валидации.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		logger.Warn("HTTP: Неверный id",
			zap.String("param", name),
			zap.String("value", raw),
			zap.String("client_ip", r.RemoteAddr))

		handleError(w, r, service.NewValidationError(service.FieldError{
			Field:   name,
			Message: name + " must be a valid identifier",
		}), "parse_id")
		return uuid.Nil, false
	}
	return id, true
}

type queryParser struct {
	values map[string][]string
	errs   []service.FieldError
}

func newQueryParser(r *http.Request) *queryParser {
	return &queryParser{values: r.URL.Query()}
}

func (q *queryParser) get(key string) string {
	if v := q.values[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

func (q *queryParser) fail(field, message string) {
	q.errs = append(q.errs, service.FieldError{Field: field, Message: message})
}

func (q *queryParser) integer(key string) int {
	raw := q.get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		q.fail(key, key+" must be an integer")
		return 0
	}
	return n
}

func (q *queryParser) id(key string) *uuid.UUID {
	raw := q.get(key)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		q.fail(key, key+" must be a valid identifier")
		return nil
	}
	return &id
}

func (q *queryParser) date(key string) *time.Time {
	raw := q.get(key)
	if raw == "" {
		return nil
	}
	d, err := dto.ParseDate(raw)
	if err != nil {
		q.fail(key, key+" must be a valid date")
		return nil
	}
	return &d
}

func (q *queryParser) status(key string) *task.Status {
	raw := q.get(key)
	if raw == "" {
		return nil
	}
	s := task.Status(raw)
	if !s.Valid() {
		q.fail(key, key+" must be one of: todo, doing, done")
		return nil
	}
	return &s
}

// owner: user_id, для совместимости со старым клиентом также userId.
func (q *queryParser) owner() *uuid.UUID {
	if q.get("user_id") == "" && q.get("userId") != "" {
		return q.id("userId")
	}
	return q.id("user_id")
}

// taskFilter собирает фильтр списка задач из строки запроса.
// Сортировку и границы страницы нормализует сервис.
func taskFilter(r *http.Request) (task.Filter, []service.FieldError) {
	q := newQueryParser(r)
	f := task.Filter{
		Status:      q.status("status"),
		CategoryID:  q.id("category_id"),
		DueDateFrom: q.date("due_date_from"),
		DueDateTo:   q.date("due_date_to"),
		OwnerID:     q.owner(),
		Page:        q.integer("page"),
		Limit:       q.integer("limit"),
		SortBy:      task.SortField(q.get("sort_by")),
		SortOrder:   task.SortOrder(q.get("sort_order")),
	}
	return f, q.errs
}
