package task

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
	SortByDueDate   SortField = "due_date"
	SortByTitle     SortField = "title"
	SortByStatus    SortField = "status"
	SortByUserName  SortField = "user_name"
)

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage - страница, смещение которой ещё помещается в int при любом допустимом limit.
	MaxPage = math.MaxInt/MaxLimit + 1
)

type Filter struct {
	Status      *Status
	CategoryID  *uuid.UUID
	DueDateFrom *time.Time
	DueDateTo   *time.Time
	OwnerID     *uuid.UUID
	Page        int
	Limit       int
	SortBy      SortField
	SortOrder   SortOrder
}

func (f Filter) Offset() int {
	return PageOffset(f.Page, f.Limit)
}

// PageOffset считает смещение от страницы, начинающейся с 1.
func PageOffset(page, limit int) int {
	page = min(max(page, 1), MaxPage)
	limit = min(max(limit, 0), MaxLimit)
	return (page - 1) * limit
}

// NormalizeSort оставляет только разрешённые поля сортировки. Неизвестное поле
// сбрасывает сортировку на created_at DESC. Сортировка по имени владельца
// доступна только администратору.
func NormalizeSort(sortBy, sortOrder string, admin bool) (SortField, SortOrder) {
	field := SortField(sortBy)
	switch field {
	case SortByCreatedAt, SortByUpdatedAt, SortByDueDate, SortByTitle, SortByStatus:
	case SortByUserName:
		if !admin {
			return SortByCreatedAt, SortDesc
		}
	default:
		return SortByCreatedAt, SortDesc
	}

	if sortOrder == "asc" || sortOrder == "ASC" {
		return field, SortAsc
	}
	return field, SortDesc
}

// NormalizePage подставляет значения по умолчанию и ограничивает номер и размер страницы.
// Страница дальше MaxPage заведомо пуста и сводится к MaxPage.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

type List struct {
	Tasks []*Task
	Total int
	Page  int
	Limit int
}
