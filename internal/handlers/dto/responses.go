package dto

import (
	"time"

	"taskboard/internal/models/report"
	"taskboard/internal/models/task"
	"taskboard/internal/models/user"

	"github.com/google/uuid"
)

type TaskResponse struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Description  *string     `json:"description"`
	Status       task.Status `json:"status"`
	DueDate      *string     `json:"due_date"`
	CategoryID   *uuid.UUID  `json:"category_id"`
	CategoryName *string     `json:"category_name"`
	UserID       uuid.UUID   `json:"user_id"`
	UserName     string      `json:"user_name,omitempty"`
	UserEmail    string      `json:"user_email,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       t.Status,
		DueDate:      formatDate(t.DueDate),
		CategoryID:   t.CategoryID,
		CategoryName: t.CategoryName,
		UserID:       t.UserID,
		UserName:     t.UserName,
		UserEmail:    t.UserEmail,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
	Limit       int  `json:"limit"`
}

func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  pages,
		HasNextPage: page < pages,
		HasPrevPage: page > 1,
		Limit:       limit,
	}
}

type TaskPagination struct {
	Pagination
	TotalTasks int `json:"totalTasks"`
}

type TaskListResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	Pagination TaskPagination `json:"pagination"`
}

func FromTaskPage(l *task.List) TaskListResponse {
	return TaskListResponse{
		Tasks: FromTaskList(l.Tasks),
		Pagination: TaskPagination{
			Pagination: NewPagination(l.Page, l.Limit, l.Total),
			TotalTasks: l.Total,
		},
	}
}

type UserPagination struct {
	Pagination
	TotalUsers int `json:"totalUsers"`
}

type UserListResponse struct {
	Users      []*report.UserSummary `json:"users"`
	Pagination UserPagination        `json:"pagination"`
}

func FromUserList(l *report.UserList) UserListResponse {
	users := l.Users
	if users == nil {
		users = []*report.UserSummary{}
	}
	return UserListResponse{
		Users: users,
		Pagination: UserPagination{
			Pagination: NewPagination(l.Page, l.Limit, l.Total),
			TotalUsers: l.Total,
		},
	}
}

type UserDetailsResponse struct {
	User  *user.User     `json:"user"`
	Tasks []TaskResponse `json:"tasks"`
	Stats report.Counts  `json:"stats"`
}

func FromUserDetails(d *report.UserDetails) UserDetailsResponse {
	return UserDetailsResponse{
		User:  d.User,
		Tasks: FromTaskList(d.Tasks),
		Stats: d.Stats,
	}
}

type DashboardResponse struct {
	Overall           report.Overall         `json:"overall"`
	StatusBreakdown   []report.StatusCount   `json:"status_breakdown"`
	CategoryBreakdown []report.CategoryCount `json:"category_breakdown"`
	UserActivity      []report.UserActivity  `json:"user_activity"`
	RecentActivity    []TaskResponse         `json:"recent_activity"`
}

func FromDashboard(d *report.Dashboard) DashboardResponse {
	return DashboardResponse{
		Overall:           d.Overall,
		StatusBreakdown:   d.StatusBreakdown,
		CategoryBreakdown: d.CategoryBreakdown,
		UserActivity:      d.UserActivity,
		RecentActivity:    FromTaskList(d.RecentActivity),
	}
}
