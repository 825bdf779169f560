package report

import (
	"time"

	"taskboard/internal/models/task"
	"taskboard/internal/models/user"

	"github.com/google/uuid"
)

// Counts - разбивка набора задач по статусам и срокам.
type Counts struct {
	Total    int `json:"total"`
	Todo     int `json:"todo"`
	Doing    int `json:"doing"`
	Done     int `json:"done"`
	Overdue  int `json:"overdue"`
	DueToday int `json:"due_today"`
}

// Add учитывает одну задачу; today - календарная дата (task.DateOf).
func (c *Counts) Add(t *task.Task, today time.Time) {
	c.Total++
	switch t.Status {
	case task.StatusTodo:
		c.Todo++
	case task.StatusDoing:
		c.Doing++
	case task.StatusDone:
		c.Done++
	}
	if t.IsOverdue(today) {
		c.Overdue++
	}
	if t.IsDueToday(today) {
		c.DueToday++
	}
}

type Overall struct {
	TotalTasks    int `json:"total_tasks"`
	TodoTasks     int `json:"todo_tasks"`
	DoingTasks    int `json:"doing_tasks"`
	DoneTasks     int `json:"done_tasks"`
	OverdueTasks  int `json:"overdue_tasks"`
	DueTodayTasks int `json:"due_today_tasks"`
	TotalUsers    int `json:"total_users"`
}

func OverallFrom(c Counts, totalUsers int) Overall {
	return Overall{
		TotalTasks:    c.Total,
		TodoTasks:     c.Todo,
		DoingTasks:    c.Doing,
		DoneTasks:     c.Done,
		OverdueTasks:  c.Overdue,
		DueTodayTasks: c.DueToday,
		TotalUsers:    totalUsers,
	}
}

type StatusCount struct {
	Status     task.Status `json:"status"`
	Count      int         `json:"count"`
	Percentage float64     `json:"percentage"`
}

// StatusBreakdown строит разбивку с процентами, округлёнными до сотых.
func StatusBreakdown(c Counts) []StatusCount {
	counts := map[task.Status]int{
		task.StatusTodo:  c.Todo,
		task.StatusDoing: c.Doing,
		task.StatusDone:  c.Done,
	}
	result := make([]StatusCount, 0, len(task.Statuses))
	for _, s := range task.Statuses {
		item := StatusCount{Status: s, Count: counts[s]}
		if c.Total > 0 {
			item.Percentage = float64(int(float64(counts[s])*10000/float64(c.Total)+0.5)) / 100
		}
		result = append(result, item)
	}
	return result
}

type CategoryCount struct {
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name"`
	TaskCount    int       `json:"task_count"`
	Todo         int       `json:"todo_count"`
	Doing        int       `json:"doing_count"`
	Done         int       `json:"done_count"`
}

type UserActivity struct {
	UserID          uuid.UUID  `json:"user_id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	TotalTasks      int        `json:"total_tasks"`
	CompletedTasks  int        `json:"completed_tasks"`
	OverdueTasks    int        `json:"overdue_tasks"`
	LastTaskCreated *time.Time `json:"last_task_created"`
}

type Dashboard struct {
	Overall           Overall         `json:"overall"`
	StatusBreakdown   []StatusCount   `json:"status_breakdown"`
	CategoryBreakdown []CategoryCount `json:"category_breakdown"`
	UserActivity      []UserActivity  `json:"user_activity"`
	RecentActivity    []*task.Task    `json:"recent_activity"`
}

const (
	RecentActivityWindow = 7 * 24 * time.Hour
	RecentActivityLimit  = 10
)

type UserSummary struct {
	user.User
	TaskCount      int `json:"task_count"`
	CompletedTasks int `json:"completed_tasks"`
}

type UserList struct {
	Users []*UserSummary
	Total int
	Page  int
	Limit int
}

type UserDetails struct {
	User  *user.User   `json:"user"`
	Tasks []*task.Task `json:"tasks"`
	Stats Counts       `json:"stats"`
}
