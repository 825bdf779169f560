package dto

import (
	"strings"
	"time"

	"taskboard/internal/models/category"
	"taskboard/internal/models/task"
	"taskboard/internal/models/user"
	"taskboard/internal/service"

	"github.com/google/uuid"
)

const (
	titleMax           = 200
	taskDescriptionMax = 1000

	categoryNameMax        = 100
	categoryDescriptionMax = 500
)

// Request проверяет и нормализует тело запроса на месте.
type Request interface {
	Validate() []service.FieldError
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

func (r *RegisterRequest) Validate() []service.FieldError {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = user.NormalizeEmail(r.Email)
	return check(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() []service.FieldError {
	r.Email = user.NormalizeEmail(r.Email)
	return check(r)
}

type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitnil,min=2,max=50"`
	Email *string `json:"email" validate:"omitnil,email"`
}

func (r *UpdateProfileRequest) Validate() []service.FieldError {
	r.Name = trimPtr(r.Name)
	if r.Email != nil {
		email := user.NormalizeEmail(*r.Email)
		r.Email = &email
	}
	return check(r)
}

func (r *UpdateProfileRequest) Profile() user.Profile {
	return user.Profile{Name: r.Name, Email: r.Email}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,maxbytes=72"`
}

func (r *ChangePasswordRequest) Validate() []service.FieldError {
	return check(r)
}

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
	Status      string  `json:"status" validate:"omitempty,oneof=todo doing done"`
	DueDate     *string `json:"due_date" validate:"omitnil,date"`
	CategoryID  *string `json:"category_id" validate:"omitnil,uuid"`
}

func (r *CreateTaskRequest) Validate() []service.FieldError {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = emptyToNil(r.Description)
	r.DueDate = emptyToNil(r.DueDate)
	r.CategoryID = emptyToNil(r.CategoryID)
	return check(r)
}

// Draft вызывается только после успешной Validate.
func (r *CreateTaskRequest) Draft() task.Draft {
	d := task.Draft{
		Title:       r.Title,
		Description: r.Description,
		Status:      task.Status(r.Status),
	}
	if r.DueDate != nil {
		due, _ := ParseDate(*r.DueDate)
		d.DueDate = &due
	}
	if r.CategoryID != nil {
		id := uuid.MustParse(*r.CategoryID)
		d.CategoryID = &id
	}
	return d
}

// UpdateTaskRequest: отсутствующее поле не меняется, null очищает необязательные поля.
type UpdateTaskRequest struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Status      Optional[string] `json:"status"`
	DueDate     Optional[string] `json:"due_date"`
	CategoryID  Optional[string] `json:"category_id"`

	patch task.Patch
}

func (r *UpdateTaskRequest) Validate() []service.FieldError {
	var errs fieldChecks
	r.patch = task.Patch{}

	if r.Title.Set {
		title := ""
		if r.Title.Value != nil {
			title = strings.TrimSpace(*r.Title.Value)
		}
		errs.length("title", title, 1, titleMax)
		r.patch.Title = &title
	}

	if r.Description.Set {
		desc := emptyToNil(r.Description.Value)
		if desc != nil {
			errs.length("description", *desc, 0, taskDescriptionMax)
		}
		r.patch.Description = task.Field[string]{Set: true, Value: desc}
	}

	if r.Status.Set {
		status := task.Status("")
		if r.Status.Value != nil {
			status = task.Status(strings.TrimSpace(*r.Status.Value))
		}
		if !status.Valid() {
			errs.add("status", "oneof", "todo doing done")
		}
		r.patch.Status = &status
	}

	if r.DueDate.Set {
		r.patch.DueDate = task.Null[time.Time]()
		if raw := emptyToNil(r.DueDate.Value); raw != nil {
			due, err := ParseDate(*raw)
			if err != nil {
				errs.add("due_date", "date", "")
			} else {
				r.patch.DueDate = task.Value(due)
			}
		}
	}

	if r.CategoryID.Set {
		r.patch.CategoryID = task.Null[uuid.UUID]()
		if raw := emptyToNil(r.CategoryID.Value); raw != nil {
			id, err := uuid.Parse(*raw)
			if err != nil {
				errs.add("category_id", "uuid", "")
			} else {
				r.patch.CategoryID = task.Value(id)
			}
		}
	}

	return errs
}

func (r *UpdateTaskRequest) Patch() task.Patch {
	return r.patch
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitnil,max=500"`
}

func (r *CreateCategoryRequest) Validate() []service.FieldError {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = emptyToNil(r.Description)
	return check(r)
}

type UpdateCategoryRequest struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`

	patch category.Patch
}

func (r *UpdateCategoryRequest) Validate() []service.FieldError {
	var errs fieldChecks
	r.patch = category.Patch{}

	if r.Name.Set {
		name := ""
		if r.Name.Value != nil {
			name = strings.TrimSpace(*r.Name.Value)
		}
		errs.length("name", name, 1, categoryNameMax)
		r.patch.Name = &name
	}

	if r.Description.Set {
		desc := emptyToNil(r.Description.Value)
		if desc != nil {
			errs.length("description", *desc, 0, categoryDescriptionMax)
		}
		r.patch.Description = desc
		r.patch.DescriptionSet = true
	}

	return errs
}

func (r *UpdateCategoryRequest) Patch() category.Patch {
	return r.patch
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

func (r *UpdateRoleRequest) Validate() []service.FieldError {
	r.Role = strings.TrimSpace(r.Role)
	return nil
}
