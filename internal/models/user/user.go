package user

import (
	"strings"
	"time"

	"taskboard/internal/models/task"

	"github.com/google/uuid"
)

type Role string

const RoleAdmin Role = "admin"
const RoleUser Role = "user"

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeEmail приводит адрес к виду, в котором он хранится и ищется.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type ListFilter struct {
	Search string
	Page   int
	Limit  int
}

func (f ListFilter) Offset() int {
	return task.PageOffset(f.Page, f.Limit)
}

// Profile - изменяемые самим пользователем поля; nil означает "не менять".
type Profile struct {
	Name  *string
	Email *string
}

func (p Profile) Empty() bool {
	return p.Name == nil && p.Email == nil
}
