package category

import (
	"time"

	"github.com/google/uuid"
)

// Category.CreatedBy - слабая ссылка на пользователя: автор может быть удалён,
// тогда CreatedByName остаётся nil.
type Category struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Description   *string    `json:"description" db:"description"`
	CreatedBy     *uuid.UUID `json:"created_by" db:"created_by"`
	CreatedByName *string    `json:"created_by_name" db:"created_by_name"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

type Patch struct {
	Name           *string
	Description    *string
	DescriptionSet bool
}

func (p Patch) Empty() bool {
	return p.Name == nil && !p.DescriptionSet
}

func (p Patch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.DescriptionSet {
		c.Description = p.Description
	}
}
