// AngelaMos | 2026
// entity.go

package catalog

import (
	"errors"
	"time"
)

var ErrCategoryNotFound = errors.New("category not found")

type Category struct {
	ID          string    `db:"id"          json:"id"`
	Name        string    `db:"name"        json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at"  json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at"  json:"updatedAt"`
}

type Service struct {
	ID          string    `db:"id"          json:"id"`
	Name        string    `db:"name"        json:"name"`
	Description string    `db:"description" json:"description"`
	CategoryID  string    `db:"category_id" json:"categoryId"`
	CreatedAt   time.Time `db:"created_at"  json:"createdAt"`
}

type CategoryWithServices struct {
	Category
	Services []Service `json:"services"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type CreateServiceRequest struct {
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	CategoryID  string `json:"categoryId"  validate:"required,uuid"`
}
