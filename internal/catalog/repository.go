// AngelaMos | 2026
// repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/tenanthub/internal/core"
)

type Repository interface {
	CreateCategories(ctx context.Context, categories []Category) error
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	CreateService(ctx context.Context, svc *Service) error
	ListServices(ctx context.Context, categoryID string) ([]Service, error)
	ListAllServices(ctx context.Context) ([]Service, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// CreateCategories inserts all categories or none.
func (r *repository) CreateCategories(ctx context.Context, categories []Category) error {
	query := `
		INSERT INTO categories (id, name, description)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	return core.RunInTx(ctx, r.db, func(tx core.DBTX) error {
		for i := range categories {
			c := &categories[i]
			row := tx.QueryRowxContext(ctx, query, c.ID, c.Name, c.Description)
			if err := row.Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
				return fmt.Errorf("insert category %q: %w", c.Name, err)
			}
		}
		return nil
	})
}

func (r *repository) ListCategories(ctx context.Context) ([]Category, error) {
	categories := []Category{}
	err := r.db.SelectContext(ctx, &categories, `
		SELECT id, name, description, created_at, updated_at
		FROM categories
		ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *repository) GetCategory(ctx context.Context, id string) (*Category, error) {
	var c Category
	err := r.db.GetContext(ctx, &c, `
		SELECT id, name, description, created_at, updated_at
		FROM categories
		WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *repository) CreateService(ctx context.Context, svc *Service) error {
	row := r.db.QueryRowxContext(ctx, `
		INSERT INTO services (id, name, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		svc.ID, svc.Name, svc.Description, svc.CategoryID,
	)
	if err := row.Scan(&svc.CreatedAt); err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

const serviceColumns = `id, name, description, category_id, created_at`

func (r *repository) ListServices(ctx context.Context, categoryID string) ([]Service, error) {
	services := []Service{}
	err := r.db.SelectContext(ctx, &services, `
		SELECT `+serviceColumns+`
		FROM services
		WHERE category_id = $1
		ORDER BY created_at`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (r *repository) ListAllServices(ctx context.Context) ([]Service, error) {
	services := []Service{}
	err := r.db.SelectContext(ctx, &services, `
		SELECT `+serviceColumns+`
		FROM services
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}
