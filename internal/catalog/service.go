// AngelaMos | 2026
// service.go

package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type Catalog struct {
	repo Repository
}

func NewCatalog(repo Repository) *Catalog {
	return &Catalog{repo: repo}
}

func (c *Catalog) CreateCategories(
	ctx context.Context,
	reqs []CreateCategoryRequest,
) ([]Category, error) {
	categories := make([]Category, 0, len(reqs))
	for _, req := range reqs {
		categories = append(categories, Category{
			ID:          uuid.New().String(),
			Name:        strings.TrimSpace(req.Name),
			Description: strings.TrimSpace(req.Description),
		})
	}

	if err := c.repo.CreateCategories(ctx, categories); err != nil {
		return nil, err
	}

	return categories, nil
}

func (c *Catalog) ListCategories(ctx context.Context) ([]Category, error) {
	return c.repo.ListCategories(ctx)
}

func (c *Catalog) GetCategory(ctx context.Context, id string) (*Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrCategoryNotFound
	}
	return c.repo.GetCategory(ctx, id)
}

// CreateService adds a service under an existing category.
func (c *Catalog) CreateService(ctx context.Context, req CreateServiceRequest) (*Service, error) {
	if _, err := c.GetCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	svc := &Service{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		CategoryID:  req.CategoryID,
	}
	if err := c.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	return svc, nil
}

func (c *Catalog) CategoryWithServices(
	ctx context.Context,
	id string,
) (*CategoryWithServices, error) {
	category, err := c.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	services, err := c.repo.ListServices(ctx, id)
	if err != nil {
		return nil, err
	}

	return &CategoryWithServices{Category: *category, Services: services}, nil
}

func (c *Catalog) CategoriesWithServices(ctx context.Context) ([]CategoryWithServices, error) {
	categories, err := c.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	services, err := c.repo.ListAllServices(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]Service, len(categories))
	for _, svc := range services {
		byCategory[svc.CategoryID] = append(byCategory[svc.CategoryID], svc)
	}

	out := make([]CategoryWithServices, 0, len(categories))
	for _, category := range categories {
		list := byCategory[category.ID]
		if list == nil {
			list = []Service{}
		}
		out = append(out, CategoryWithServices{Category: category, Services: list})
	}

	return out, nil
}
