// AngelaMos | 2026
// service.go

package datastore

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/tenanthub/internal/plan"
	"github.com/carterperez-dev/tenanthub/internal/project"
)

// Projects resolves the caller's projects and entitlement.
type Projects interface {
	Owner(ctx context.Context, userID string) (*project.Owner, error)
	ResolveByName(ctx context.Context, userID, name string) (*project.Project, error)
}

type Service struct {
	repo     Repository
	projects Projects
}

func NewService(repo Repository, projects Projects) *Service {
	return &Service{repo: repo, projects: projects}
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateDataStoreRequest,
) (*DataStore, error) {
	owner, err := s.projects.Owner(ctx, userID)
	if err != nil {
		return nil, err
	}

	proj, err := s.projects.ResolveByName(ctx, owner.ID, req.ProjectName)
	if err != nil {
		return nil, err
	}

	snap := owner.Snapshot()
	org := plan.ResourceOrganizationLabel(snap.Type, strings.TrimSpace(req.OrganizationName))

	ds := &DataStore{
		ID:               uuid.New().String(),
		ServiceName:      strings.TrimSpace(req.ServiceName),
		ServiceType:      strings.TrimSpace(req.ServiceType),
		ProjectID:        proj.ID,
		ProjectName:      proj.ProjectName,
		SubscriptionType: snap.Label(),
		OrganizationName: org,
		CreatedBy:        owner.ID,
	}
	if ds.ServiceName == "" {
		ds.ServiceName = DefaultServiceName
	}
	if ds.ServiceType == "" {
		ds.ServiceType = DefaultServiceName
	}

	if err := s.repo.Create(ctx, ds); err != nil {
		return nil, err
	}

	return ds, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]DataStore, error) {
	return s.repo.ListByCreator(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*DataStore, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrDataStoreNotFound
	}
	return s.repo.GetOwned(ctx, id, userID)
}

func (s *Service) Update(
	ctx context.Context,
	userID, id string,
	req UpdateDataStoreRequest,
) (*DataStore, error) {
	ds, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.ServiceName != nil {
		ds.ServiceName = strings.TrimSpace(*req.ServiceName)
	}
	if req.ServiceType != nil {
		ds.ServiceType = strings.TrimSpace(*req.ServiceType)
	}
	if req.ProjectName != nil {
		proj, err := s.projects.ResolveByName(ctx, userID, *req.ProjectName)
		if err != nil {
			return nil, err
		}
		ds.ProjectID = proj.ID
		ds.ProjectName = proj.ProjectName
	}

	if err := s.repo.Update(ctx, ds); err != nil {
		return nil, err
	}

	return ds, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrDataStoreNotFound
	}
	return s.repo.Delete(ctx, id, userID)
}
