// AngelaMos | 2026
// service.go

package hubingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/tenanthub/internal/core"
	"github.com/carterperez-dev/tenanthub/internal/project"
)

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

// Create stores the ingest and its entry on the owner's list together.
func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateHubIngestRequest,
) (*HubIngest, error) {
	owner, err := s.projects.Owner(ctx, userID)
	if err != nil {
		return nil, err
	}

	proj, err := s.projects.ResolveByName(ctx, owner.ID, req.ProjectName)
	if err != nil {
		return nil, err
	}

	h := &HubIngest{
		ID:               uuid.New().String(),
		Name:             strings.TrimSpace(req.Name),
		UserID:           owner.ID,
		ProjectID:        proj.ID,
		ProjectName:      proj.ProjectName,
		SubscriptionType: owner.Snapshot().Label(),
	}

	err = s.repo.WithTx(ctx, func(tx Repository) error {
		if err := tx.Insert(ctx, h); err != nil {
			return err
		}
		return tx.InsertRef(ctx, h)
	})
	if err != nil {
		return nil, err
	}

	return h, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]HubIngest, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListForUser is allowed for the user themselves or an admin.
func (s *Service) ListForUser(
	ctx context.Context,
	callerID string,
	callerIsAdmin bool,
	userID string,
) ([]HubIngest, error) {
	if !callerIsAdmin && callerID != userID {
		return nil, fmt.Errorf("list hub ingests: %w", core.ErrForbidden)
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Update(
	ctx context.Context,
	userID, id string,
	req UpdateHubIngestRequest,
) (*HubIngest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrHubIngestNotFound
	}

	h, err := s.repo.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		h.Name = strings.TrimSpace(*req.Name)
	}
	if req.ProjectName != nil {
		proj, err := s.projects.ResolveByName(ctx, userID, *req.ProjectName)
		if err != nil {
			return nil, err
		}
		h.ProjectID = proj.ID
		h.ProjectName = proj.ProjectName
	}

	err = s.repo.WithTx(ctx, func(tx Repository) error {
		if err := tx.Update(ctx, h); err != nil {
			return err
		}
		return tx.UpdateRef(ctx, h)
	})
	if err != nil {
		return nil, err
	}

	return h, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrHubIngestNotFound
	}

	return s.repo.WithTx(ctx, func(tx Repository) error {
		if err := tx.DeleteRef(ctx, id); err != nil {
			return err
		}
		return tx.Delete(ctx, id, userID)
	})
}
