// AngelaMos | 2026
// service.go

package project

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/tenanthub/internal/notification"
	"github.com/carterperez-dev/tenanthub/internal/plan"
)

type Notifier interface {
	Record(ctx context.Context, email, message, typ string)
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Create provisions a project for an owner holding an active snapshot.
func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateProjectRequest,
) (*Project, error) {
	owner, err := s.repo.GetOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := owner.Snapshot()
	if !snap.IsActive() {
		return nil, ErrNoActiveSubscription
	}

	p := &Project{
		ID:               uuid.New().String(),
		ProjectName:      strings.TrimSpace(req.ProjectName),
		OrganizationName: plan.ProjectOrganizationLabel(snap.Type, strings.TrimSpace(req.OrganizationName)),
		SubscriptionType: snap.Label(),
		CreatedBy:        owner.ID,
	}

	err = s.repo.WithTx(ctx, func(tx Repository) error {
		if err := tx.Insert(ctx, p); err != nil {
			return err
		}
		return tx.InsertRef(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Record(ctx, owner.Email,
		fmt.Sprintf("Project %q has been created", p.ProjectName),
		notification.TypeProject,
	)

	return p, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Project, error) {
	return s.repo.ListByOwner(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Project, error) {
	if !validID(id) {
		return nil, ErrProjectNotFound
	}
	return s.repo.GetOwned(ctx, id, userID)
}

// Update renames the project and its reference. The stamped labels stay.
func (s *Service) Update(
	ctx context.Context,
	userID, id string,
	req UpdateProjectRequest,
) (*Project, error) {
	if !validID(id) {
		return nil, ErrProjectNotFound
	}

	name := strings.TrimSpace(req.ProjectName)

	var updated *Project
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		p, err := tx.Rename(ctx, id, userID, name)
		if err != nil {
			return err
		}
		updated = p
		return tx.RenameRef(ctx, id, name)
	})
	if err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, userID, fmt.Sprintf("Project %q has been updated", name))

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return ErrProjectNotFound
	}

	err := s.repo.WithTx(ctx, func(tx Repository) error {
		if err := tx.DeleteRef(ctx, id); err != nil {
			return err
		}
		return tx.Delete(ctx, id, userID)
	})
	if err != nil {
		return err
	}

	s.notifyOwner(ctx, userID, fmt.Sprintf("Project with ID %q has been deleted", id))

	return nil
}

// ResolveByName finds one of userID's projects by its name.
func (s *Service) ResolveByName(
	ctx context.Context,
	userID, name string,
) (*Project, error) {
	return s.repo.GetOwnedByName(ctx, userID, strings.TrimSpace(name))
}

// Owner returns the account and its current entitlement.
func (s *Service) Owner(ctx context.Context, userID string) (*Owner, error) {
	return s.repo.GetOwner(ctx, userID)
}

func (s *Service) notifyOwner(ctx context.Context, userID, message string) {
	owner, err := s.repo.GetOwner(ctx, userID)
	if err != nil {
		return
	}
	s.notifier.Record(ctx, owner.Email, message, notification.TypeProject)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
