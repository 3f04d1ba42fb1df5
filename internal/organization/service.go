// AngelaMos | 2026
// service.go

package organization

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/tenanthub/internal/notification"
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

func (s *Service) Create(
	ctx context.Context,
	req CreateOrganizationRequest,
) (*Organization, error) {
	org := &Organization{
		ID:                  uuid.New().String(),
		OrganizationName:    strings.TrimSpace(req.OrganizationName),
		OrganizationDetails: strings.TrimSpace(req.OrganizationDetails),
		ContactNo:           strings.TrimSpace(req.ContactNo),
		OrganizationEmail:   strings.ToLower(strings.TrimSpace(req.OrganizationEmail)),
		PaymentMethod:       req.PaymentMethod,
	}

	if err := s.repo.Create(ctx, org); err != nil {
		return nil, err
	}

	s.notifier.Record(ctx, org.OrganizationEmail,
		fmt.Sprintf("Organization %q has been successfully created.", org.OrganizationName),
		notification.TypeOrganizationCreate,
	)

	return org, nil
}

func (s *Service) List(ctx context.Context) ([]Organization, error) {
	return s.repo.List(ctx)
}
