// AngelaMos | 2026
// repository.go

package organization

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/tenanthub/internal/core"
)

type Repository interface {
	Create(ctx context.Context, org *Organization) error
	List(ctx context.Context) ([]Organization, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, org *Organization) error {
	query := `
		INSERT INTO organizations (id, organization_name, organization_details,
		                           contact_no, organization_email, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		org.ID,
		org.OrganizationName,
		org.OrganizationDetails,
		org.ContactNo,
		org.OrganizationEmail,
		org.PaymentMethod,
	)
	if err := row.Scan(&org.CreatedAt, &org.UpdatedAt); err != nil {
		if core.IsUniqueViolation(err, "organizations_email_key") {
			return ErrOrganizationExists
		}
		return fmt.Errorf("insert organization: %w", err)
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]Organization, error) {
	query := `
		SELECT id, organization_name, organization_details, contact_no,
		       organization_email, payment_method, created_at, updated_at
		FROM organizations
		ORDER BY created_at DESC`

	orgs := []Organization{}
	if err := r.db.SelectContext(ctx, &orgs, query); err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}

	return orgs, nil
}
