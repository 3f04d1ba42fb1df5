// AngelaMos | 2026
// organization.go

// Package organization is the standalone organization directory. Entries
// are not linked to users, projects or organization requests.
package organization

import (
	"errors"
	"time"
)

var ErrOrganizationExists = errors.New("organization email already registered")

type Organization struct {
	ID                  string    `db:"id"                   json:"id"`
	OrganizationName    string    `db:"organization_name"    json:"organizationName"`
	OrganizationDetails string    `db:"organization_details" json:"organizationDetails"`
	ContactNo           string    `db:"contact_no"           json:"contactNo"`
	OrganizationEmail   string    `db:"organization_email"   json:"organizationEmail"`
	PaymentMethod       string    `db:"payment_method"       json:"paymentMethod"`
	CreatedAt           time.Time `db:"created_at"           json:"createdAt"`
	UpdatedAt           time.Time `db:"updated_at"           json:"updatedAt"`
}

type CreateOrganizationRequest struct {
	OrganizationName    string `json:"organizationName"    validate:"required,max=200"`
	OrganizationDetails string `json:"organizationDetails" validate:"omitempty,max=2000"`
	ContactNo           string `json:"contactNo"           validate:"required,max=20"`
	OrganizationEmail   string `json:"organizationEmail"   validate:"required,email"`
	PaymentMethod       string `json:"paymentMethod"       validate:"required,oneof=Online Card Cash"`
}
