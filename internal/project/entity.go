// AngelaMos | 2026
// entity.go

package project

import (
	"errors"
	"time"

	"github.com/carterperez-dev/tenanthub/internal/plan"
)

var (
	ErrNoActiveSubscription = errors.New("no active subscription")
	ErrProjectNotFound      = errors.New("project not found or unauthorized")
	ErrOwnerNotFound        = errors.New("user not found")
)

// Project is owned by CreatedBy. OrganizationName and SubscriptionType are
// stamped at creation and never recomputed.
type Project struct {
	ID               string    `db:"id"                json:"id"`
	ProjectName      string    `db:"project_name"      json:"projectName"`
	OrganizationName string    `db:"organization_name" json:"organizationName"`
	SubscriptionType string    `db:"subscription_type" json:"subscriptionType"`
	CreatedBy        string    `db:"created_by"        json:"createdBy"`
	CreatedAt        time.Time `db:"created_at"        json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at"        json:"updatedAt"`
}

// Owner is the account a resource is provisioned for, with its current
// entitlement.
type Owner struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	plan.SnapshotColumns
}
