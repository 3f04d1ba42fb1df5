// AngelaMos | 2026
// entity.go

package subscription

import (
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/tenanthub/internal/plan"
)

var (
	ErrInvalidPlan           = errors.New("invalid subscription type")
	ErrAlreadySubscribed     = errors.New("user already has a subscription")
	ErrRequestAlreadyPending = errors.New("organization request already pending")
	ErrRequestNotFound       = errors.New("organization request not found")
	ErrAlreadyProcessed      = errors.New("organization request already processed")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidStatus         = errors.New("invalid request status")
)

// Subscription is one entry of the granted plan ledger. A user holds at
// most one.
type Subscription struct {
	ID               string    `db:"id"                json:"id"`
	UserID           string    `db:"user_id"           json:"userId"`
	SubscriptionType plan.Type `db:"subscription_type" json:"subscriptionType"`
	StartDate        time.Time `db:"start_date"        json:"startDate"`
	EndDate          time.Time `db:"end_date"          json:"endDate"`
	CreatedAt        time.Time `db:"created_at"        json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at"        json:"updatedAt"`
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return RequestStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

type OrganizationRequest struct {
	ID          string        `db:"id"           json:"id"`
	UserID      string        `db:"user_id"      json:"userId"`
	UserEmail   string        `db:"user_email"   json:"userEmail"`
	Status      RequestStatus `db:"status"       json:"status"`
	RequestedAt time.Time     `db:"requested_at" json:"requestedAt"`
	UpdatedAt   time.Time     `db:"updated_at"   json:"updatedAt"`
}

func (r *OrganizationRequest) IsPending() bool {
	return r.Status == StatusPending
}

// Account is the slice of a user row the workflow locks and reads.
type Account struct {
	ID    string `db:"id"`
	Email string `db:"email"`
}

type WorkflowStats struct {
	Subscriptions map[string]int `json:"subscriptions"`
	Requests      map[string]int `json:"requests"`
}
