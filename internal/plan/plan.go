// AngelaMos | 2026
// plan.go

// Package plan holds the subscription plan vocabulary shared by the
// workflow, the user snapshot and the provisioned resources.
package plan

import (
	"errors"
	"fmt"
	"time"
)

type Type string

const (
	FreeTrial    Type = "FreeTrial"
	Organization Type = "Organization"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// GrantTermDays is the length of every ledger grant.
const GrantTermDays = 365

const (
	FreeTrialOrganizationLabel = "Free Trial Organization"
	DefaultProjectOrganization = "Organization Default Name"
	PaidOrganizationLabel      = "Paid Organization"
	DefaultResourceOrg         = "Default Organization"
	NoPlanLabel                = "Free"
)

var ErrUnknownType = errors.New("unknown subscription type")

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case FreeTrial, Organization:
		return Type(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

func (t Type) String() string {
	return string(t)
}

// LedgerEnd returns the end of a grant starting at start.
func LedgerEnd(start time.Time) time.Time {
	return start.AddDate(0, 0, GrantTermDays)
}

// Snapshot is the single-slot entitlement embedded on a user.
type Snapshot struct {
	Type           Type       `json:"type,omitempty"`
	DurationInDays int        `json:"durationInDays,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	Status         Status     `json:"status"`
}

func NewSnapshot(t Type, durationInDays int, now time.Time) Snapshot {
	start := now.UTC()
	end := start.AddDate(0, 0, durationInDays)
	return Snapshot{
		Type:           t,
		DurationInDays: durationInDays,
		StartDate:      &start,
		EndDate:        &end,
		Status:         StatusActive,
	}
}

func (s Snapshot) IsActive() bool {
	return s.Type != "" && s.Status == StatusActive
}

// Label is the subscription type stamped onto provisioned resources.
func (s Snapshot) Label() string {
	if s.Type == "" {
		return NoPlanLabel
	}
	return string(s.Type)
}

// ProjectOrganizationLabel derives a project's organization name. Free
// trial projects always get the fixed label.
func ProjectOrganizationLabel(t Type, supplied string) string {
	switch t {
	case FreeTrial:
		return FreeTrialOrganizationLabel
	case Organization:
		if supplied != "" {
			return supplied
		}
		return DefaultProjectOrganization
	default:
		if supplied != "" {
			return supplied
		}
		return DefaultProjectOrganization
	}
}

// ResourceOrganizationLabel derives the organization name stamped on data
// stores and hub ingests.
func ResourceOrganizationLabel(t Type, supplied string) string {
	switch t {
	case FreeTrial:
		return FreeTrialOrganizationLabel
	case Organization:
		return PaidOrganizationLabel
	default:
		if supplied != "" {
			return supplied
		}
		return DefaultResourceOrg
	}
}

// SnapshotColumns maps the snapshot columns of a users row. Embed it in a
// row struct to read the entitlement alongside other columns.
type SnapshotColumns struct {
	SubscriptionType         *string    `db:"subscription_type"`
	SubscriptionDurationDays *int       `db:"subscription_duration_days"`
	SubscriptionStartDate    *time.Time `db:"subscription_start_date"`
	SubscriptionEndDate      *time.Time `db:"subscription_end_date"`
	SubscriptionStatus       string     `db:"subscription_status"`
}

func (c SnapshotColumns) Snapshot() Snapshot {
	s := Snapshot{
		StartDate: c.SubscriptionStartDate,
		EndDate:   c.SubscriptionEndDate,
		Status:    Status(c.SubscriptionStatus),
	}
	if c.SubscriptionType != nil {
		s.Type = Type(*c.SubscriptionType)
	}
	if c.SubscriptionDurationDays != nil {
		s.DurationInDays = *c.SubscriptionDurationDays
	}
	if s.Status == "" {
		s.Status = StatusInactive
	}
	return s
}
