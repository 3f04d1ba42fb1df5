// AngelaMos | 2026
// entity.go

package notification

import (
	"time"
)

type Notification struct {
	ID      string    `db:"id"      json:"id"`
	Email   string    `db:"email"   json:"email"`
	Message string    `db:"message" json:"message"`
	Type    string    `db:"type"    json:"type"`
	Date    time.Time `db:"date"    json:"date"`
}

const (
	TypeSignup             = "signup"
	TypeSignin             = "signin"
	TypeUserDetails        = "get_user_details"
	TypeSubscriptionUpdate = "subscription_update"
	TypeSubscription       = "subscription"
	TypeProject            = "project"
	TypeOrganizationCreate = "organization_create"
	TypePasswordReset      = "password_reset"
	TypeInfo               = "info"
)
