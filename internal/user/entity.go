// AngelaMos | 2026
// entity.go

package user

import (
	"errors"
	"time"

	"github.com/carterperez-dev/tenanthub/internal/plan"
)

type User struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	FullName     string `db:"full_name"`
	Mobile       string `db:"mobile"`
	Country      string `db:"country"`
	State        string `db:"state"`
	CompanyName  string `db:"company_name"`
	Designation  string `db:"designation"`
	Role         string `db:"role"`

	plan.SnapshotColumns

	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) SetSnapshot(s plan.Snapshot) {
	t := string(s.Type)
	days := s.DurationInDays
	u.SubscriptionType = &t
	u.SubscriptionDurationDays = &days
	u.SubscriptionStartDate = s.StartDate
	u.SubscriptionEndDate = s.EndDate
	u.SubscriptionStatus = string(s.Status)
}

// ProjectRef is the denormalised project entry kept on the user.
type ProjectRef struct {
	ProjectID        string    `db:"project_id"        json:"projectId"`
	ProjectName      string    `db:"project_name"      json:"projectName"`
	OrganizationName string    `db:"organization_name" json:"organizationName"`
	SubscriptionType string    `db:"subscription_type" json:"subscriptionType"`
	CreatedAt        time.Time `db:"created_at"        json:"createdAt"`
}

type HubIngestRef struct {
	HubIngestID      string `db:"hub_ingest_id"     json:"hubIngestId"`
	Name             string `db:"name"              json:"name"`
	ProjectName      string `db:"project_name"      json:"projectName"`
	SubscriptionType string `db:"subscription_type" json:"subscriptionType"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var Designations = []string{
	"Software Developer",
	"Data Analyst",
	"Product Manager",
	"UI/UX Designer",
	"System Analyst",
	"Project Manager",
	"Business Analyst",
	"Others",
}

// MaxDurationInDays caps a self-service snapshot at one hundred years.
const MaxDurationInDays = 36500

var ErrInvalidDuration = errors.New("durationInDays out of range")
