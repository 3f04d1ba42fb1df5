// AngelaMos | 2026
// entity.go

package hubingest

import (
	"errors"
	"time"
)

var ErrHubIngestNotFound = errors.New("hub ingest not found")

type HubIngest struct {
	ID               string    `db:"id"                json:"id"`
	Name             string    `db:"name"              json:"name"`
	UserID           string    `db:"user_id"           json:"userId"`
	ProjectID        string    `db:"project_id"        json:"projectId"`
	ProjectName      string    `db:"project_name"      json:"projectName"`
	SubscriptionType string    `db:"subscription_type" json:"subscriptionType"`
	CreatedAt        time.Time `db:"created_at"        json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at"        json:"updatedAt"`
}
