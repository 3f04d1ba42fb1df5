// AngelaMos | 2026
// entity.go

package datastore

import (
	"errors"
	"time"
)

const DefaultServiceName = "Data Store"

var ErrDataStoreNotFound = errors.New("data store not found")

// DataStore is a provisioned resource bound to one of its creator's
// projects. SubscriptionType and OrganizationName are frozen at creation.
type DataStore struct {
	ID               string    `db:"id"                json:"id"`
	ServiceName      string    `db:"service_name"      json:"serviceName"`
	ServiceType      string    `db:"service_type"      json:"serviceType"`
	ProjectID        string    `db:"project_id"        json:"projectId"`
	ProjectName      string    `db:"project_name"      json:"projectName"`
	SubscriptionType string    `db:"subscription_type" json:"subscription"`
	OrganizationName string    `db:"organization_name" json:"organizationName"`
	CreatedBy        string    `db:"created_by"        json:"createdBy"`
	CreatedAt        time.Time `db:"created_at"        json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at"        json:"updatedAt"`
}
