// AngelaMos | 2026
// dto.go

package datastore

type CreateDataStoreRequest struct {
	ServiceName      string `json:"serviceName"      validate:"omitempty,max=200"`
	ServiceType      string `json:"serviceType"      validate:"omitempty,max=100"`
	ProjectName      string `json:"projectName"      validate:"required"`
	OrganizationName string `json:"organizationName" validate:"omitempty,max=200"`
}

// UpdateDataStoreRequest changes only the fields that are set.
type UpdateDataStoreRequest struct {
	ServiceName *string `json:"serviceName" validate:"omitempty,min=1,max=200"`
	ServiceType *string `json:"serviceType" validate:"omitempty,max=100"`
	ProjectName *string `json:"projectName" validate:"omitempty,min=1"`
}
