// AngelaMos | 2026
// dto.go

package project

type CreateProjectRequest struct {
	ProjectName      string `json:"projectName"      validate:"required,max=200"`
	OrganizationName string `json:"organizationName" validate:"omitempty,max=200"`
}

type UpdateProjectRequest struct {
	ProjectName string `json:"projectName" validate:"required,max=200"`
}
