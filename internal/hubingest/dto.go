// AngelaMos | 2026
// dto.go

package hubingest

type CreateHubIngestRequest struct {
	Name        string `json:"name"        validate:"required,max=200"`
	ProjectName string `json:"projectName" validate:"required"`
}

type UpdateHubIngestRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=200"`
	ProjectName *string `json:"projectName" validate:"omitempty,min=1"`
}
