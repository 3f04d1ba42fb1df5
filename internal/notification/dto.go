// AngelaMos | 2026
// dto.go

package notification

type CreateNotificationRequest struct {
	Email   string `json:"email"   validate:"required,email,max=255"`
	Message string `json:"message" validate:"required,min=1,max=2000"`
	Type    string `json:"type"    validate:"omitempty,max=64"`
}
