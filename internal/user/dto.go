// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/carterperez-dev/tenanthub/internal/plan"
)

type UpdateSubscriptionRequest struct {
	SubscriptionType string `json:"subscriptionType" validate:"required,oneof=FreeTrial Organization"`
	DurationInDays   int    `json:"durationInDays"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type UserResponse struct {
	ID           string        `json:"id"`
	FullName     string        `json:"fullName"`
	Email        string        `json:"email"`
	Mobile       string        `json:"mobile"`
	Country      string        `json:"country"`
	State        string        `json:"state"`
	CompanyName  string        `json:"companyName"`
	Designation  string        `json:"designation"`
	Role         string        `json:"role"`
	Subscription plan.Snapshot `json:"subscription"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type UserDetailResponse struct {
	UserResponse
	Projects   []ProjectRef   `json:"projects"`
	HubIngests []HubIngestRef `json:"hubIngests"`
}

type ListUsersParams struct {
	Page             int    `json:"page"`
	PageSize         int    `json:"page_size"`
	Search           string `json:"search"`
	Role             string `json:"role"`
	SubscriptionType string `json:"subscription_type"`
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		Mobile:       u.Mobile,
		Country:      u.Country,
		State:        u.State,
		CompanyName:  u.CompanyName,
		Designation:  u.Designation,
		Role:         u.Role,
		Subscription: u.Snapshot(),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
