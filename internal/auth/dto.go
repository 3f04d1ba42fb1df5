// AngelaMos | 2026
// dto.go

package auth

import (
	"time"

	"github.com/carterperez-dev/tenanthub/internal/plan"
)

type SignupRequest struct {
	FullName    string `json:"fullName"    validate:"required,min=1,max=100"`
	Email       string `json:"email"       validate:"required,email,max=255"`
	Password    string `json:"password"    validate:"required,min=8,max=128"`
	Mobile      string `json:"mobile"      validate:"required,len=10,numeric"`
	Country     string `json:"country"     validate:"required,max=100"`
	State       string `json:"state"       validate:"required,max=100"`
	CompanyName string `json:"companyName" validate:"required,max=200"`
	Designation string `json:"designation" validate:"required,oneof='Software Developer' 'Data Analyst' 'Product Manager' 'UI/UX Designer' 'System Analyst' 'Project Manager' 'Business Analyst' Others"`
}

type SigninRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
	OTP   string `json:"otp"   validate:"required,numeric,min=4,max=10"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"       validate:"required,email,max=255"`
	OTP         string `json:"otp"         validate:"required,numeric,min=4,max=10"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=128"`
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
}

type SignupResponse struct {
	User UserResponse `json:"user"`
}

type SigninResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(u *UserInfo) UserResponse {
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
		Subscription: u.Subscription,
		CreatedAt:    u.CreatedAt,
	}
}
