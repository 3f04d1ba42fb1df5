// AngelaMos | 2026
// member.go

// Package member is the team member directory served under /add-user.
package member

import (
	"errors"
	"time"
)

var ErrMemberNotFound = errors.New("member not found")

type Member struct {
	ID            string    `db:"id"              json:"id"`
	UserName      string    `db:"user_name"       json:"userName"`
	UserAdminName string    `db:"user_admin_name" json:"userAdminName"`
	UserType      string    `db:"user_type"       json:"userType"`
	CompanyName   string    `db:"company_name"    json:"companyName"`
	CreatedAt     time.Time `db:"created_at"      json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at"      json:"updatedAt"`
}

type MemberRequest struct {
	UserName      string `json:"userName"      validate:"required,max=200"`
	UserAdminName string `json:"userAdminName" validate:"required,max=200"`
	UserType      string `json:"userType"      validate:"required,oneof=Admin Editor Viewer"`
	CompanyName   string `json:"companyName"   validate:"required,max=200"`
}
