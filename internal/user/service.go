// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/tenanthub/internal/auth"
	"github.com/carterperez-dev/tenanthub/internal/core"
	"github.com/carterperez-dev/tenanthub/internal/notification"
	"github.com/carterperez-dev/tenanthub/internal/plan"
)

type Notifier interface {
	Record(ctx context.Context, email, message, typ string)
}

type Service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier, now: time.Now}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	nu auth.NewUser,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(nu.Email),
		PasswordHash: nu.PasswordHash,
		FullName:     nu.FullName,
		Mobile:       nu.Mobile,
		Country:      nu.Country,
		State:        nu.State,
		CompanyName:  nu.CompanyName,
		Designation:  nu.Designation,
		Role:         RoleUser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetMe returns the caller with the project and hub ingest lists.
func (s *Service) GetMe(
	ctx context.Context,
	userID string,
) (*UserDetailResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.details(ctx, user)
}

// GetDetailsByEmail is allowed for the account owner or an admin.
func (s *Service) GetDetailsByEmail(
	ctx context.Context,
	callerID string,
	callerIsAdmin bool,
	email string,
) (*UserDetailResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !callerIsAdmin && user.ID != callerID {
		return nil, fmt.Errorf("get user details: %w", core.ErrForbidden)
	}

	resp, err := s.details(ctx, user)
	if err != nil {
		return nil, err
	}

	s.notifier.Record(ctx, email,
		fmt.Sprintf("User details for %s were accessed.", email),
		notification.TypeUserDetails,
	)

	return resp, nil
}

func (s *Service) details(
	ctx context.Context,
	user *User,
) (*UserDetailResponse, error) {
	projects, err := s.repo.ListProjectRefs(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	hubIngests, err := s.repo.ListHubIngestRefs(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &UserDetailResponse{
		UserResponse: ToUserResponse(user),
		Projects:     projects,
		HubIngests:   hubIngests,
	}, nil
}

// UpdateSubscriptionSnapshot overwrites the caller's entitlement. The
// granted plan ledger and organization requests are left alone.
func (s *Service) UpdateSubscriptionSnapshot(
	ctx context.Context,
	userID string,
	subscriptionType string,
	durationInDays int,
) (*User, error) {
	planType, err := plan.ParseType(subscriptionType)
	if err != nil {
		return nil, fmt.Errorf("update subscription: %w: %w", core.ErrInvalidInput, err)
	}

	if durationInDays <= 0 || durationInDays > MaxDurationInDays {
		return nil, ErrInvalidDuration
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.SetSnapshot(plan.NewSnapshot(planType, durationInDays, s.now()))

	if err := s.repo.UpdateSnapshot(ctx, user); err != nil {
		return nil, err
	}

	s.notifier.Record(ctx, user.Email,
		fmt.Sprintf("Your subscription has been updated to %q.", string(planType)),
		notification.TypeSubscriptionUpdate,
	)

	return user, nil
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) ListBySubscriptionType(
	ctx context.Context,
	subscriptionType string,
	params ListUsersParams,
) ([]User, int, error) {
	planType, err := plan.ParseType(subscriptionType)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w: %w", core.ErrInvalidInput, err)
	}

	params.SubscriptionType = string(planType)
	return s.repo.List(ctx, params)
}

func (s *Service) UpdateUserRole(
	ctx context.Context,
	id, role string,
) (*User, error) {
	if role != RoleUser && role != RoleAdmin {
		return nil, fmt.Errorf(
			"update role: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// PromoteByEmail grants the admin role. Used to bootstrap the first admin.
func (s *Service) PromoteByEmail(ctx context.Context, email string) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return s.UpdateUserRole(ctx, user.ID, RoleAdmin)
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) CanDeleteUser(
	ctx context.Context,
	requesterID, targetID string,
) error {
	if requesterID == targetID {
		return fmt.Errorf("cannot delete yourself: %w", core.ErrForbidden)
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if target.IsAdmin() {
		return fmt.Errorf("cannot delete admin users: %w", core.ErrForbidden)
	}

	return nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Mobile:       u.Mobile,
		Country:      u.Country,
		State:        u.State,
		CompanyName:  u.CompanyName,
		Designation:  u.Designation,
		Subscription: u.Snapshot(),
		CreatedAt:    u.CreatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
