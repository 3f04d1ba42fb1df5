// AngelaMos | 2026
// entity.go

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/carterperez-dev/tenanthub/internal/plan"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrEmailDelivery      = errors.New("email delivery failed")
)

type UserInfo struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         string
	Mobile       string
	Country      string
	State        string
	CompanyName  string
	Designation  string
	Subscription plan.Snapshot
	CreatedAt    time.Time
}

type NewUser struct {
	Email        string
	PasswordHash string
	FullName     string
	Mobile       string
	Country      string
	State        string
	CompanyName  string
	Designation  string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(ctx context.Context, u NewUser) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// Notifier records user-facing events. Failures never reach the caller.
type Notifier interface {
	Record(ctx context.Context, email, message, typ string)
}
