// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carterperez-dev/tenanthub/internal/config"
	"github.com/carterperez-dev/tenanthub/internal/core"
	"github.com/carterperez-dev/tenanthub/internal/mail"
	"github.com/carterperez-dev/tenanthub/internal/middleware"
	"github.com/carterperez-dev/tenanthub/internal/notification"
)

type Revoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type Service struct {
	jwt          *JWTManager
	userProvider UserProvider
	otps         OTPStore
	mailer       mail.Sender
	notifier     Notifier
	revoker      Revoker
	otpConfig    config.OTPConfig
	now          func() time.Time
}

type ServiceDeps struct {
	JWT          *JWTManager
	UserProvider UserProvider
	OTPs         OTPStore
	Mailer       mail.Sender
	Notifier     Notifier
	Revoker      Revoker
	OTPConfig    config.OTPConfig
}

func NewService(deps ServiceDeps) *Service {
	return &Service{
		jwt:          deps.JWT,
		userProvider: deps.UserProvider,
		otps:         deps.OTPs,
		mailer:       deps.Mailer,
		notifier:     deps.Notifier,
		revoker:      deps.Revoker,
		otpConfig:    deps.OTPConfig,
		now:          time.Now,
	}
}

func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (*SignupResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(ctx, NewUser{
		Email:        normalizeEmail(req.Email),
		PasswordHash: passwordHash,
		FullName:     strings.TrimSpace(req.FullName),
		Mobile:       req.Mobile,
		Country:      req.Country,
		State:        req.State,
		CompanyName:  req.CompanyName,
		Designation:  req.Designation,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.notifier.Record(ctx, user.Email,
		fmt.Sprintf("Welcome %s! Your account has been successfully created.", user.Email),
		notification.TypeSignup,
	)

	return &SignupResponse{User: toUserResponse(user)}, nil
}

func (s *Service) Signin(
	ctx context.Context,
	req SigninRequest,
) (*SigninResponse, error) {
	user, err := s.userProvider.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // equalises timing with a wrong password
			_, _ = core.CheckPassword(req.Password, "")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	check, err := core.CheckPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !check.Valid {
		return nil, ErrInvalidCredentials
	}

	if check.Upgrade != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.userProvider.UpdatePassword(ctx, user.ID, check.Upgrade)
	}

	issued, err := s.jwt.CreateAccessToken(TokenSubject{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	s.notifier.Record(ctx, user.Email,
		fmt.Sprintf("Welcome back, %s! You have successfully signed in.", user.Email),
		notification.TypeSignin,
	)

	return &SigninResponse{
		User:      toUserResponse(user),
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	}, nil
}

// ForgotPassword issues a numeric code, stores it with expiry and mails it.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userProvider.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	code, err := core.GenerateNumericCode(s.otpConfig.Length)
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	expiresAt := s.now().Add(s.otpConfig.TTL)
	if err := s.otps.Save(ctx, user.Email, code, expiresAt); err != nil {
		return err
	}

	err = s.mailer.Send(ctx, mail.Message{
		To:      user.Email,
		Subject: "Password Reset OTP",
		Body: fmt.Sprintf(
			"Your OTP for password reset is %s. It expires in %d minutes.",
			code,
			int(s.otpConfig.TTL/time.Minute),
		),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEmailDelivery, err)
	}

	return nil
}

// VerifyOTP checks a code without consuming it.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) error {
	ok, err := s.otps.Verify(ctx, normalizeEmail(email), code, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidOTP
	}
	return nil
}

func (s *Service) ResetPassword(
	ctx context.Context,
	req ResetPasswordRequest,
) error {
	email := normalizeEmail(req.Email)

	ok, err := s.otps.Consume(ctx, email, req.OTP, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidOTP
	}

	user, err := s.userProvider.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userProvider.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.notifier.Record(ctx, user.Email,
		"Your password has been reset successfully.",
		notification.TypePasswordReset,
	)

	return nil
}

// Logout revokes the presented access token until its natural expiry.
func (s *Service) Logout(
	ctx context.Context,
	claims *middleware.AccessTokenClaims,
) error {
	if claims == nil {
		return fmt.Errorf("logout: %w", core.ErrUnauthorized)
	}
	if s.revoker == nil {
		return nil
	}
	return s.revoker.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}

// ResolveToken verifies a token and returns the user it names.
func (s *Service) ResolveToken(ctx context.Context, token string) (*UserInfo, error) {
	claims, err := s.jwt.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.userProvider.GetByID(ctx, claims.UserID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
