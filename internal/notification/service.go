// AngelaMos | 2026
// service.go

package notification

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	recordTimeout = 3 * time.Second
	listLimit     = 200
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Record appends an event message for email. It never fails: store errors
// are logged and dropped so callers' responses are unaffected.
func (s *Service) Record(ctx context.Context, email, message, typ string) {
	if email == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	n := newNotification(email, message, typ)
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.WarnContext(ctx, "failed to record notification",
			"email", n.Email,
			"type", n.Type,
			"error", err,
		)
	}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateNotificationRequest,
) (*Notification, error) {
	n := newNotification(req.Email, req.Message, req.Type)
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) ListByEmail(ctx context.Context, email string) ([]Notification, error) {
	return s.repo.ListByEmail(ctx, strings.ToLower(email), listLimit)
}

func newNotification(email, message, typ string) *Notification {
	if typ == "" {
		typ = TypeInfo
	}
	return &Notification{
		ID:      uuid.New().String(),
		Email:   strings.ToLower(strings.TrimSpace(email)),
		Message: message,
		Type:    typ,
		Date:    time.Now().UTC(),
	}
}
