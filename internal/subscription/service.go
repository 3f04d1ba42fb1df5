// AngelaMos | 2026
// service.go

package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/tenanthub/internal/core"
	"github.com/carterperez-dev/tenanthub/internal/metrics"
	"github.com/carterperez-dev/tenanthub/internal/notification"
	"github.com/carterperez-dev/tenanthub/internal/plan"
)

type Notifier interface {
	Record(ctx context.Context, email, message, typ string)
}

// Recorder counts workflow transitions and refusals.
type Recorder interface {
	Transition(name string)
	Refused(reason string)
}

type Service struct {
	repo     Repository
	notifier Notifier
	metrics  Recorder
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(
	repo Repository,
	notifier Notifier,
	recorder Recorder,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		metrics:  recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// RequestSubscription grants a FreeTrial ledger entry immediately or files
// a pending Organization request. Any existing ledger entry refuses both.
func (s *Service) RequestSubscription(
	ctx context.Context,
	userID string,
	subscriptionType string,
) (*Outcome, error) {
	ctx, span := core.StartSpan(ctx, "subscription.request",
		attribute.String("user.id", userID),
		attribute.String("subscription.type", subscriptionType))
	defer span.End()

	planType, err := plan.ParseType(subscriptionType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}

	var (
		out   *Outcome
		email string
	)

	err = s.repo.WithTx(ctx, func(tx Repository) error {
		acct, err := tx.LockUser(ctx, userID)
		if err != nil {
			return err
		}
		email = acct.Email

		if _, err := tx.GetByUserID(ctx, userID); err == nil {
			return ErrAlreadySubscribed
		} else if !errors.Is(err, core.ErrNotFound) {
			return err
		}

		switch planType {
		case plan.FreeTrial:
			sub, err := s.grant(ctx, tx, userID, plan.FreeTrial)
			if err != nil {
				return err
			}
			out = &Outcome{
				Message: fmt.Sprintf(
					"You have successfully subscribed to the %s plan.",
					planType,
				),
				Subscription: sub,
			}

		case plan.Organization:
			req := &OrganizationRequest{
				ID:        uuid.New().String(),
				UserID:    userID,
				UserEmail: acct.Email,
				Status:    StatusPending,
			}
			if err := tx.InsertRequest(ctx, req); err != nil {
				return err
			}
			out = &Outcome{
				Message: "Your Organization subscription request has been submitted for approval.",
				Request: req,
			}
		}

		return nil
	})
	if err != nil {
		core.SetSpanError(ctx, err)
		s.refused(err)
		return nil, err
	}

	if out.Subscription != nil {
		s.metrics.Transition(metrics.TransitionFreeTrialGranted)
	} else {
		s.metrics.Transition(metrics.TransitionRequested)
	}
	s.notifier.Record(ctx, email, out.Message, notification.TypeSubscription)

	return out, nil
}

// grant writes the ledger row and projects the matching snapshot onto
// the user inside tx.
func (s *Service) grant(
	ctx context.Context,
	tx Repository,
	userID string,
	planType plan.Type,
) (*Subscription, error) {
	now := s.now().UTC()

	sub := &Subscription{
		ID:               uuid.New().String(),
		UserID:           userID,
		SubscriptionType: planType,
		StartDate:        now,
		EndDate:          plan.LedgerEnd(now),
	}
	if err := tx.Insert(ctx, sub); err != nil {
		return nil, err
	}

	snap := plan.NewSnapshot(planType, plan.GrantTermDays, now)
	if err := tx.ProjectSnapshot(ctx, userID, snap); err != nil {
		return nil, err
	}

	core.AddSpanEvent(ctx, "subscription.granted",
		attribute.String("subscription.id", sub.ID),
		attribute.String("subscription.type", string(planType)))

	return sub, nil
}

// ApproveOrganizationRequest grants the Organization plan for a pending
// request. The request, ledger row and snapshot change in one transaction.
func (s *Service) ApproveOrganizationRequest(
	ctx context.Context,
	requestID string,
) (*ApprovalResult, error) {
	ctx, span := core.StartSpan(ctx, "subscription.approve",
		attribute.String("request.id", requestID))
	defer span.End()

	if err := checkRequestID(requestID); err != nil {
		return nil, err
	}

	var (
		result *ApprovalResult
		email  string
	)

	err := s.repo.WithTx(ctx, func(tx Repository) error {
		req, err := tx.LockRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if !req.IsPending() {
			return ErrAlreadyProcessed
		}

		acct, err := tx.LockUser(ctx, req.UserID)
		if err != nil {
			return err
		}
		email = acct.Email

		sub, err := s.grant(ctx, tx, acct.ID, plan.Organization)
		if err != nil {
			return err
		}

		approved, err := tx.TransitionPending(ctx, req.ID, StatusApproved)
		if err != nil {
			return err
		}

		result = &ApprovalResult{
			Message:      "Organization request approved successfully.",
			Subscription: sub,
			Request:      approved,
		}
		return nil
	})
	if err != nil {
		core.SetSpanError(ctx, err)
		s.refused(err)
		return nil, err
	}

	s.metrics.Transition(metrics.TransitionApproved)
	s.notifier.Record(ctx, email,
		"Your Organization subscription request has been approved.",
		notification.TypeSubscription,
	)

	return result, nil
}

// RejectOrganizationRequest closes a pending request without granting.
func (s *Service) RejectOrganizationRequest(
	ctx context.Context,
	requestID string,
) (*OrganizationRequest, error) {
	ctx, span := core.StartSpan(ctx, "subscription.reject",
		attribute.String("request.id", requestID))
	defer span.End()

	if err := checkRequestID(requestID); err != nil {
		return nil, err
	}

	req, err := s.repo.TransitionPending(ctx, requestID, StatusRejected)
	if errors.Is(err, core.ErrNotFound) {
		if _, getErr := s.repo.GetRequest(ctx, requestID); getErr != nil {
			err = getErr
		} else {
			err = ErrAlreadyProcessed
		}
	}
	if err != nil {
		core.SetSpanError(ctx, err)
		s.refused(err)
		return nil, err
	}

	s.metrics.Transition(metrics.TransitionRejected)
	s.notifier.Record(ctx, req.UserEmail,
		"Your Organization subscription request has been rejected.",
		notification.TypeSubscription,
	)

	return req, nil
}

// OverwriteRequestStatus sets any status without the pending guard. It
// never creates or removes a ledger entry.
func (s *Service) OverwriteRequestStatus(
	ctx context.Context,
	requestID string,
	status string,
) (*OrganizationRequest, error) {
	next, err := ParseRequestStatus(status)
	if err != nil {
		return nil, err
	}
	if err := checkRequestID(requestID); err != nil {
		return nil, err
	}

	req, err := s.repo.SetRequestStatus(ctx, requestID, next)
	if err != nil {
		return nil, err
	}

	s.logger.Warn("organization request status overwritten",
		"request_id", requestID,
		"status", next,
	)
	s.metrics.Transition(metrics.TransitionOverwritten)

	return req, nil
}

// checkRequestID rejects ids that cannot name a stored request before they
// reach the uuid column.
func checkRequestID(id string) error {
	if uuid.Validate(id) != nil {
		return ErrRequestNotFound
	}
	return nil
}

func (s *Service) ListRequests(
	ctx context.Context,
	params ListRequestsParams,
) ([]OrganizationRequest, int, error) {
	if params.Status != "" {
		if _, err := ParseRequestStatus(params.Status); err != nil {
			return nil, 0, err
		}
	}
	return s.repo.ListRequests(ctx, params)
}

// GetForUser returns the caller's ledger entry and latest request. Either
// may be nil.
func (s *Service) GetForUser(
	ctx context.Context,
	userID string,
) (*MySubscriptionResponse, error) {
	resp := &MySubscriptionResponse{}

	sub, err := s.repo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		resp.Subscription = sub
	case !errors.Is(err, core.ErrNotFound):
		return nil, err
	}

	req, err := s.repo.LatestRequestForUser(ctx, userID)
	switch {
	case err == nil:
		resp.LatestRequest = req
	case !errors.Is(err, core.ErrNotFound):
		return nil, err
	}

	return resp, nil
}

func (s *Service) Stats(ctx context.Context) (*WorkflowStats, error) {
	return s.repo.Stats(ctx)
}

func (s *Service) refused(err error) {
	switch {
	case errors.Is(err, ErrAlreadySubscribed):
		s.metrics.Refused("already_subscribed")
	case errors.Is(err, ErrRequestAlreadyPending):
		s.metrics.Refused("request_pending")
	case errors.Is(err, ErrAlreadyProcessed):
		s.metrics.Refused("already_processed")
	}
}
