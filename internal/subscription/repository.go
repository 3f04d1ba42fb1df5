// AngelaMos | 2026
// repository.go

package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/tenanthub/internal/core"
	"github.com/carterperez-dev/tenanthub/internal/plan"
)

type Repository interface {
	// WithTx runs fn against a repository bound to one transaction.
	WithTx(ctx context.Context, fn func(Repository) error) error

	LockUser(ctx context.Context, userID string) (*Account, error)
	GetByUserID(ctx context.Context, userID string) (*Subscription, error)
	Insert(ctx context.Context, sub *Subscription) error
	ProjectSnapshot(ctx context.Context, userID string, snap plan.Snapshot) error

	InsertRequest(ctx context.Context, req *OrganizationRequest) error
	GetRequest(ctx context.Context, id string) (*OrganizationRequest, error)
	LockRequest(ctx context.Context, id string) (*OrganizationRequest, error)
	TransitionPending(
		ctx context.Context,
		id string,
		to RequestStatus,
	) (*OrganizationRequest, error)
	SetRequestStatus(
		ctx context.Context,
		id string,
		status RequestStatus,
	) (*OrganizationRequest, error)
	ListRequests(
		ctx context.Context,
		params ListRequestsParams,
	) ([]OrganizationRequest, int, error)
	LatestRequestForUser(ctx context.Context, userID string) (*OrganizationRequest, error)

	Stats(ctx context.Context) (*WorkflowStats, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(
	ctx context.Context,
	fn func(Repository) error,
) error {
	return core.RunInTx(ctx, r.db, func(tx core.DBTX) error {
		return fn(&repository{db: tx})
	})
}

func (r *repository) LockUser(ctx context.Context, userID string) (*Account, error) {
	query := `
		SELECT id, email
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE`

	var acct Account
	err := r.db.GetContext(ctx, &acct, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock user: %w", err)
	}

	return &acct, nil
}

func (r *repository) GetByUserID(
	ctx context.Context,
	userID string,
) (*Subscription, error) {
	query := `
		SELECT id, user_id, subscription_type, start_date, end_date,
		       created_at, updated_at
		FROM subscriptions
		WHERE user_id = $1`

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get subscription: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	return &sub, nil
}

// Insert adds a ledger row. A second row for the same user is refused by
// the user_id constraint and reported as ErrAlreadySubscribed.
func (r *repository) Insert(ctx context.Context, sub *Subscription) error {
	query := `
		INSERT INTO subscriptions (id, user_id, subscription_type, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		sub.ID,
		sub.UserID,
		string(sub.SubscriptionType),
		sub.StartDate,
		sub.EndDate,
	)
	err := row.Scan(&sub.CreatedAt, &sub.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAlreadySubscribed
	}
	if err != nil {
		if core.IsUniqueViolation(err, "subscriptions_user_id_key") {
			return ErrAlreadySubscribed
		}
		return fmt.Errorf("insert subscription: %w", err)
	}

	return nil
}

func (r *repository) ProjectSnapshot(
	ctx context.Context,
	userID string,
	snap plan.Snapshot,
) error {
	query := `
		UPDATE users
		SET subscription_type = $2,
		    subscription_duration_days = $3,
		    subscription_start_date = $4,
		    subscription_end_date = $5,
		    subscription_status = $6,
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query,
		userID,
		string(snap.Type),
		snap.DurationInDays,
		snap.StartDate,
		snap.EndDate,
		string(snap.Status),
	)
	if err != nil {
		return fmt.Errorf("project snapshot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("project snapshot: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *repository) InsertRequest(
	ctx context.Context,
	req *OrganizationRequest,
) error {
	query := `
		INSERT INTO organization_requests (id, user_id, user_email, status)
		VALUES ($1, $2, $3, $4)
		RETURNING requested_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		req.ID,
		req.UserID,
		req.UserEmail,
		string(req.Status),
	)
	if err := row.Scan(&req.RequestedAt, &req.UpdatedAt); err != nil {
		if core.IsUniqueViolation(err, "organization_requests_one_pending") {
			return ErrRequestAlreadyPending
		}
		return fmt.Errorf("insert organization request: %w", err)
	}

	return nil
}

const requestColumns = `id, user_id, user_email, status, requested_at, updated_at`

func (r *repository) GetRequest(
	ctx context.Context,
	id string,
) (*OrganizationRequest, error) {
	return r.getRequest(ctx, `SELECT `+requestColumns+`
		FROM organization_requests
		WHERE id = $1`, id)
}

func (r *repository) LockRequest(
	ctx context.Context,
	id string,
) (*OrganizationRequest, error) {
	return r.getRequest(ctx, `SELECT `+requestColumns+`
		FROM organization_requests
		WHERE id = $1
		FOR UPDATE`, id)
}

func (r *repository) getRequest(
	ctx context.Context,
	query, id string,
) (*OrganizationRequest, error) {
	var req OrganizationRequest
	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get organization request: %w", err)
	}
	return &req, nil
}

// TransitionPending moves a pending request to another status. It returns
// core.ErrNotFound when no pending request matched.
func (r *repository) TransitionPending(
	ctx context.Context,
	id string,
	to RequestStatus,
) (*OrganizationRequest, error) {
	query := `
		UPDATE organization_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + requestColumns

	var req OrganizationRequest
	err := r.db.GetContext(ctx, &req, query, id, string(to))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transition request: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("transition request: %w", err)
	}

	return &req, nil
}

func (r *repository) SetRequestStatus(
	ctx context.Context,
	id string,
	status RequestStatus,
) (*OrganizationRequest, error) {
	query := `
		UPDATE organization_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + requestColumns

	var req OrganizationRequest
	err := r.db.GetContext(ctx, &req, query, id, string(status))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		if core.IsUniqueViolation(err, "organization_requests_one_pending") {
			return nil, ErrRequestAlreadyPending
		}
		return nil, fmt.Errorf("set request status: %w", err)
	}

	return &req, nil
}

func (r *repository) ListRequests(
	ctx context.Context,
	params ListRequestsParams,
) ([]OrganizationRequest, int, error) {
	params.Normalize()

	where := "TRUE"
	args := []any{}
	if params.Status != "" {
		where = "status = $1"
		args = append(args, params.Status)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM organization_requests WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count organization requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM organization_requests
		WHERE %s
		ORDER BY requested_at DESC
		LIMIT $%d OFFSET $%d`,
		requestColumns, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	requests := []OrganizationRequest{}
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list organization requests: %w", err)
	}

	return requests, total, nil
}

func (r *repository) LatestRequestForUser(
	ctx context.Context,
	userID string,
) (*OrganizationRequest, error) {
	query := `SELECT ` + requestColumns + `
		FROM organization_requests
		WHERE user_id = $1
		ORDER BY requested_at DESC
		LIMIT 1`

	var req OrganizationRequest
	err := r.db.GetContext(ctx, &req, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("latest request: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("latest request: %w", err)
	}

	return &req, nil
}

func (r *repository) Stats(ctx context.Context) (*WorkflowStats, error) {
	type bucket struct {
		Key   string `db:"key"`
		Count int    `db:"count"`
	}

	stats := &WorkflowStats{
		Subscriptions: map[string]int{},
		Requests:      map[string]int{},
	}

	var subs []bucket
	if err := r.db.SelectContext(ctx, &subs, `
		SELECT subscription_type AS key, COUNT(*) AS count
		FROM subscriptions
		GROUP BY subscription_type`); err != nil {
		return nil, fmt.Errorf("subscription stats: %w", err)
	}
	for _, b := range subs {
		stats.Subscriptions[b.Key] = b.Count
	}

	var reqs []bucket
	if err := r.db.SelectContext(ctx, &reqs, `
		SELECT status AS key, COUNT(*) AS count
		FROM organization_requests
		GROUP BY status`); err != nil {
		return nil, fmt.Errorf("request stats: %w", err)
	}
	for _, b := range reqs {
		stats.Requests[b.Key] = b.Count
	}

	return stats, nil
}
