// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/tenanthub/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateRole(ctx context.Context, id, role string) error
	UpdateSnapshot(ctx context.Context, user *User) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, params ListUsersParams) ([]User, int, error)
	ListProjectRefs(ctx context.Context, userID string) ([]ProjectRef, error)
	ListHubIngestRefs(ctx context.Context, userID string) ([]HubIngestRef, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, password_hash, full_name, mobile, country, state,
	company_name, designation, role,
	subscription_type, subscription_duration_days, subscription_start_date,
	subscription_end_date, subscription_status,
	created_at, updated_at, deleted_at`

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, password_hash, full_name, mobile, country,
		                   state, company_name, designation, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at, subscription_status`

	row := r.db.QueryRowxContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Mobile,
		user.Country,
		user.State,
		user.CompanyName,
		user.Designation,
		user.Role,
	)
	err := row.Scan(&user.CreatedAt, &user.UpdatedAt, &user.SubscriptionStatus)
	if err != nil {
		if core.IsUniqueViolation(err, "users_email_key") {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND deleted_at IS NULL`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return r.execOne(ctx, "update password", query, id, passwordHash)
}

func (r *repository) UpdateRole(ctx context.Context, id, role string) error {
	query := `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return r.execOne(ctx, "update role", query, id, role)
}

// UpdateSnapshot writes the entitlement columns only.
func (r *repository) UpdateSnapshot(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET subscription_type = $2,
		    subscription_duration_days = $3,
		    subscription_start_date = $4,
		    subscription_end_date = $5,
		    subscription_status = $6,
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &user.UpdatedAt, query,
		user.ID,
		user.SubscriptionType,
		user.SubscriptionDurationDays,
		user.SubscriptionStartDate,
		user.SubscriptionEndDate,
		user.SubscriptionStatus,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update snapshot: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update snapshot: %w", err)
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return r.execOne(ctx, "delete user", query, id)
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "deleted_at IS NULL")

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(email ILIKE $%d OR full_name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, params.Role)
		argIdx++
	}

	if params.SubscriptionType != "" {
		conditions = append(conditions, fmt.Sprintf(
			"subscription_type = $%d", argIdx))
		args = append(args, params.SubscriptionType)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM users WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		userColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

func (r *repository) ListProjectRefs(
	ctx context.Context,
	userID string,
) ([]ProjectRef, error) {
	query := `
		SELECT project_id, project_name, organization_name,
		       subscription_type, created_at
		FROM user_projects
		WHERE user_id = $1
		ORDER BY position`

	refs := []ProjectRef{}
	if err := r.db.SelectContext(ctx, &refs, query, userID); err != nil {
		return nil, fmt.Errorf("list project refs: %w", err)
	}
	return refs, nil
}

func (r *repository) ListHubIngestRefs(
	ctx context.Context,
	userID string,
) ([]HubIngestRef, error) {
	query := `
		SELECT hub_ingest_id, name, project_name, subscription_type
		FROM user_hub_ingests
		WHERE user_id = $1
		ORDER BY position`

	refs := []HubIngestRef{}
	if err := r.db.SelectContext(ctx, &refs, query, userID); err != nil {
		return nil, fmt.Errorf("list hub ingest refs: %w", err)
	}
	return refs, nil
}

func (r *repository) execOne(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
