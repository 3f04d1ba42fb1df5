// AngelaMos | 2026
// repository.go

package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/tenanthub/internal/core"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(Repository) error) error

	GetOwner(ctx context.Context, userID string) (*Owner, error)

	Insert(ctx context.Context, p *Project) error
	InsertRef(ctx context.Context, p *Project) error
	ListByOwner(ctx context.Context, ownerID string) ([]Project, error)
	GetOwned(ctx context.Context, id, ownerID string) (*Project, error)
	GetOwnedByName(ctx context.Context, ownerID, name string) (*Project, error)
	Rename(ctx context.Context, id, ownerID, name string) (*Project, error)
	RenameRef(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id, ownerID string) error
	DeleteRef(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(ctx context.Context, fn func(Repository) error) error {
	return core.RunInTx(ctx, r.db, func(tx core.DBTX) error {
		return fn(&repository{db: tx})
	})
}

func (r *repository) GetOwner(ctx context.Context, userID string) (*Owner, error) {
	query := `
		SELECT id, email,
		       subscription_type, subscription_duration_days,
		       subscription_start_date, subscription_end_date, subscription_status
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`

	var owner Owner
	err := r.db.GetContext(ctx, &owner, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOwnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}

	return &owner, nil
}

const projectColumns = `id, project_name, organization_name, subscription_type,
	created_by, created_at, updated_at`

func (r *repository) Insert(ctx context.Context, p *Project) error {
	query := `
		INSERT INTO projects (id, project_name, organization_name, subscription_type, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.ProjectName,
		p.OrganizationName,
		p.SubscriptionType,
		p.CreatedBy,
	)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}

	return nil
}

// InsertRef appends p to its owner's ordered project list.
func (r *repository) InsertRef(ctx context.Context, p *Project) error {
	query := `
		INSERT INTO user_projects (user_id, project_id, project_name,
		                           organization_name, subscription_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		p.CreatedBy,
		p.ID,
		p.ProjectName,
		p.OrganizationName,
		p.SubscriptionType,
		p.CreatedAt,
	)
	if err != nil {
		if core.IsUniqueViolation(err, "user_projects_project_key") {
			return fmt.Errorf("insert project ref: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("insert project ref: %w", err)
	}

	return nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID string) ([]Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects
		WHERE created_by = $1
		ORDER BY created_at DESC`

	projects := []Project{}
	if err := r.db.SelectContext(ctx, &projects, query, ownerID); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}

func (r *repository) GetOwned(ctx context.Context, id, ownerID string) (*Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects
		WHERE id = $1 AND created_by = $2`

	return r.getOne(ctx, query, id, ownerID)
}

func (r *repository) GetOwnedByName(
	ctx context.Context,
	ownerID, name string,
) (*Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects
		WHERE created_by = $1 AND project_name = $2
		ORDER BY created_at DESC
		LIMIT 1`

	return r.getOne(ctx, query, ownerID, name)
}

func (r *repository) Rename(
	ctx context.Context,
	id, ownerID, name string,
) (*Project, error) {
	query := `
		UPDATE projects
		SET project_name = $3, updated_at = NOW()
		WHERE id = $1 AND created_by = $2
		RETURNING ` + projectColumns

	return r.getOne(ctx, query, id, ownerID, name)
}

func (r *repository) RenameRef(ctx context.Context, id, name string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE user_projects SET project_name = $2 WHERE project_id = $1`,
		id, name,
	)
	if err != nil {
		return fmt.Errorf("rename project ref: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id, ownerID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = $1 AND created_by = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if rows == 0 {
		return ErrProjectNotFound
	}

	return nil
}

func (r *repository) DeleteRef(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM user_projects WHERE project_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project ref: %w", err)
	}
	return nil
}

func (r *repository) getOne(ctx context.Context, query string, args ...any) (*Project, error) {
	var p Project
	err := r.db.GetContext(ctx, &p, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}
