// AngelaMos | 2026
// repository.go

package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/tenanthub/internal/core"
)

type Repository interface {
	Create(ctx context.Context, m *Member) error
	List(ctx context.Context) ([]Member, error)
	Get(ctx context.Context, id string) (*Member, error)
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const memberColumns = `id, user_name, user_admin_name, user_type, company_name,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, m *Member) error {
	row := r.db.QueryRowxContext(ctx, `
		INSERT INTO team_members (id, user_name, user_admin_name, user_type, company_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		m.ID, m.UserName, m.UserAdminName, m.UserType, m.CompanyName,
	)
	if err := row.Scan(&m.CreatedAt, &m.UpdatedAt); err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]Member, error) {
	members := []Member{}
	err := r.db.SelectContext(ctx, &members,
		`SELECT `+memberColumns+` FROM team_members ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (r *repository) Get(ctx context.Context, id string) (*Member, error) {
	var m Member
	err := r.db.GetContext(ctx, &m,
		`SELECT `+memberColumns+` FROM team_members WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return &m, nil
}

func (r *repository) Update(ctx context.Context, m *Member) error {
	err := r.db.GetContext(ctx, m, `
		UPDATE team_members
		SET user_name = $2, user_admin_name = $3, user_type = $4,
		    company_name = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+memberColumns,
		m.ID, m.UserName, m.UserAdminName, m.UserType, m.CompanyName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMemberNotFound
	}
	if err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if rows == 0 {
		return ErrMemberNotFound
	}
	return nil
}
