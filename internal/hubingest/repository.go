// AngelaMos | 2026
// repository.go

package hubingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/tenanthub/internal/core"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(Repository) error) error

	Insert(ctx context.Context, h *HubIngest) error
	InsertRef(ctx context.Context, h *HubIngest) error
	ListByUser(ctx context.Context, userID string) ([]HubIngest, error)
	GetOwned(ctx context.Context, id, userID string) (*HubIngest, error)
	Update(ctx context.Context, h *HubIngest) error
	UpdateRef(ctx context.Context, h *HubIngest) error
	Delete(ctx context.Context, id, userID string) error
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

const selectHubIngest = `
	SELECT h.id, h.name, h.user_id, h.project_id, p.project_name,
	       h.subscription_type, h.created_at, h.updated_at
	FROM hub_ingests h
	JOIN projects p ON p.id = h.project_id`

func (r *repository) Insert(ctx context.Context, h *HubIngest) error {
	query := `
		INSERT INTO hub_ingests (id, name, user_id, project_id, subscription_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		h.ID,
		h.Name,
		h.UserID,
		h.ProjectID,
		h.SubscriptionType,
	)
	if err := row.Scan(&h.CreatedAt, &h.UpdatedAt); err != nil {
		return fmt.Errorf("insert hub ingest: %w", err)
	}

	return nil
}

// InsertRef appends h to its owner's ordered hub ingest list.
func (r *repository) InsertRef(ctx context.Context, h *HubIngest) error {
	query := `
		INSERT INTO user_hub_ingests (user_id, hub_ingest_id, name, project_name, subscription_type)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		h.UserID,
		h.ID,
		h.Name,
		h.ProjectName,
		h.SubscriptionType,
	)
	if err != nil {
		if core.IsUniqueViolation(err, "user_hub_ingests_hub_ingest_key") {
			return fmt.Errorf("insert hub ingest ref: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("insert hub ingest ref: %w", err)
	}

	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]HubIngest, error) {
	query := selectHubIngest + `
		WHERE h.user_id = $1
		ORDER BY h.created_at DESC`

	ingests := []HubIngest{}
	if err := r.db.SelectContext(ctx, &ingests, query, userID); err != nil {
		return nil, fmt.Errorf("list hub ingests: %w", err)
	}

	return ingests, nil
}

func (r *repository) GetOwned(ctx context.Context, id, userID string) (*HubIngest, error) {
	query := selectHubIngest + `
		WHERE h.id = $1 AND h.user_id = $2`

	var h HubIngest
	err := r.db.GetContext(ctx, &h, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHubIngestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get hub ingest: %w", err)
	}

	return &h, nil
}

func (r *repository) Update(ctx context.Context, h *HubIngest) error {
	query := `
		UPDATE hub_ingests
		SET name = $3, project_id = $4, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &h.UpdatedAt, query, h.ID, h.UserID, h.Name, h.ProjectID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrHubIngestNotFound
	}
	if err != nil {
		return fmt.Errorf("update hub ingest: %w", err)
	}

	return nil
}

func (r *repository) UpdateRef(ctx context.Context, h *HubIngest) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE user_hub_ingests
		SET name = $2, project_name = $3
		WHERE hub_ingest_id = $1`,
		h.ID, h.Name, h.ProjectName,
	)
	if err != nil {
		return fmt.Errorf("update hub ingest ref: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM hub_ingests WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete hub ingest: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete hub ingest: %w", err)
	}
	if rows == 0 {
		return ErrHubIngestNotFound
	}

	return nil
}

func (r *repository) DeleteRef(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM user_hub_ingests WHERE hub_ingest_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete hub ingest ref: %w", err)
	}
	return nil
}
