// AngelaMos | 2026
// repository.go

package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/tenanthub/internal/core"
)

type Repository interface {
	Create(ctx context.Context, ds *DataStore) error
	ListByCreator(ctx context.Context, userID string) ([]DataStore, error)
	GetOwned(ctx context.Context, id, userID string) (*DataStore, error)
	Update(ctx context.Context, ds *DataStore) error
	Delete(ctx context.Context, id, userID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const selectDataStore = `
	SELECT d.id, d.service_name, d.service_type, d.project_id,
	       p.project_name, d.subscription_type, d.organization_name,
	       d.created_by, d.created_at, d.updated_at
	FROM data_stores d
	JOIN projects p ON p.id = d.project_id`

func (r *repository) Create(ctx context.Context, ds *DataStore) error {
	query := `
		INSERT INTO data_stores (id, service_name, service_type, project_id,
		                         subscription_type, organization_name, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		ds.ID,
		ds.ServiceName,
		ds.ServiceType,
		ds.ProjectID,
		ds.SubscriptionType,
		ds.OrganizationName,
		ds.CreatedBy,
	)
	if err := row.Scan(&ds.CreatedAt, &ds.UpdatedAt); err != nil {
		return fmt.Errorf("insert data store: %w", err)
	}

	return nil
}

func (r *repository) ListByCreator(ctx context.Context, userID string) ([]DataStore, error) {
	query := selectDataStore + `
		WHERE d.created_by = $1
		ORDER BY d.created_at DESC`

	stores := []DataStore{}
	if err := r.db.SelectContext(ctx, &stores, query, userID); err != nil {
		return nil, fmt.Errorf("list data stores: %w", err)
	}

	return stores, nil
}

func (r *repository) GetOwned(ctx context.Context, id, userID string) (*DataStore, error) {
	query := selectDataStore + `
		WHERE d.id = $1 AND d.created_by = $2`

	var ds DataStore
	err := r.db.GetContext(ctx, &ds, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDataStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get data store: %w", err)
	}

	return &ds, nil
}

// Update writes the mutable fields. The stamped labels are not touched.
func (r *repository) Update(ctx context.Context, ds *DataStore) error {
	query := `
		UPDATE data_stores
		SET service_name = $3, service_type = $4, project_id = $5, updated_at = NOW()
		WHERE id = $1 AND created_by = $2
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &ds.UpdatedAt, query,
		ds.ID,
		ds.CreatedBy,
		ds.ServiceName,
		ds.ServiceType,
		ds.ProjectID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrDataStoreNotFound
	}
	if err != nil {
		return fmt.Errorf("update data store: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM data_stores WHERE id = $1 AND created_by = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete data store: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete data store: %w", err)
	}
	if rows == 0 {
		return ErrDataStoreNotFound
	}

	return nil
}
