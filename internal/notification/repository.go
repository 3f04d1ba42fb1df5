// AngelaMos | 2026
// repository.go

package notification

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/tenanthub/internal/core"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByEmail(ctx context.Context, email string, limit int) ([]Notification, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications (id, email, message, type)
		VALUES ($1, $2, $3, $4)
		RETURNING date`

	if err := r.db.GetContext(ctx, &n.Date, query,
		n.ID,
		n.Email,
		n.Message,
		n.Type,
	); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}

func (r *repository) ListByEmail(
	ctx context.Context,
	email string,
	limit int,
) ([]Notification, error) {
	query := `
		SELECT id, email, message, type, date
		FROM notifications
		WHERE email = $1
		ORDER BY date DESC
		LIMIT $2`

	notifications := []Notification{}
	if err := r.db.SelectContext(ctx, &notifications, query, email, limit); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return notifications, nil
}
