package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"clubportal/internal/domain"
)

type glimpseRepository struct {
	DB *sql.DB
}

func NewGlimpseRepository(db *sql.DB) domain.GlimpseRepository {
	return &glimpseRepository{
		DB: db,
	}
}

func (r *glimpseRepository) Create(ctx context.Context, g *domain.Glimpse) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO glimpses (id, event_id, image_url, caption, created_at) VALUES ($1, $2, $3, $4, $5)`,
		g.ID, g.EventID, g.ImageURL, nullIfEmpty(g.Caption), g.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert glimpse: %w", err)
	}
	return nil
}

func (r *glimpseRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Glimpse, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, event_id, image_url, caption, created_at FROM glimpses WHERE event_id = $1 ORDER BY created_at DESC`,
		eventID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Glimpse
	for rows.Next() {
		g := &domain.Glimpse{}
		var caption sql.NullString
		if err := rows.Scan(&g.ID, &g.EventID, &g.ImageURL, &caption, &g.CreatedAt); err != nil {
			return nil, err
		}
		g.Caption = caption.String
		items = append(items, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Glimpse{}
	}
	return items, nil
}

func (r *glimpseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM glimpses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete glimpse: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
