package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"clubportal/internal/domain"
)

type winnerRepository struct {
	DB *sql.DB
}

func NewWinnerRepository(db *sql.DB) domain.WinnerRepository {
	return &winnerRepository{
		DB: db,
	}
}

func (r *winnerRepository) Create(ctx context.Context, w *domain.Winner) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO winners (id, event_name, event_date, first_place, second_place, third_place, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		w.ID, w.EventName, w.EventDate, w.FirstPlace,
		nullIfEmpty(w.SecondPlace), nullIfEmpty(w.ThirdPlace), w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert winner: %w", err)
	}
	return nil
}

func (r *winnerRepository) List(ctx context.Context) ([]*domain.Winner, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, event_name, event_date, first_place, second_place, third_place, created_at
		 FROM winners ORDER BY event_date DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Winner
	for rows.Next() {
		w := &domain.Winner{}
		var second, third sql.NullString
		if err := rows.Scan(&w.ID, &w.EventName, &w.EventDate, &w.FirstPlace, &second, &third, &w.CreatedAt); err != nil {
			return nil, err
		}
		w.SecondPlace = second.String
		w.ThirdPlace = third.String
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Winner{}
	}
	return items, nil
}

func (r *winnerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM winners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete winner: %w", err)
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
