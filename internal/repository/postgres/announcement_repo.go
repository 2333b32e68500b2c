package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"clubportal/internal/domain"
)

type announcementRepository struct {
	DB *sql.DB
}

func NewAnnouncementRepository(db *sql.DB) domain.AnnouncementRepository {
	return &announcementRepository{
		DB: db,
	}
}

func (r *announcementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO announcements (id, title, body, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.Title, a.Body, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}
	return nil
}

func (r *announcementRepository) List(ctx context.Context) ([]*domain.Announcement, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, title, body, created_at FROM announcements ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Announcement
	for rows.Next() {
		a := &domain.Announcement{}
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Announcement{}
	}
	return items, nil
}

func (r *announcementRepository) Update(ctx context.Context, id, title, body string) (*domain.Announcement, error) {
	a := &domain.Announcement{}
	err := r.DB.QueryRowContext(ctx,
		`UPDATE announcements SET title = $1, body = $2 WHERE id = $3 RETURNING id, title, body, created_at`,
		title, body, id,
	).Scan(&a.ID, &a.Title, &a.Body, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update announcement: %w", err)
	}
	return a, nil
}

func (r *announcementRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
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
