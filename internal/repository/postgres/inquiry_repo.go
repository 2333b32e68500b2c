package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"clubportal/internal/domain"
)

type inquiryRepository struct {
	DB *sql.DB
}

func NewInquiryRepository(db *sql.DB) domain.InquiryRepository {
	return &inquiryRepository{
		DB: db,
	}
}

func (r *inquiryRepository) Create(ctx context.Context, in *domain.Inquiry) error {
	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO inquiries (id, name, email, message, created_at) VALUES ($1, $2, $3, $4, $5)`,
		in.ID, in.Name, in.Email, in.Message, in.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inquiry: %w", err)
	}
	return nil
}

func (r *inquiryRepository) List(ctx context.Context) ([]*domain.Inquiry, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, email, message, created_at FROM inquiries ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Inquiry
	for rows.Next() {
		in := &domain.Inquiry{}
		if err := rows.Scan(&in.ID, &in.Name, &in.Email, &in.Message, &in.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Inquiry{}
	}
	return items, nil
}

func (r *inquiryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM inquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inquiry: %w", err)
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
