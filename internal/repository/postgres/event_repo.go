package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"clubportal/internal/domain"
)

const eventColumns = "id, title, description, start_time, end_time, max_capacity, current_count, status, type, image_url, created_at"

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var typeNull, imageNull sql.NullString
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.StartTime, &e.EndTime,
		&e.MaxCapacity, &e.CurrentCount, &e.Status,
		&typeNull, &imageNull, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if typeNull.Valid {
		e.Type = typeNull.String
	}
	if imageNull.Valid {
		e.ImageURL = imageNull.String
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	// current_count starts at 0 regardless of caller input.
	e.CurrentCount = 0
	query := `
		INSERT INTO events (id, title, description, start_time, end_time, max_capacity, current_count, status, type, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Title, e.Description, e.StartTime, e.EndTime,
		e.MaxCapacity, e.Status, nullIfEmpty(e.Type), nullIfEmpty(e.ImageURL), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY start_time ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.StartTime != nil {
		add("start_time", *upd.StartTime)
	}
	if upd.EndTime != nil {
		add("end_time", *upd.EndTime)
	}
	if upd.MaxCapacity != nil {
		add("max_capacity", *upd.MaxCapacity)
	}
	if upd.Status != nil {
		add("status", string(*upd.Status))
	}
	if upd.Type != nil {
		add("type", nullIfEmpty(*upd.Type))
	}
	if upd.ImageURL != nil {
		add("image_url", nullIfEmpty(*upd.ImageURL))
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE events SET %s WHERE id = $%d RETURNING `+eventColumns,
		strings.Join(sets, ", "), len(args),
	)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return e, nil
}

// DeleteCascade removes the event together with its registrations and
// glimpses in one transaction, so no orphan rows survive.
func (r *eventRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM glimpses WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("delete glimpses: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM registrations WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("delete registrations: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		err = domain.ErrNotFound
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// IncrementCount consumes one seat with a conditional single-statement
// update. The WHERE guard makes the capacity check and the increment atomic:
// two concurrent registrations racing for the last seat cannot both match.
// When the new count reaches max_capacity the status flips to Full in the
// same statement.
func (r *eventRepository) IncrementCount(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		UPDATE events
		SET current_count = current_count + 1,
		    status = CASE WHEN current_count + 1 >= max_capacity THEN 'Full' ELSE status END
		WHERE id = $1
		  AND current_count < max_capacity
		  AND status NOT IN ('Closed', 'Completed')
		RETURNING ` + eventColumns
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("increment event count: %w", err)
	}

	// The guard rejected the update; re-read the row to report why.
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.AcceptsRegistrations() {
		return nil, domain.ErrRegistrationClosed
	}
	return nil, domain.ErrEventFull
}

// DecrementCount releases one seat, floored at 0. A Full event reopens; an
// admin-set Closed or Completed status is left untouched.
func (r *eventRepository) DecrementCount(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		UPDATE events
		SET current_count = GREATEST(current_count - 1, 0),
		    status = CASE WHEN status = 'Full' THEN 'Open' ELSE status END
		WHERE id = $1
		RETURNING ` + eventColumns
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("decrement event count: %w", err)
	}
	return e, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
