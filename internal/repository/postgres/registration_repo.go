package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"clubportal/internal/domain"
)

const registrationColumns = "registration_id, event_id, user_id, user_email, year, dept, roll_no, mobile_number, timestamp, status"

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

func scanRegistration(row interface{ Scan(...any) error }) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var year, dept, rollNo, mobile sql.NullString
	err := row.Scan(
		&reg.ID, &reg.EventID, &reg.UserID, &reg.UserEmail,
		&year, &dept, &rollNo, &mobile,
		&reg.Timestamp, &reg.Status,
	)
	if err != nil {
		return nil, err
	}
	reg.Year = year.String
	reg.Dept = dept.String
	reg.RollNo = rollNo.String
	reg.MobileNumber = mobile.String
	return reg, nil
}

// Create inserts a ledger row. A partial unique index on
// (event_id, user_id) WHERE status = 'confirmed' backs the uniqueness
// invariant; a violation maps to ErrAlreadyRegistered.
func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	if reg.ID == "" {
		reg.ID = uuid.New().String()
	}
	if reg.Timestamp.IsZero() {
		reg.Timestamp = time.Now().UTC()
	}
	query := `
		INSERT INTO registrations (registration_id, event_id, user_id, user_email, year, dept, roll_no, mobile_number, timestamp, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query,
		reg.ID, reg.EventID, reg.UserID, reg.UserEmail,
		nullIfEmpty(reg.Year), nullIfEmpty(reg.Dept), nullIfEmpty(reg.RollNo), nullIfEmpty(reg.MobileNumber),
		reg.Timestamp, reg.Status,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE registration_id = $1`
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) HasConfirmed(ctx context.Context, eventID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM registrations
			WHERE event_id = $1 AND user_id = $2 AND status = 'confirmed'
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check confirmed registration: %w", err)
	}
	return exists, nil
}

// MarkCancelled is the cancellation counterpart of the conditional count
// increment: the status guard lives in the statement itself, so two
// concurrent cancels of the same row cannot both observe confirmed and both
// release a seat. Zero rows affected means the row was missing or already
// cancelled; the caller distinguishes the two if it needs to.
func (r *registrationRepository) MarkCancelled(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE registrations SET status = 'cancelled' WHERE registration_id = $1 AND status = 'confirmed'`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("cancel registration: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

func (r *registrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id = $1 ORDER BY timestamp DESC`
	return r.queryRegistrations(ctx, query, userID)
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 ORDER BY timestamp ASC`
	return r.queryRegistrations(ctx, query, eventID)
}

func (r *registrationRepository) ListFiltered(ctx context.Context, filter domain.RegistrationFilter, p domain.PaginationParams) ([]*domain.Registration, int, error) {
	var (
		conds []string
		args  []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if filter.EventID != "" {
		add("event_id", filter.EventID)
	}
	if filter.UserID != "" {
		add("user_id", filter.UserID)
	}
	if filter.Status != "" {
		add("status", string(filter.Status))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count registrations: %w", err)
	}

	args = append(args, p.PageSize, p.Offset())
	query := fmt.Sprintf(
		`SELECT %s FROM registrations%s ORDER BY timestamp DESC LIMIT $%d OFFSET $%d`,
		registrationColumns, where, len(args)-1, len(args),
	)
	regs, err := r.queryRegistrations(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return regs, total, nil
}

func (r *registrationRepository) queryRegistrations(ctx context.Context, query string, args ...any) ([]*domain.Registration, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, nil
}
