package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"clubportal/internal/domain"
)

const userColumns = "user_id, name, email, role, year, dept, roll_no, mobile_number, designation, password_hash, salt, created_at"

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{
		DB: db,
	}
}

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var year, dept, rollNo, mobile, designation sql.NullString
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Role,
		&year, &dept, &rollNo, &mobile, &designation,
		&u.PasswordHash, &u.Salt, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Year = year.String
	u.Dept = dept.String
	u.RollNo = rollNo.String
	u.MobileNumber = mobile.String
	u.Designation = designation.String
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO users (user_id, name, email, role, year, dept, roll_no, mobile_number, designation, password_hash, salt, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.DB.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.Role,
		nullIfEmpty(u.Year), nullIfEmpty(u.Dept), nullIfEmpty(u.RollNo),
		nullIfEmpty(u.MobileNumber), nullIfEmpty(u.Designation),
		u.PasswordHash, u.Salt, u.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id string, upd domain.UserUpdate) (*domain.User, error) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Year != nil {
		add("year", nullIfEmpty(*upd.Year))
	}
	if upd.Dept != nil {
		add("dept", nullIfEmpty(*upd.Dept))
	}
	if upd.RollNo != nil {
		add("roll_no", nullIfEmpty(*upd.RollNo))
	}
	if upd.MobileNumber != nil {
		add("mobile_number", nullIfEmpty(*upd.MobileNumber))
	}
	if upd.Designation != nil {
		add("designation", nullIfEmpty(*upd.Designation))
	}
	if upd.Role != nil {
		add("role", *upd.Role)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE user_id = $%d RETURNING `+userColumns,
		strings.Join(sets, ", "), len(args),
	)
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
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
