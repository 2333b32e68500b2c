package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"clubportal/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{
	"user_id", "name", "email", "role", "year", "dept", "roll_no",
	"mobile_number", "designation", "password_hash", "salt", "created_at",
}

func userRow(id, email, role string) *sqlmock.Rows {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(userRowColumns).
		AddRow(id, "Alice", email, role, "3", "CSE", "21CS001", "9876543210", nil, "hash", "salt", now)
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`INSERT INTO users \(user_id, name, email, role, year, dept, roll_no, mobile_number, designation, password_hash, salt, created_at\)`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewUserRepository(db)
		u := &domain.User{
			ID:           "u-1",
			Name:         "Alice",
			Email:        "alice@example.com",
			Role:         domain.RoleStudent,
			PasswordHash: "hash",
			Salt:         "salt",
		}
		require.NoError(t, repo.Create(ctx, u))
		require.False(t, u.CreatedAt.IsZero())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		repo := NewUserRepository(db)
		err = repo.Create(ctx, &domain.User{ID: "u-2", Email: "alice@example.com"})
		require.ErrorIs(t, err, domain.ErrDuplicateEmail)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT user_id, name, email, role, year, dept, roll_no, mobile_number, designation, password_hash, salt, created_at FROM users WHERE email = \$1`).
			WithArgs("alice@example.com").
			WillReturnRows(userRow("u-1", "alice@example.com", "student"))

		repo := NewUserRepository(db)
		u, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, "u-1", u.ID)
		require.Equal(t, "hash", u.PasswordHash)
		require.Empty(t, u.Designation)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT user_id, name, email`).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		repo := NewUserRepository(db)
		_, err = repo.GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE users SET year = \$1, roll_no = \$2 WHERE user_id = \$3 RETURNING`).
			WithArgs(sql.NullString{String: "4", Valid: true}, sql.NullString{String: "21CS001", Valid: true}, "u-1").
			WillReturnRows(userRow("u-1", "alice@example.com", "student"))

		repo := NewUserRepository(db)
		year := "4"
		rollNo := "21CS001"
		u, err := repo.Update(ctx, "u-1", domain.UserUpdate{Year: &year, RollNo: &rollNo})
		require.NoError(t, err)
		require.Equal(t, "u-1", u.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE users SET name = \$1 WHERE user_id = \$2 RETURNING`).
			WillReturnError(sql.ErrNoRows)

		repo := NewUserRepository(db)
		name := "Bob"
		_, err = repo.Update(ctx, "u-missing", domain.UserUpdate{Name: &name})
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM users WHERE user_id = \$1`).
			WithArgs("u-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewUserRepository(db)
		require.NoError(t, repo.Delete(ctx, "u-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM users`).
			WithArgs("u-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewUserRepository(db)
		err = repo.Delete(ctx, "u-missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
