package domain

import (
	"context"
	"time"
)

// User roles.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents a club member, mirrored from the identity provider on first
// sign-in. Year, Dept, RollNo, and MobileNumber are optional for admins but
// required for a student to complete an event registration.
// swagger:model User
type User struct {
	ID           string    `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Year         string    `json:"year,omitempty"`
	Dept         string    `json:"dept,omitempty"`
	RollNo       string    `json:"roll_no,omitempty"`
	MobileNumber string    `json:"mobile_number,omitempty"`
	Designation  string    `json:"designation,omitempty"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProfileCompleteness is the structured result of the profile gate: which of
// the four required identity fields are missing, if any.
type ProfileCompleteness struct {
	Complete bool     `json:"complete"`
	Missing  []string `json:"missing,omitempty"`
}

// CheckProfileCompleteness reports whether year, dept, roll number, and mobile
// number are all populated, listing the missing fields by their wire names.
func CheckProfileCompleteness(u *User) ProfileCompleteness {
	var missing []string
	if u.Year == "" {
		missing = append(missing, "year")
	}
	if u.Dept == "" {
		missing = append(missing, "dept")
	}
	if u.RollNo == "" {
		missing = append(missing, "roll_no")
	}
	if u.MobileNumber == "" {
		missing = append(missing, "mobile_number")
	}
	return ProfileCompleteness{Complete: len(missing) == 0, Missing: missing}
}

// UserUpdate carries the editable profile fields. Nil pointers leave the
// column unchanged. Role is admin-editable only; services enforce that.
type UserUpdate struct {
	Name         *string
	Year         *string
	Dept         *string
	RollNo       *string
	MobileNumber *string
	Designation  *string
	Role         *string
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated identity.
type TokenVerifier interface {
	Verify(token string) (userID, email, role string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*User, error)
	Delete(ctx context.Context, id string) error
}

// AuthService handles signup and credential verification.
type AuthService interface {
	// SignUp creates the user if absent. Idempotent on email: signing up an
	// existing email with matching credentials returns the existing user.
	SignUp(ctx context.Context, email, password, name, role string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}

// UserService defines profile and member-management operations.
type UserService interface {
	GetByID(ctx context.Context, id string) (*User, error)
	// UpdateProfile applies upd to the user's own profile. Role changes are
	// ignored unless asAdmin is true.
	UpdateProfile(ctx context.Context, id string, upd UserUpdate, asAdmin bool) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id string) error
}
