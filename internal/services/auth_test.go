package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"clubportal/internal/domain"
)

type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return errors.New("hash mismatch")
	}
	return nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Issue(userID, email, role string, expiry time.Duration) (string, error) {
	return "token-" + userID, nil
}

func newTestAuthService(users *fakeUserRepo) domain.AuthService {
	return NewAuthService(users, fakeHasher{}, fakeTokenIssuer{}, time.Hour)
}

func TestAuthService_SignUp(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		role     string
		wantErr  bool
		wantRole string
	}{
		{
			name:     "student signup",
			email:    "alice@example.com",
			password: "password123",
			role:     "student",
			wantRole: domain.RoleStudent,
		},
		{
			name:     "admin signup",
			email:    "boss@example.com",
			password: "password123",
			role:     "admin",
			wantRole: domain.RoleAdmin,
		},
		{
			name:     "unknown role defaults to student",
			email:    "bob@example.com",
			password: "password123",
			role:     "superuser",
			wantRole: domain.RoleStudent,
		},
		{
			name:     "invalid email",
			email:    "not-an-email",
			password: "password123",
			wantErr:  true,
		},
		{
			name:     "short password",
			email:    "carol@example.com",
			password: "short",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(&fakeUserRepo{users: map[string]*domain.User{}})

			user, err := svc.SignUp(context.Background(), tt.email, tt.password, "Name", tt.role)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Role != tt.wantRole {
				t.Fatalf("expected role %q, got %q", tt.wantRole, user.Role)
			}
			if user.ID == "" {
				t.Fatal("expected generated user id")
			}
		})
	}
}

func TestAuthService_SignUp_idempotentOnEmail(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{}}
	svc := newTestAuthService(users)

	first, err := svc.SignUp(context.Background(), "alice@example.com", "password123", "Alice", "student")
	if err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	// Same credentials: returns the existing account.
	again, err := svc.SignUp(context.Background(), "Alice@Example.com", "password123", "Alice", "student")
	if err != nil {
		t.Fatalf("repeat signup failed: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("expected the same account, got %q vs %q", again.ID, first.ID)
	}

	// Different password: conflict.
	_, err = svc.SignUp(context.Background(), "alice@example.com", "otherpassword", "Alice", "student")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*domain.User{}}
	svc := newTestAuthService(users)

	created, err := svc.SignUp(context.Background(), "alice@example.com", "password123", "Alice", "student")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token != "token-"+created.ID {
		t.Fatalf("unexpected token %q", token)
	}
	if user.ID != created.ID {
		t.Fatalf("expected user %q, got %q", created.ID, user.ID)
	}

	if _, _, err := svc.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "password123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}
