package users

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Mareenraj/ATS/internal/shared/auth"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	return NewService(NewMemoryRepo())
}

func validInput() RegisterInput {
	return RegisterInput{
		Username:  "recruiter",
		Email:     "recruiter@example.com",
		Password:  "recruiter123",
		FirstName: "Jane",
		LastName:  "Smith",
	}
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc := newTestService(t)

	sess, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	claims, err := auth.VerifyJWT(sess.Token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if claims.Subject != sess.User.ID || claims.Username != "recruiter" || claims.Name != "Jane Smith" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if sess.User.PasswordHash == "" || sess.User.PasswordHash == "recruiter123" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	dupEmail := validInput()
	dupEmail.Username = "other"
	if _, err := svc.Register(context.Background(), dupEmail); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate email, got %v", err)
	}
}

func TestRegisterValidates(t *testing.T) {
	svc := newTestService(t)
	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{name: "short username", mutate: func(in *RegisterInput) { in.Username = "ab" }},
		{name: "username spaces", mutate: func(in *RegisterInput) { in.Username = "jane smith" }},
		{name: "bad email", mutate: func(in *RegisterInput) { in.Email = "not-an-email" }},
		{name: "short password", mutate: func(in *RegisterInput) { in.Password = "short" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestLoginByUsernameOrEmail(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for _, id := range []string{"recruiter", "recruiter@example.com", "RECRUITER@example.com"} {
		if _, err := svc.Login(context.Background(), id, "recruiter123"); err != nil {
			t.Fatalf("Login(%q): %v", id, err)
		}
	}
	if _, err := svc.Login(context.Background(), "recruiter", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost", "recruiter123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestUpsertFromAuthReusesAccount(t *testing.T) {
	svc := newTestService(t)
	reg, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	sess, err := svc.UpsertFromAuth(context.Background(), "recruiter@example.com", "Jane", "Smith")
	if err != nil {
		t.Fatalf("UpsertFromAuth: %v", err)
	}
	if sess.User.ID != reg.User.ID {
		t.Fatalf("expected existing account to be reused")
	}

	fresh, err := svc.UpsertFromAuth(context.Background(), "new.person@example.com", "New", "Person")
	if err != nil {
		t.Fatalf("UpsertFromAuth new: %v", err)
	}
	if !strings.HasPrefix(fresh.User.Username, "new.person-") {
		t.Fatalf("unexpected derived username %q", fresh.User.Username)
	}
	if _, err := svc.Login(context.Background(), fresh.User.Username, ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("password-less accounts must not log in with a password")
	}
}

func TestEnsureAccountIsIdempotent(t *testing.T) {
	svc := newTestService(t)

	first, created, err := svc.EnsureAccount(context.Background(), validInput())
	if err != nil || !created {
		t.Fatalf("expected creation, got created=%v err=%v", created, err)
	}
	second, created, err := svc.EnsureAccount(context.Background(), validInput())
	if err != nil || created {
		t.Fatalf("expected reuse, got created=%v err=%v", created, err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same account")
	}
}
