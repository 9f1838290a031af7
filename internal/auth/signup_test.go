package auth

import (
	"context"
	"testing"

	"github.com/nargizhn/primehub-backend/pkg/config"
	pkgerrors "github.com/nargizhn/primehub-backend/pkg/errors"
)

// validation-only fixture: these paths never touch the database.
func validationSignupService() *signupService {
	return &signupService{passwordCfg: config.PasswordConfig{MinLength: 6}}
}

func TestSignupRejectsMismatchedPasswords(t *testing.T) {
	svc := validationSignupService()

	err := svc.Signup(context.Background(), SignupRequest{
		Email:           "new@example.com",
		Password:        "secret-one",
		ConfirmPassword: "secret-two",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSignupRejectsShortPassword(t *testing.T) {
	svc := validationSignupService()

	err := svc.Signup(context.Background(), SignupRequest{
		Email:           "new@example.com",
		Password:        "abc",
		ConfirmPassword: "abc",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSignupRequiresEmail(t *testing.T) {
	svc := validationSignupService()

	err := svc.Signup(context.Background(), SignupRequest{
		Email:           "   ",
		Password:        "secret-one",
		ConfirmPassword: "secret-one",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewSignupServiceRequiresDB(t *testing.T) {
	if _, err := NewSignupService(SignupServiceParams{}); err == nil {
		t.Fatalf("expected error without database client")
	}
}
