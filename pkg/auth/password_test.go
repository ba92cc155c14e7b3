package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !CheckPassword("correct horse battery", hash) {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPassword("wrong password", hash) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestHashPasswordSalts(t *testing.T) {
	first, err := HashPassword("same password!")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, err := HashPassword("same password!")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password should differ")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("ValidatePassword(short) = %v, want ErrPasswordTooShort", err)
	}
	if err := ValidatePassword("long enough password"); err != nil {
		t.Fatalf("ValidatePassword() = %v, want nil", err)
	}
	if err := ValidatePassword(strings.Repeat("x", 73)); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("ValidatePassword(73 bytes) = %v, want ErrPasswordTooLong", err)
	}
}
