package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_ErrorString_NoCause(t *testing.T) {
	err := New(KindAuth, "invalid_credentials", "Invalid credentials.")

	msg := err.Error()
	if msg == "" {
		t.Fatal("expected non-empty error string")
	}
}

func TestError_ErrorString_WithCause(t *testing.T) {
	root := errors.New("root cause")
	err := Wrap(KindInternal, "hash_failed", "hash failed", root)

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}
}

func TestError_Unwrap(t *testing.T) {
	root := errors.New("root")
	err := Wrap(KindInternal, "internal_error", "internal", root)

	if errors.Unwrap(err) != root {
		t.Fatalf("unwrap did not return cause")
	}
}

func TestWithMeta_AttachesMeta(t *testing.T) {
	err := ErrMissingField("email")

	if err.Meta == nil {
		t.Fatalf("expected meta to be set")
	}
	if err.Meta["field"] != "email" {
		t.Fatalf("unexpected meta value: %+v", err.Meta)
	}
}

func TestIs_MatchesCode(t *testing.T) {
	err := ErrInvalidCredentials()

	if !Is(err, CodeInvalidCredentials) {
		t.Fatalf("expected code match")
	}
	if Is(err, "something_else") {
		t.Fatalf("unexpected code match")
	}
}

func TestIs_WrappedDomainError(t *testing.T) {
	err := fmt.Errorf("repo: %w", ErrEmailAlreadyExists())

	if !Is(err, CodeEmailExists) {
		t.Fatalf("expected code match through wrapping")
	}
	de, ok := As(err)
	if !ok || de.Kind != KindConflict {
		t.Fatalf("expected conflict domain error, got %+v", de)
	}
}

func TestIs_NonDomainError(t *testing.T) {
	err := errors.New("plain error")

	if Is(err, CodeInvalidCredentials) {
		t.Fatalf("should not match non-domain error")
	}
	if _, ok := As(err); ok {
		t.Fatalf("As should not match non-domain error")
	}
}

func TestAuthOutcomeMessages(t *testing.T) {
	cases := []struct {
		err  *Error
		code string
		msg  string
	}{
		{ErrDuplicateAccount(), CodeDuplicateAccount, "Email already in use."},
		{ErrInvalidCredentials(), CodeInvalidCredentials, "Invalid credentials."},
		{ErrTokenInvalid(), CodeInvalidToken, "Invalid token."},
		{ErrUserNotFound(), CodeUserNotFound, "User not found."},
	}

	for _, tc := range cases {
		if tc.err.Code != tc.code {
			t.Fatalf("expected code %q, got %q", tc.code, tc.err.Code)
		}
		if tc.err.Message != tc.msg {
			t.Fatalf("expected message %q, got %q", tc.msg, tc.err.Message)
		}
	}
}

func TestNotFoundErrors(t *testing.T) {
	for _, err := range []*Error{
		ErrUserNotFound(),
		ErrDeckNotFound(),
		ErrFlashcardNotFound(),
		ErrGrammarSetNotFound(),
		ErrGrammarNotFound(),
	} {
		if err.Kind != KindNotFound {
			t.Fatalf("unexpected kind for %s: %s", err.Code, err.Kind)
		}
	}
}

func TestInfrastructureErrors(t *testing.T) {
	root := errors.New("boom")
	err := ErrDBUnavailable(root)

	if err.Kind != KindInfrastructure {
		t.Fatalf("unexpected kind")
	}
	if !errors.Is(err, root) {
		t.Fatalf("expected wrapped cause")
	}
}
