package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestDomainError_IsMatchesDerivedCopies(t *testing.T) {
	cause := errors.New("connection reset")
	derived := ErrNotFound.WithCause(cause)

	if !errors.Is(derived, ErrNotFound) {
		t.Error("expected derived error to match sentinel")
	}
	if errors.Is(derived, ErrUnauthorized) {
		t.Error("expected derived error not to match a different sentinel")
	}
	if !errors.Is(derived, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
}

func TestDomainError_WrappedInFmt(t *testing.T) {
	wrapped := fmt.Errorf("toggle task: %w", ErrFieldMissing)

	de, ok := AsDomainError(wrapped)
	if !ok {
		t.Fatal("expected domain error")
	}
	if de.Code() != "FIELD_MISSING" || de.HTTPStatus() != http.StatusBadRequest {
		t.Errorf("unexpected domain error: %s %d", de.Code(), de.HTTPStatus())
	}
}

func TestDomainError_WithMessageKeepsCode(t *testing.T) {
	custom := ErrFieldLength.WithMessage("username must be between 4 and 20 characters")

	if custom.Message() != "username must be between 4 and 20 characters" {
		t.Errorf("unexpected message %q", custom.Message())
	}
	if !errors.Is(custom, ErrFieldLength) {
		t.Error("expected custom message error to match sentinel")
	}
	if ErrFieldLength.Message() == custom.Message() {
		t.Error("expected sentinel to stay untouched")
	}
}

func TestAsDomainError_PlainError(t *testing.T) {
	if _, ok := AsDomainError(errors.New("plain")); ok {
		t.Error("expected plain error not to be a domain error")
	}
	if IsDomainError(nil) {
		t.Error("expected nil not to be a domain error")
	}
}
