package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"not found", NotFound("USER_NOT_FOUND", "user not found"), KindNotFound},
		{"forbidden", Forbidden("NOT_OWNER", "not the owner"), KindForbidden},
		{"unauthorized", Unauthorized("NO_PROFILE", "no profile resolved"), KindUnauthorized},
		{"business", Business("APPOINTMENT_CANCELED", "appointment is canceled"), KindBusiness},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.kind {
				t.Errorf("KindOf() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestKindOfPlainError(t *testing.T) {
	err := errors.New("database exploded")
	if KindOf(err) != 0 {
		t.Error("plain errors must not map to any kind")
	}
	if CodeOf(err) != "" {
		t.Error("plain errors carry no code")
	}
}

func TestErrorsIsMatchesOnCodeAndKind(t *testing.T) {
	sentinel := NotFound("USER_NOT_FOUND", "user not found")

	// Same code and kind, different message: still matches
	other := NotFound("USER_NOT_FOUND", "different wording")
	if !errors.Is(other, sentinel) {
		t.Error("errors.Is should match on kind+code, ignoring message")
	}

	// Same code, different kind: no match
	if errors.Is(Business("USER_NOT_FOUND", "x"), sentinel) {
		t.Error("errors.Is should not match across kinds")
	}

	// Wrapped: still matches
	wrapped := fmt.Errorf("fetching user: %w", sentinel)
	if !errors.Is(wrapped, sentinel) {
		t.Error("errors.Is should unwrap")
	}
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should unwrap")
	}
}

func TestCodeDistinctFromMessage(t *testing.T) {
	e := Business("EMAIL_ALREADY_EXISTS", "a user with this email already exists")
	if e.Code == e.Message {
		t.Error("code and message must be distinct")
	}
	if CodeOf(e) != "EMAIL_ALREADY_EXISTS" {
		t.Errorf("CodeOf() = %q", CodeOf(e))
	}
}
