package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestCanAccess(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name      string
		owner     uuid.UUID
		requester uuid.UUID
		role      Role
		want      bool
	}{
		{"admin accesses own", owner, owner, RoleAdmin, true},
		{"admin accesses others", owner, stranger, RoleAdmin, true},
		{"client accesses own", owner, owner, RoleClient, true},
		{"client denied others", owner, stranger, RoleClient, false},
		{"psychologist accesses own", owner, owner, RolePsychologist, true},
		{"psychologist denied others", owner, stranger, RolePsychologist, false},
		{"unknown role denied others", owner, stranger, Role("Bogus"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccess(tt.owner, tt.requester, tt.role); got != tt.want {
				t.Errorf("CanAccess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssertOwnership(t *testing.T) {
	owner := uuid.New()

	if err := AssertOwnership(owner, owner, RoleClient); err != nil {
		t.Errorf("owner access: error = %v", err)
	}

	err := AssertOwnership(owner, uuid.New(), RoleClient)
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("stranger access: error = %v, want ErrNotOwner", err)
	}
}
