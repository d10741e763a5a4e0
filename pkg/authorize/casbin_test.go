package authorize

import (
	"context"
	"testing"
)

func createTestAuthorization(t *testing.T) IAuthorization {
	t.Helper()

	e, err := NewEnforcer()
	if err != nil {
		t.Fatalf("failed to create enforcer: %v", err)
	}

	auth, err := NewAuthorization(e)
	if err != nil {
		t.Fatalf("failed to create authorization: %v", err)
	}

	return auth
}

func createSeededAuthorization(t *testing.T) IAuthorization {
	t.Helper()

	auth := createTestAuthorization(t)
	if err := SeedDefaultPolicies(context.Background(), auth, nil); err != nil {
		t.Fatalf("failed to seed policies: %v", err)
	}
	return auth
}

func TestNewAuthorization(t *testing.T) {
	t.Run("returns error for nil enforcer", func(t *testing.T) {
		_, err := NewAuthorization(nil)
		if err == nil {
			t.Error("Expected error for nil enforcer")
		}
	})

	t.Run("succeeds with valid enforcer", func(t *testing.T) {
		auth := createTestAuthorization(t)
		if auth == nil {
			t.Error("Expected non-nil authorization")
		}
	})
}

func TestEnforceValidation(t *testing.T) {
	auth := createTestAuthorization(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		subject  GroupSubject
		resource Resource
		action   Action
	}{
		{"empty subject", "", ResourcePatient, ActionRead},
		{"unknown resource", GroupSubject(RoleAdmin), Resource("unknown"), ActionRead},
		{"unknown action", GroupSubject(RoleAdmin), ResourcePatient, Action("unknown")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := auth.Enforce(ctx, tt.subject, tt.resource, tt.action); err == nil {
				t.Error("Expected error but got nil")
			}
		})
	}
}

func TestRoleGateMatrix(t *testing.T) {
	auth := createSeededAuthorization(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		role     Role
		resource Resource
		action   Action
		want     bool
	}{
		{"admin can do anything", RoleAdmin, ResourceAnamnesis, ActionDelete, true},
		{"admin can manage users", RoleAdmin, ResourceUser, ActionDelete, true},

		{"psychologist creates appointments", RolePsychologist, ResourceAppointment, ActionCreate, true},
		{"psychologist creates sessions", RolePsychologist, ResourceSession, ActionCreate, true},
		{"psychologist creates anamnesis", RolePsychologist, ResourceAnamnesis, ActionCreate, true},
		{"psychologist deletes patients", RolePsychologist, ResourcePatient, ActionDelete, true},

		{"client cannot create appointments", RoleClient, ResourceAppointment, ActionCreate, false},
		{"client cannot create sessions", RoleClient, ResourceSession, ActionCreate, false},
		{"client cannot touch anamnesis", RoleClient, ResourceAnamnesis, ActionRead, false},
		{"client reads own appointments", RoleClient, ResourceAppointment, ActionRead, true},
		{"client cancels appointments", RoleClient, ResourceAppointment, ActionCancel, true},
		{"client creates own patient profile", RoleClient, ResourcePatient, ActionCreate, true},
		{"client cannot delete patients", RoleClient, ResourcePatient, ActionDelete, false},
		{"client browses psychologists", RoleClient, ResourcePsychologist, ActionList, true},

		// Role-wide anamnesis gate: the check carries no patient linkage,
		// so any psychologist passes for any record.
		{"any psychologist passes anamnesis gate", RolePsychologist, ResourceAnamnesis, ActionUpdate, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.Enforce(ctx, GroupSubject(tt.role), tt.resource, tt.action)
			if err != nil {
				t.Fatalf("Enforce() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Enforce(%s, %s, %s) = %v, want %v", tt.role, tt.resource, tt.action, got, tt.want)
			}
		})
	}
}

func TestMustEnforce(t *testing.T) {
	auth := createSeededAuthorization(t)
	ctx := context.Background()

	t.Run("returns nil when allowed", func(t *testing.T) {
		err := auth.MustEnforce(ctx, GroupSubject(RolePsychologist), ResourcePatient, ActionCreate)
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
	})

	t.Run("returns ErrForbidden when denied", func(t *testing.T) {
		err := auth.MustEnforce(ctx, GroupSubject(RoleClient), ResourceAnamnesis, ActionRead)
		if err != ErrForbidden {
			t.Errorf("Expected ErrForbidden, got %v", err)
		}
	})
}

func TestRoleManagement(t *testing.T) {
	auth := createSeededAuthorization(t)
	ctx := context.Background()

	userID := GroupSubject("user-789")

	t.Run("add and get roles", func(t *testing.T) {
		added, err := auth.AddRoleForUser(ctx, userID, RolePsychologist)
		if err != nil {
			t.Errorf("Failed to add role: %v", err)
		}
		if !added {
			t.Error("Expected role to be added")
		}

		roles, err := auth.GetRolesForUser(ctx, userID)
		if err != nil {
			t.Errorf("Failed to get roles: %v", err)
		}
		if len(roles) != 1 || roles[0] != RolePsychologist {
			t.Errorf("GetRolesForUser() = %v, want [%s]", roles, RolePsychologist)
		}

		// The bound role's permissions apply to the concrete subject
		ok, err := auth.Enforce(ctx, userID, ResourceAppointment, ActionCreate)
		if err != nil {
			t.Fatalf("Enforce() error = %v", err)
		}
		if !ok {
			t.Error("user with psychologist role should create appointments")
		}
	})

	t.Run("remove role", func(t *testing.T) {
		removed, err := auth.RemoveRoleForUser(ctx, userID, RolePsychologist)
		if err != nil {
			t.Errorf("Failed to remove role: %v", err)
		}
		if !removed {
			t.Error("Expected role to be removed")
		}

		roles, _ := auth.GetRolesForUser(ctx, userID)
		if len(roles) != 0 {
			t.Errorf("Expected 0 roles after removal, got %d", len(roles))
		}
	})

	t.Run("error for invalid role", func(t *testing.T) {
		if _, err := auth.AddRoleForUser(ctx, userID, Role("invalid-role")); err == nil {
			t.Error("Expected error for invalid role")
		}
	})
}

func TestPermissionManagement(t *testing.T) {
	auth := createTestAuthorization(t)
	ctx := context.Background()

	t.Run("add and remove permission", func(t *testing.T) {
		added, err := auth.AddPermission(ctx, RoleClient, ResourceSession, ActionRead, EffectAllow)
		if err != nil {
			t.Errorf("Failed to add permission: %v", err)
		}
		if !added {
			t.Error("Expected permission to be added")
		}

		removed, err := auth.RemovePermission(ctx, RoleClient, ResourceSession, ActionRead, EffectAllow)
		if err != nil {
			t.Errorf("Failed to remove permission: %v", err)
		}
		if !removed {
			t.Error("Expected permission to be removed")
		}
	})

	t.Run("error for invalid effect", func(t *testing.T) {
		_, err := auth.AddPermission(ctx, RoleAdmin, ResourceUser, ActionRead, PolicyEffect("invalid"))
		if err == nil {
			t.Error("Expected error for invalid effect")
		}
	})
}

func TestRoleFromUserRole(t *testing.T) {
	tests := []struct {
		in     string
		want   Role
		wantOK bool
	}{
		{"Admin", RoleAdmin, true},
		{"Psychologist", RolePsychologist, true},
		{"Client", RoleClient, true},
		{"admin", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := RoleFromUserRole(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("RoleFromUserRole(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
