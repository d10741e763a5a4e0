package authorize

import (
	"context"
	"log/slog"
)

// SeedDefaultPolicies sets up the baseline RBAC policies for the system.
// The grants mirror the role gates on the HTTP routes; ownership checks on
// individual records happen in the services, not here. In particular the
// anamnesis grant is role-wide: any psychologist passes the gate regardless
// of which patient the record belongs to.
func SeedDefaultPolicies(ctx context.Context, auth IAuthorization, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	policies := []PermissionPolicy{
		// Admin: full access
		{RoleAdmin, WildcardResource, WildcardAction, EffectAllow},

		// Psychologist: owns the clinical workflow
		{RolePsychologist, ResourceUser, ActionRead, EffectAllow},
		{RolePsychologist, ResourceUser, ActionUpdate, EffectAllow},
		{RolePsychologist, ResourceUser, ActionDelete, EffectAllow},
		{RolePsychologist, ResourcePsychologist, ActionCreate, EffectAllow},
		{RolePsychologist, ResourcePsychologist, ActionRead, EffectAllow},
		{RolePsychologist, ResourcePsychologist, ActionUpdate, EffectAllow},
		{RolePsychologist, ResourcePatient, ActionCreate, EffectAllow},
		{RolePsychologist, ResourcePatient, ActionRead, EffectAllow},
		{RolePsychologist, ResourcePatient, ActionUpdate, EffectAllow},
		{RolePsychologist, ResourcePatient, ActionDelete, EffectAllow},
		{RolePsychologist, ResourcePatient, ActionList, EffectAllow},
		{RolePsychologist, ResourceAppointment, ActionCreate, EffectAllow},
		{RolePsychologist, ResourceAppointment, ActionRead, EffectAllow},
		{RolePsychologist, ResourceAppointment, ActionUpdate, EffectAllow},
		{RolePsychologist, ResourceAppointment, ActionDelete, EffectAllow},
		{RolePsychologist, ResourceAppointment, ActionList, EffectAllow},
		{RolePsychologist, ResourceAppointment, ActionCancel, EffectAllow},
		{RolePsychologist, ResourceSession, ActionCreate, EffectAllow},
		{RolePsychologist, ResourceSession, ActionRead, EffectAllow},
		{RolePsychologist, ResourceSession, ActionUpdate, EffectAllow},
		{RolePsychologist, ResourceSession, ActionDelete, EffectAllow},
		{RolePsychologist, ResourceSession, ActionList, EffectAllow},
		{RolePsychologist, ResourceAnamnesis, ActionCreate, EffectAllow},
		{RolePsychologist, ResourceAnamnesis, ActionRead, EffectAllow},
		{RolePsychologist, ResourceAnamnesis, ActionUpdate, EffectAllow},
		{RolePsychologist, ResourceAnamnesis, ActionDelete, EffectAllow},

		// Client: own account, own profile, read-only clinical data
		{RoleClient, ResourceUser, ActionRead, EffectAllow},
		{RoleClient, ResourceUser, ActionUpdate, EffectAllow},
		{RoleClient, ResourceUser, ActionDelete, EffectAllow},
		{RoleClient, ResourcePatient, ActionCreate, EffectAllow},
		{RoleClient, ResourcePatient, ActionRead, EffectAllow},
		{RoleClient, ResourcePatient, ActionUpdate, EffectAllow},
		{RoleClient, ResourcePatient, ActionList, EffectAllow},
		{RoleClient, ResourcePsychologist, ActionRead, EffectAllow},
		{RoleClient, ResourcePsychologist, ActionList, EffectAllow},
		{RoleClient, ResourceAppointment, ActionRead, EffectAllow},
		{RoleClient, ResourceAppointment, ActionList, EffectAllow},
		{RoleClient, ResourceAppointment, ActionCancel, EffectAllow},
		{RoleClient, ResourceSession, ActionRead, EffectAllow},
		{RoleClient, ResourceSession, ActionList, EffectAllow},
	}

	for _, p := range policies {
		added, err := auth.AddPermission(ctx, p.Subject, p.Object, p.Action, p.Effect)
		if err != nil {
			logger.Error("failed to add policy", "policy", p, "error", err)
			return err
		}
		if added {
			logger.Debug("added policy", "role", p.Subject, "resource", p.Object, "action", p.Action)
		}
	}

	logger.Info("seeded default RBAC policies", "count", len(policies))
	return nil
}

// NewSeededAuthorization builds the in-memory enforcer and loads the
// default role policies. This is the constructor the fx container uses.
func NewSeededAuthorization(logger *slog.Logger) (IAuthorization, error) {
	e, err := NewEnforcer()
	if err != nil {
		return nil, err
	}

	auth, err := NewAuthorization(e)
	if err != nil {
		return nil, err
	}

	if err := SeedDefaultPolicies(context.Background(), auth, logger); err != nil {
		return nil, err
	}

	return auth, nil
}
