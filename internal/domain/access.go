package domain

import "github.com/google/uuid"

// CanAccess is the generic ownership rule: admins may access everything,
// everyone else only what they own. Both ids must already be resolved to
// the same id space (profile ids for clinical records, user ids for the
// user self-service check) before calling.
func CanAccess(ownerID, requesterID uuid.UUID, role Role) bool {
	if role == RoleAdmin {
		return true
	}
	return ownerID == requesterID
}

// AssertOwnership turns a failed access check into a Forbidden failure.
func AssertOwnership(ownerID, requesterID uuid.UUID, role Role) error {
	if !CanAccess(ownerID, requesterID, role) {
		return ErrNotOwner
	}
	return nil
}
