package domain

import "github.com/google/uuid"

// Actor is the authenticated caller as seen by the services: the user id
// from the token plus the account role. Profile ids are resolved per
// operation, never carried in the token.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

func (a Actor) IsAdmin() bool        { return a.Role == RoleAdmin }
func (a Actor) IsClient() bool       { return a.Role == RoleClient }
func (a Actor) IsPsychologist() bool { return a.Role == RolePsychologist }
