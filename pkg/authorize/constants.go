package authorize

type Action string
type Resource string
type Role string

// ----------------------------
// Actions
// ----------------------------

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"

	// Lifecycle actions
	ActionCancel Action = "cancel"
)

const (
	WildcardAction Action = "*"
)

var KnownActions = map[Action]struct{}{
	ActionCreate: {}, ActionRead: {}, ActionUpdate: {}, ActionDelete: {}, ActionList: {},
	ActionCancel: {},
}

// ----------------------------
// Resources
// ----------------------------

const (
	WildcardResource Resource = "*"

	ResourceUser         Resource = "user"
	ResourcePatient      Resource = "patient"
	ResourcePsychologist Resource = "psychologist"
	ResourceAppointment  Resource = "appointment"
	ResourceSession      Resource = "session"
	ResourceAnamnesis    Resource = "anamnesis"
)

var KnownResources = map[Resource]struct{}{
	ResourceUser: {}, ResourcePatient: {}, ResourcePsychologist: {},
	ResourceAppointment: {}, ResourceSession: {}, ResourceAnamnesis: {},
}

// ----------------------------
// Roles
// ----------------------------
//
// These are the policy subjects. They mirror the user roles stored on the
// user record; route middleware maps the token role to one of these.

const (
	WildcardRole Role = "*"

	RoleAdmin        Role = "role:admin"
	RolePsychologist Role = "role:psychologist"
	RoleClient       Role = "role:client"
)

var KnownRoles = map[Role]struct{}{
	RoleAdmin:        {},
	RolePsychologist: {},
	RoleClient:       {},
}

// RoleFromUserRole maps the role string stored on the user record (and
// carried in token claims) to the Casbin role subject.
func RoleFromUserRole(userRole string) (Role, bool) {
	switch userRole {
	case "Admin":
		return RoleAdmin, true
	case "Psychologist":
		return RolePsychologist, true
	case "Client":
		return RoleClient, true
	default:
		return "", false
	}
}

// ----------------------------
// Casbin tuple helpers
// ----------------------------

type PolicyEffect string

const (
	EffectAllow PolicyEffect = "allow"
	EffectDeny  PolicyEffect = "deny"
)

// GroupSubject is the g.sub in Casbin: a concrete principal id (user id) or
// a role subject when checks are purely role-based.
type GroupSubject string

// Permission rows: p, role, resource, action, eft
type PermissionPolicy struct {
	Subject Role
	Object  Resource
	Action  Action
	Effect  PolicyEffect
}
