package user

import "github.com/mindmanager/mindmanager_backend/internal/fault"

var (
	ErrUserNotFound       = fault.NotFound("USER_NOT_FOUND", "user not found")
	ErrEmailAlreadyExists = fault.Business("EMAIL_ALREADY_EXISTS", "a user with this email already exists")
	ErrAccessDenied       = fault.Forbidden("ACCESS_DENIED", "access denied to this user record")
	ErrRoleChangeDenied   = fault.Forbidden("ROLE_CHANGE_DENIED", "only admins may change role or active status")
	ErrNoIdentity         = fault.Unauthorized("NO_IDENTITY", "no usable identity resolved for the request")
)
