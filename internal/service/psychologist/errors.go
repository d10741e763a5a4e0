package psychologist

import "github.com/mindmanager/mindmanager_backend/internal/fault"

var (
	ErrUserNotFound         = fault.NotFound("USER_NOT_FOUND", "user not found")
	ErrPsychologistNotFound = fault.NotFound("PSYCHOLOGIST_NOT_FOUND", "psychologist profile not found")
	ErrAlreadyHasProfile    = fault.Business("USER_ALREADY_HAS_PROFILE", "user already has a psychologist profile")
	ErrAccessDenied         = fault.Forbidden("ACCESS_DENIED", "access denied to this psychologist profile")
)
