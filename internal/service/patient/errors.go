package patient

import "github.com/mindmanager/mindmanager_backend/internal/fault"

var (
	ErrUserNotFound      = fault.NotFound("USER_NOT_FOUND", "user not found")
	ErrPatientNotFound   = fault.NotFound("PATIENT_PROFILE_NOT_FOUND", "patient profile not found")
	ErrAlreadyHasProfile = fault.Business("USER_ALREADY_HAS_PROFILE", "user already has a patient profile")
	ErrAccessDenied      = fault.Forbidden("ACCESS_DENIED", "access denied to this patient record")
	ErrNoIdentity        = fault.Unauthorized("NO_IDENTITY", "no usable identity resolved for the request")
)
