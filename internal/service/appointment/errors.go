package appointment

import "github.com/mindmanager/mindmanager_backend/internal/fault"

var (
	ErrAppointmentNotFound  = fault.NotFound("APPOINTMENT_NOT_FOUND", "appointment not found")
	ErrPatientNotFound      = fault.NotFound("PATIENT_PROFILE_NOT_FOUND", "patient profile not found")
	ErrPsychologistNotFound = fault.NotFound("PSYCHOLOGIST_NOT_FOUND", "psychologist profile not found")
	ErrAccessDenied         = fault.Forbidden("ACCESS_DENIED", "access denied to this appointment")
	ErrNoProfileResolved    = fault.Unauthorized("PROFILE_NOT_RESOLVED", "no profile resolved for the requester")
)
