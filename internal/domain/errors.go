package domain

import "github.com/mindmanager/mindmanager_backend/internal/fault"

// Invariant violations raised by entity constructors and mutators.
var (
	ErrAppointmentCanceled = fault.Business("APPOINTMENT_CANCELED", "appointment is canceled and cannot be modified")
	ErrInvalidStatus       = fault.Business("INVALID_STATUS", "invalid appointment status")
	ErrInvalidType         = fault.Business("INVALID_TYPE", "invalid appointment type")
	ErrInvalidActivityType = fault.Business("INVALID_ACTIVITY_TYPE", "invalid activity type")
	ErrNoPatientAssigned   = fault.Business("NO_PATIENT_ASSIGNED", "appointment has no patient assigned")
	ErrTextTooLong         = fault.Business("TEXT_TOO_LONG", "text field exceeds 255 characters")

	ErrFutureBirthDate    = fault.Business("FUTURE_BIRTH_DATE", "birth date cannot be in the future")
	ErrInvalidGender      = fault.Business("INVALID_GENDER", "invalid gender")
	ErrInvalidPatientType = fault.Business("INVALID_PATIENT_TYPE", "invalid patient type")
	ErrInvalidEducation   = fault.Business("INVALID_EDUCATION", "invalid education level")
	ErrInvalidCourse      = fault.Business("INVALID_COURSE", "invalid course")
	ErrDisorderNotFound   = fault.Business("DISORDER_NOT_FOUND", "disorder not present on patient")
	ErrDifficultyNotFound = fault.Business("DIFFICULTY_NOT_FOUND", "difficulty not present on patient")
	ErrInvalidDisorder    = fault.Business("INVALID_DISORDER", "unknown disorder")
	ErrInvalidDifficulty  = fault.Business("INVALID_DIFFICULTY", "unknown difficulty")

	ErrNameRequired     = fault.Business("NAME_REQUIRED", "name is required")
	ErrEmailRequired    = fault.Business("EMAIL_REQUIRED", "email is required")
	ErrInvalidRole      = fault.Business("INVALID_ROLE", "invalid user role")
	ErrCrpRequired      = fault.Business("CRP_REQUIRED", "crp is required")
	ErrSpecialtyRequired = fault.Business("SPECIALTY_REQUIRED", "specialty is required")

	ErrPsychologistRequired = fault.Business("PSYCHOLOGIST_REQUIRED", "psychologist id is required")
	ErrPatientRequired      = fault.Business("PATIENT_REQUIRED", "patient id is required")

	ErrNotOwner = fault.Forbidden("NOT_OWNER", "requester does not own this resource")
)
