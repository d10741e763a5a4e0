package anamnesis

import "github.com/mindmanager/mindmanager_backend/internal/fault"

var (
	ErrAnamnesisNotFound = fault.NotFound("ANAMNESIS_NOT_FOUND", "anamnesis not found")
	ErrPatientNotFound   = fault.NotFound("PATIENT_PROFILE_NOT_FOUND", "patient profile not found")
	ErrAlreadyExists     = fault.Business("ANAMNESIS_ALREADY_EXISTS", "patient already has an anamnesis record")
)
