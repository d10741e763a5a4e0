package patient

import (
	"testing"

	"github.com/google/uuid"

	"github.com/mindmanager/mindmanager_backend/internal/domain"
	"github.com/mindmanager/mindmanager_backend/internal/query"
)

func TestWriteAccess(t *testing.T) {
	subject := uuid.New()
	creator := uuid.New()
	other := uuid.New()

	// Registered by a psychologist on behalf of the subject.
	profile := &domain.PatientProfile{
		ID:              uuid.New(),
		UserID:          subject,
		CreatedBy:       domain.CreatedByPsychologist,
		CreatedByUserID: creator,
	}

	svc := &patientService{}

	tests := []struct {
		name    string
		actor   domain.Actor
		allowed bool
	}{
		{"admin", domain.Actor{UserID: other, Role: domain.RoleAdmin}, true},
		{"creator psychologist", domain.Actor{UserID: creator, Role: domain.RolePsychologist}, true},
		{"non-creator psychologist", domain.Actor{UserID: other, Role: domain.RolePsychologist}, true},
		{"client subject of psychologist-created profile", domain.Actor{UserID: subject, Role: domain.RoleClient}, false},
		{"unrelated client", domain.Actor{UserID: other, Role: domain.RoleClient}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.assertWriteAccess(profile, tt.actor)
			if tt.allowed && err != nil {
				t.Errorf("assertWriteAccess() = %v, want allowed", err)
			}
			if !tt.allowed && err == nil {
				t.Error("assertWriteAccess() allowed, want denied")
			}
		})
	}

	t.Run("client who registered their own profile", func(t *testing.T) {
		own := &domain.PatientProfile{
			ID:              uuid.New(),
			UserID:          subject,
			CreatedBy:       domain.CreatedByPatient,
			CreatedByUserID: subject,
		}
		err := svc.assertWriteAccess(own, domain.Actor{UserID: subject, Role: domain.RoleClient})
		if err != nil {
			t.Errorf("assertWriteAccess() = %v, want allowed", err)
		}
	})
}

func TestReadAccess(t *testing.T) {
	subject := uuid.New()
	creator := uuid.New()
	other := uuid.New()

	profile := &domain.PatientProfile{
		ID:              uuid.New(),
		UserID:          subject,
		CreatedBy:       domain.CreatedByPsychologist,
		CreatedByUserID: creator,
	}

	svc := &patientService{}

	tests := []struct {
		name    string
		actor   domain.Actor
		allowed bool
	}{
		{"admin", domain.Actor{UserID: other, Role: domain.RoleAdmin}, true},
		{"subject client reads own profile", domain.Actor{UserID: subject, Role: domain.RoleClient}, true},
		{"unrelated client", domain.Actor{UserID: other, Role: domain.RoleClient}, false},
		{"creator psychologist", domain.Actor{UserID: creator, Role: domain.RolePsychologist}, true},
		{"non-creator psychologist", domain.Actor{UserID: other, Role: domain.RolePsychologist}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.assertReadAccess(profile, tt.actor)
			if tt.allowed && err != nil {
				t.Errorf("assertReadAccess() = %v, want allowed", err)
			}
			if !tt.allowed && err == nil {
				t.Error("assertReadAccess() allowed, want denied")
			}
		})
	}
}

func TestNarrowFilters(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	t.Run("admin filters pass through untouched", func(t *testing.T) {
		f := NarrowFilters(domain.Actor{UserID: self, Role: domain.RoleAdmin}, query.PatientFilters{UserID: &other})
		if f.UserID == nil || *f.UserID != other {
			t.Fatalf("admin filter was modified: %v", f.UserID)
		}
		if f.CreatedByUserID != nil {
			t.Fatalf("admin got a creator pin: %v", f.CreatedByUserID)
		}
	})

	t.Run("client is pinned to own profile", func(t *testing.T) {
		f := NarrowFilters(domain.Actor{UserID: self, Role: domain.RoleClient}, query.PatientFilters{})
		if f.UserID == nil || *f.UserID != self {
			t.Fatalf("client filter not pinned: %v", f.UserID)
		}
	})

	t.Run("client-supplied conflicting user id is overwritten", func(t *testing.T) {
		f := NarrowFilters(domain.Actor{UserID: self, Role: domain.RoleClient}, query.PatientFilters{UserID: &other})
		if f.UserID == nil || *f.UserID != self {
			t.Fatalf("conflicting user id not overwritten: %v", f.UserID)
		}
	})

	t.Run("psychologist is pinned to own creations", func(t *testing.T) {
		gender := domain.GenderFemale
		f := NarrowFilters(
			domain.Actor{UserID: self, Role: domain.RolePsychologist},
			query.PatientFilters{Gender: &gender, CreatedByUserID: &other},
		)
		if f.CreatedByUserID == nil || *f.CreatedByUserID != self {
			t.Fatalf("creator filter not pinned: %v", f.CreatedByUserID)
		}
		if f.Gender == nil || *f.Gender != gender {
			t.Fatalf("unrelated filter did not survive: %v", f.Gender)
		}
	})
}
