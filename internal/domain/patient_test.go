package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestPatient(t *testing.T) *PatientProfile {
	t.Helper()

	p, err := NewPatientProfile(NewPatientParams{
		UserID:          uuid.New(),
		Registration:    "2023-001",
		Series:          "3A",
		BirthDate:       time.Date(2000, 5, 15, 0, 0, 0, 0, time.UTC),
		Gender:          GenderFemale,
		PatientType:     PatientTypeStudent,
		Education:       EducationMedio,
		Course:          CourseInformatica,
		CreatedBy:       CreatedByPatient,
		CreatedByUserID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("NewPatientProfile() error = %v", err)
	}
	return p
}

func TestNewPatientProfileValidation(t *testing.T) {
	t.Run("rejects future birth date", func(t *testing.T) {
		_, err := NewPatientProfile(NewPatientParams{
			UserID:      uuid.New(),
			BirthDate:   time.Now().Add(24 * time.Hour),
			Gender:      GenderMale,
			PatientType: PatientTypeStudent,
		})
		if !errors.Is(err, ErrFutureBirthDate) {
			t.Errorf("error = %v, want ErrFutureBirthDate", err)
		}
	})

	t.Run("rejects invalid gender", func(t *testing.T) {
		_, err := NewPatientProfile(NewPatientParams{
			UserID:      uuid.New(),
			BirthDate:   time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			Gender:      Gender("Bogus"),
			PatientType: PatientTypeStudent,
		})
		if !errors.Is(err, ErrInvalidGender) {
			t.Errorf("error = %v, want ErrInvalidGender", err)
		}
	})

	t.Run("defaults creator side to patient", func(t *testing.T) {
		p, err := NewPatientProfile(NewPatientParams{
			UserID:      uuid.New(),
			BirthDate:   time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			Gender:      GenderOther,
			PatientType: PatientTypeContractor,
		})
		if err != nil {
			t.Fatalf("NewPatientProfile() error = %v", err)
		}
		if p.CreatedBy != CreatedByPatient {
			t.Errorf("CreatedBy = %s, want Patient", p.CreatedBy)
		}
	})
}

func TestPatientAge(t *testing.T) {
	birth := time.Date(2000, 5, 15, 0, 0, 0, 0, time.UTC)
	p := &PatientProfile{BirthDate: birth}

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"day before birthday", time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC), 23},
		{"on birthday", time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), 24},
		{"day after birthday", time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC), 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Age(tt.at); got != tt.want {
				t.Errorf("Age() = %d, want %d", got, tt.want)
			}
		})
	}

	if !p.IsMinor(time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("IsMinor() should be true at age 14")
	}
	if p.IsMinor(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("IsMinor() should be false at age 23")
	}
}

func TestDisorderSet(t *testing.T) {
	p := newTestPatient(t)

	t.Run("add", func(t *testing.T) {
		if err := p.AddDisorder(DisorderADHD); err != nil {
			t.Fatalf("AddDisorder() error = %v", err)
		}
		if !p.HasDisorder(DisorderADHD) {
			t.Error("HasDisorder(ADHD) = false after add")
		}
	})

	t.Run("add duplicate is a no-op", func(t *testing.T) {
		if err := p.AddDisorder(DisorderADHD); err != nil {
			t.Fatalf("AddDisorder() duplicate error = %v", err)
		}
		if len(p.Disorders) != 1 {
			t.Errorf("len(Disorders) = %d, want 1", len(p.Disorders))
		}
	})

	t.Run("add unknown fails", func(t *testing.T) {
		if err := p.AddDisorder(Disorder("Bogus")); !errors.Is(err, ErrInvalidDisorder) {
			t.Errorf("error = %v, want ErrInvalidDisorder", err)
		}
	})

	t.Run("remove", func(t *testing.T) {
		if err := p.RemoveDisorder(DisorderADHD); err != nil {
			t.Fatalf("RemoveDisorder() error = %v", err)
		}
		if p.HasDisorder(DisorderADHD) {
			t.Error("HasDisorder(ADHD) = true after remove")
		}
	})

	t.Run("remove absent fails", func(t *testing.T) {
		if err := p.RemoveDisorder(DisorderPTSD); !errors.Is(err, ErrDisorderNotFound) {
			t.Errorf("error = %v, want ErrDisorderNotFound", err)
		}
	})

	t.Run("set replaces and dedupes", func(t *testing.T) {
		err := p.SetDisorders([]Disorder{DisorderDepression, DisorderOCD, DisorderDepression})
		if err != nil {
			t.Fatalf("SetDisorders() error = %v", err)
		}
		if len(p.Disorders) != 2 {
			t.Errorf("len(Disorders) = %d, want 2", len(p.Disorders))
		}
	})
}

func TestDifficultySet(t *testing.T) {
	p := newTestPatient(t)

	if err := p.AddDifficulty(DifficultyConcentration); err != nil {
		t.Fatalf("AddDifficulty() error = %v", err)
	}
	if !p.HasDifficulty(DifficultyConcentration) {
		t.Error("HasDifficulty() = false after add")
	}

	if err := p.RemoveDifficulty(DifficultyMemory); !errors.Is(err, ErrDifficultyNotFound) {
		t.Errorf("remove absent: error = %v, want ErrDifficultyNotFound", err)
	}

	if err := p.RemoveDifficulty(DifficultyConcentration); err != nil {
		t.Fatalf("RemoveDifficulty() error = %v", err)
	}
	if len(p.Difficulties) != 0 {
		t.Errorf("len(Difficulties) = %d, want 0", len(p.Difficulties))
	}
}

func TestUpdatePersonalInfo(t *testing.T) {
	p := newTestPatient(t)

	t.Run("rejects future birth date without mutating", func(t *testing.T) {
		before := p.BirthDate
		err := p.UpdatePersonalInfo("", "", time.Now().Add(time.Hour), "", "", "")
		if !errors.Is(err, ErrFutureBirthDate) {
			t.Errorf("error = %v, want ErrFutureBirthDate", err)
		}
		if !p.BirthDate.Equal(before) {
			t.Error("BirthDate mutated despite rejection")
		}
	})

	t.Run("rejects unknown enum values uniformly", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			call func() error
		}{
			{"gender", ErrInvalidGender, func() error {
				return p.UpdatePersonalInfo("", "", time.Time{}, Gender("Bogus"), "", "")
			}},
			{"education", ErrInvalidEducation, func() error {
				return p.UpdatePersonalInfo("", "", time.Time{}, "", Education("Bogus"), "")
			}},
			{"course", ErrInvalidCourse, func() error {
				return p.UpdatePersonalInfo("", "", time.Time{}, "", "", Course("Bogus"))
			}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if err := tt.call(); !errors.Is(err, tt.err) {
					t.Errorf("error = %v, want %v", err, tt.err)
				}
			})
		}
	})

	t.Run("blank fields leave values untouched", func(t *testing.T) {
		reg := p.Registration
		if err := p.UpdatePersonalInfo("", "4B", time.Time{}, "", "", ""); err != nil {
			t.Fatalf("UpdatePersonalInfo() error = %v", err)
		}
		if p.Registration != reg {
			t.Error("Registration changed on blank input")
		}
		if p.Series != "4B" {
			t.Errorf("Series = %q, want 4B", p.Series)
		}
	})
}
