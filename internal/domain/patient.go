package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PatientProfile is the clinical identity of a patient. Disorders and
// difficulties behave as sets: adding an existing element is a no-op,
// removing a missing one is a Business failure.
type PatientProfile struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Registration    string         `gorm:"size:64"`
	Series          string         `gorm:"size:64"`
	BirthDate       time.Time      `gorm:"not null"`
	Gender          Gender         `gorm:"size:16;not null"`
	PatientType     PatientType    `gorm:"size:32;not null"`
	Education       Education      `gorm:"size:32"`
	Course          Course         `gorm:"size:32"`
	CreatedBy       CreatedBy      `gorm:"size:16;not null"`
	CreatedByUserID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Disorders       pq.StringArray `gorm:"type:text[]"`
	Difficulties    pq.StringArray `gorm:"type:text[]"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type NewPatientParams struct {
	UserID          uuid.UUID
	Registration    string
	Series          string
	BirthDate       time.Time
	Gender          Gender
	PatientType     PatientType
	Education       Education
	Course          Course
	CreatedBy       CreatedBy
	CreatedByUserID uuid.UUID
}

func NewPatientProfile(p NewPatientParams) (*PatientProfile, error) {
	if p.BirthDate.After(time.Now()) {
		return nil, ErrFutureBirthDate
	}
	if !p.Gender.Valid() {
		return nil, ErrInvalidGender
	}
	if !p.PatientType.Valid() {
		return nil, ErrInvalidPatientType
	}
	if p.Education != "" && !p.Education.Valid() {
		return nil, ErrInvalidEducation
	}
	if p.Course != "" && !p.Course.Valid() {
		return nil, ErrInvalidCourse
	}
	if !p.CreatedBy.Valid() {
		p.CreatedBy = CreatedByPatient
	}

	now := time.Now().UTC()
	return &PatientProfile{
		ID:              uuid.New(),
		UserID:          p.UserID,
		Registration:    strings.TrimSpace(p.Registration),
		Series:          strings.TrimSpace(p.Series),
		BirthDate:       p.BirthDate,
		Gender:          p.Gender,
		PatientType:     p.PatientType,
		Education:       p.Education,
		Course:          p.Course,
		CreatedBy:       p.CreatedBy,
		CreatedByUserID: p.CreatedByUserID,
		Disorders:       pq.StringArray{},
		Difficulties:    pq.StringArray{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Age derives the patient's age in whole years at the given instant.
func (p *PatientProfile) Age(at time.Time) int {
	years := at.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	return years
}

func (p *PatientProfile) IsMinor(at time.Time) bool {
	return p.Age(at) < 18
}

// UpdatePersonalInfo applies non-zero fields only. A future birth date is
// rejected without touching the record.
func (p *PatientProfile) UpdatePersonalInfo(registration, series string, birthDate time.Time, gender Gender, education Education, course Course) error {
	if !birthDate.IsZero() {
		if birthDate.After(time.Now()) {
			return ErrFutureBirthDate
		}
		p.BirthDate = birthDate
	}
	if gender != "" {
		if !gender.Valid() {
			return ErrInvalidGender
		}
		p.Gender = gender
	}
	if registration = strings.TrimSpace(registration); registration != "" {
		p.Registration = registration
	}
	if series = strings.TrimSpace(series); series != "" {
		p.Series = series
	}
	if education != "" {
		if !education.Valid() {
			return ErrInvalidEducation
		}
		p.Education = education
	}
	if course != "" {
		if !course.Valid() {
			return ErrInvalidCourse
		}
		p.Course = course
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (p *PatientProfile) ChangePatientType(t PatientType) error {
	if !t.Valid() {
		return ErrInvalidPatientType
	}
	p.PatientType = t
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// ---- disorder set ----

func (p *PatientProfile) HasDisorder(d Disorder) bool {
	for _, s := range p.Disorders {
		if s == string(d) {
			return true
		}
	}
	return false
}

// AddDisorder is a no-op when the disorder is already present.
func (p *PatientProfile) AddDisorder(d Disorder) error {
	if !d.Valid() {
		return ErrInvalidDisorder
	}
	if p.HasDisorder(d) {
		return nil
	}
	p.Disorders = append(p.Disorders, string(d))
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveDisorder fails when the disorder is not present.
func (p *PatientProfile) RemoveDisorder(d Disorder) error {
	for i, s := range p.Disorders {
		if s == string(d) {
			p.Disorders = append(p.Disorders[:i], p.Disorders[i+1:]...)
			p.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrDisorderNotFound
}

// SetDisorders replaces the whole set, validating every element first.
func (p *PatientProfile) SetDisorders(ds []Disorder) error {
	out := make(pq.StringArray, 0, len(ds))
	seen := make(map[Disorder]struct{}, len(ds))
	for _, d := range ds {
		if !d.Valid() {
			return ErrInvalidDisorder
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, string(d))
	}
	p.Disorders = out
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// ---- difficulty set ----

func (p *PatientProfile) HasDifficulty(d Difficulty) bool {
	for _, s := range p.Difficulties {
		if s == string(d) {
			return true
		}
	}
	return false
}

func (p *PatientProfile) AddDifficulty(d Difficulty) error {
	if !d.Valid() {
		return ErrInvalidDifficulty
	}
	if p.HasDifficulty(d) {
		return nil
	}
	p.Difficulties = append(p.Difficulties, string(d))
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (p *PatientProfile) RemoveDifficulty(d Difficulty) error {
	for i, s := range p.Difficulties {
		if s == string(d) {
			p.Difficulties = append(p.Difficulties[:i], p.Difficulties[i+1:]...)
			p.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrDifficultyNotFound
}

func (p *PatientProfile) SetDifficulties(ds []Difficulty) error {
	out := make(pq.StringArray, 0, len(ds))
	seen := make(map[Difficulty]struct{}, len(ds))
	for _, d := range ds {
		if !d.Valid() {
			return ErrInvalidDifficulty
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, string(d))
	}
	p.Difficulties = out
	p.UpdatedAt = time.Now().UTC()
	return nil
}
