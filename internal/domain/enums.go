package domain

// Role is the account-level role stored on the user record.
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleClient       Role = "Client"
	RolePsychologist Role = "Psychologist"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClient, RolePsychologist:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// CreatedBy records which side registered the patient profile.
type CreatedBy string

const (
	CreatedByPatient      CreatedBy = "Patient"
	CreatedByPsychologist CreatedBy = "Psychologist"
)

func (c CreatedBy) Valid() bool {
	return c == CreatedByPatient || c == CreatedByPsychologist
}

type PatientType string

const (
	PatientTypeStudent    PatientType = "Student"
	PatientTypeContractor PatientType = "Contractor"
	PatientTypeGuardian   PatientType = "Guardian"
	PatientTypeTeacher    PatientType = "Teacher"
)

func (p PatientType) Valid() bool {
	switch p {
	case PatientTypeStudent, PatientTypeContractor, PatientTypeGuardian, PatientTypeTeacher:
		return true
	}
	return false
}

type Education string

const (
	EducationMedio        Education = "Medio"
	EducationSuperior     Education = "Superior"
	EducationPosGraduacao Education = "PosGraduacao"
	EducationTecnico      Education = "Tecnico"
	EducationMestrado     Education = "Mestrado"
)

func (e Education) Valid() bool {
	switch e {
	case EducationMedio, EducationSuperior, EducationPosGraduacao, EducationTecnico, EducationMestrado:
		return true
	}
	return false
}

type Course string

const (
	CourseFisica        Course = "Fisica"
	CourseQuimica       Course = "Quimica"
	CourseAds           Course = "Ads"
	CourseEletrotecnica Course = "Eletrotecnica"
	CourseAdministracao Course = "Administracao"
	CourseInformatica   Course = "Informatica"
)

func (c Course) Valid() bool {
	switch c {
	case CourseFisica, CourseQuimica, CourseAds, CourseEletrotecnica, CourseAdministracao, CourseInformatica:
		return true
	}
	return false
}

// Status is the appointment lifecycle state. Canceled is terminal.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusFinalized Status = "Finalized"
	StatusCanceled  Status = "Canceled"
	StatusAbsence   Status = "Absence"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusFinalized, StatusCanceled, StatusAbsence:
		return true
	}
	return false
}

type AppointmentType string

const (
	TypeSession               AppointmentType = "Session"
	TypeCollectiveActivities  AppointmentType = "CollectiveActivities"
	TypeAdministrativeRecords AppointmentType = "AdministrativeRecords"
)

func (t AppointmentType) Valid() bool {
	switch t {
	case TypeSession, TypeCollectiveActivities, TypeAdministrativeRecords:
		return true
	}
	return false
}

type ActivityType string

const (
	ActivityGroup            ActivityType = "Group"
	ActivityLecture          ActivityType = "Lecture"
	ActivitySeminar          ActivityType = "Seminar"
	ActivityMeeting          ActivityType = "Meeting"
	ActivityDiscussionCircle ActivityType = "DiscussionCircle"
)

func (a ActivityType) Valid() bool {
	switch a {
	case ActivityGroup, ActivityLecture, ActivitySeminar, ActivityMeeting, ActivityDiscussionCircle:
		return true
	}
	return false
}

type Disorder string

const (
	DisorderDepression          Disorder = "Depression"
	DisorderGeneralizedAnxiety  Disorder = "GeneralizedAnxiety"
	DisorderBipolar             Disorder = "BipolarDisorder"
	DisorderBorderline          Disorder = "Borderline"
	DisorderSchizophrenia       Disorder = "Schizophrenia"
	DisorderOCD                 Disorder = "OCD"
	DisorderPTSD                Disorder = "PTSD"
	DisorderADHD                Disorder = "ADHD"
	DisorderAutism              Disorder = "Autism"
	DisorderEating              Disorder = "EatingDisorder"
	DisorderSubstanceAbuse      Disorder = "SubstanceAbuse"
	DisorderPersonality         Disorder = "PersonalityDisorder"
	DisorderPanic               Disorder = "PanicDisorder"
	DisorderPsychosis           Disorder = "Psychosis"
	DisorderOther               Disorder = "Other"
)

func (d Disorder) Valid() bool {
	switch d {
	case DisorderDepression, DisorderGeneralizedAnxiety, DisorderBipolar, DisorderBorderline,
		DisorderSchizophrenia, DisorderOCD, DisorderPTSD, DisorderADHD, DisorderAutism,
		DisorderEating, DisorderSubstanceAbuse, DisorderPersonality, DisorderPanic,
		DisorderPsychosis, DisorderOther:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyAvaliation           Difficulty = "Avaliation"
	DifficultyOrganizationStudies  Difficulty = "OrganizationOnStudies"
	DifficultyConcentration        Difficulty = "Concentration"
	DifficultyMemory               Difficulty = "Memory"
	DifficultyTdah                 Difficulty = "Tdah"
	DifficultyComunication         Difficulty = "Comunication"
	DifficultyRelationship         Difficulty = "Relationship"
	DifficultyOther                Difficulty = "Other"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyAvaliation, DifficultyOrganizationStudies, DifficultyConcentration,
		DifficultyMemory, DifficultyTdah, DifficultyComunication, DifficultyRelationship,
		DifficultyOther:
		return true
	}
	return false
}
