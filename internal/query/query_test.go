package query

import (
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mindmanager/mindmanager_backend/internal/domain"
)

// newDryRunDB builds a GORM session over a sqlmock connection. DryRun only
// generates SQL, so the mock never sees a query.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn, PreferSimpleProtocol: true}), &gorm.Config{
		DryRun: true,
		Logger: gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	return db
}

func buildAppointmentSQL(t *testing.T, f AppointmentFilters, s Sort, p Page) (string, []interface{}) {
	t.Helper()

	db := newDryRunDB(t)
	tx := f.Apply(db.Model(&domain.Appointment{}))
	tx = f.ApplySort(tx, s)
	tx = p.Apply(tx)

	var out []domain.Appointment
	stmt := tx.Find(&out).Statement
	return stmt.SQL.String(), stmt.Vars
}

func TestAppointmentFilters(t *testing.T) {
	psyID := uuid.New()
	patID := uuid.New()
	status := domain.StatusPending
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	f := AppointmentFilters{
		PsychologistID: &psyID,
		PatientID:      &patID,
		Status:         &status,
		StartDate:      &start,
		EndDate:        &end,
	}

	sql, vars := buildAppointmentSQL(t, f, Sort{}, Page{})

	for _, frag := range []string{
		"psychologist_id = $",
		"patient_id = $",
		"status = $",
		"appointment_date >= $",
		"appointment_date <= $",
	} {
		if !strings.Contains(sql, frag) {
			t.Errorf("SQL missing %q: %s", frag, sql)
		}
	}

	found := false
	for _, v := range vars {
		if v == psyID {
			found = true
		}
	}
	if !found {
		t.Errorf("psychologist id not bound in vars: %v", vars)
	}
}

func TestAppointmentFiltersSkipNil(t *testing.T) {
	sql, _ := buildAppointmentSQL(t, AppointmentFilters{}, Sort{}, Page{})

	if strings.Contains(sql, "WHERE") {
		t.Errorf("empty filters should produce no WHERE clause: %s", sql)
	}
}

func TestSortDefaultsAndTieBreak(t *testing.T) {
	tests := []struct {
		name string
		sort Sort
		want string
	}{
		{"default natural date", Sort{}, "appointment_date ASC"},
		{"unknown key falls back", Sort{By: "bogus"}, "appointment_date ASC"},
		{"case-insensitive key", Sort{By: "AppointmentDate"}, "appointment_date ASC"},
		{"status descending", Sort{By: "status", Descending: true}, "status DESC"},
		{"created date alias", Sort{By: "CreatedDate"}, "created_at ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := buildAppointmentSQL(t, AppointmentFilters{}, tt.sort, Page{})
			if !strings.Contains(sql, "ORDER BY "+tt.want) {
				t.Errorf("SQL missing ORDER BY %q: %s", tt.want, sql)
			}
			// pk tie-break keeps pagination stable across equal values
			if !strings.Contains(sql, "id ASC") {
				t.Errorf("SQL missing id tie-break: %s", sql)
			}
		})
	}
}

func TestPaginationClauses(t *testing.T) {
	t.Run("page 3 limit 5 offsets by 10", func(t *testing.T) {
		sql, vars := buildAppointmentSQL(t, AppointmentFilters{}, Sort{}, Page{Page: 3, Limit: 5})
		if !strings.Contains(sql, "LIMIT") || !strings.Contains(sql, "OFFSET") {
			t.Fatalf("SQL missing LIMIT/OFFSET: %s", sql)
		}
		gotLimit, gotOffset := false, false
		for _, v := range vars {
			if v == 5 {
				gotLimit = true
			}
			if v == 10 {
				gotOffset = true
			}
		}
		if !gotLimit || !gotOffset {
			t.Errorf("vars missing limit/offset values: %v", vars)
		}
	})

	t.Run("first page has no offset", func(t *testing.T) {
		sql, _ := buildAppointmentSQL(t, AppointmentFilters{}, Sort{}, Page{Page: 1, Limit: 10})
		if strings.Contains(sql, "OFFSET") {
			t.Errorf("page 1 should not emit OFFSET: %s", sql)
		}
	})
}

func TestPageNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        Page
		wantPage  int
		wantLimit int
	}{
		{"zero values", Page{}, 1, 10},
		{"negative values", Page{Page: -2, Limit: -5}, 1, 10},
		{"valid values kept", Page{Page: 4, Limit: 25}, 4, 25},
		{"no upper bound on limit", Page{Page: 1, Limit: 100000}, 1, 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.in.Normalize()
			if n.Page != tt.wantPage || n.Limit != tt.wantLimit {
				t.Errorf("Normalize() = %+v, want page %d limit %d", n, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{"exact division", 20, 10, 2},
		{"remainder rounds up", 21, 10, 3},
		{"below one page", 3, 10, 1},
		{"zero rows", 0, 10, 0},
		{"limit one", 7, 1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Page{Page: 1, Limit: tt.limit}
			if got := p.TotalPages(tt.total); got != tt.want {
				t.Errorf("TotalPages(%d) = %d, want %d", tt.total, got, tt.want)
			}
		})
	}
}

func TestNewResult(t *testing.T) {
	data := []int{1, 2, 3}
	r := NewResult(data, 23, Page{Page: 2, Limit: 10})

	if r.Total != 23 || r.Page != 2 || r.Limit != 10 || r.TotalPages != 3 {
		t.Errorf("NewResult() = %+v", r)
	}
	if len(r.Data) != 3 {
		t.Errorf("len(Data) = %d, want 3", len(r.Data))
	}
}

func TestPatientFilters(t *testing.T) {
	db := newDryRunDB(t)

	creator := uuid.New()
	gender := domain.GenderFemale
	f := PatientFilters{
		CreatedByUserID: &creator,
		Gender:          &gender,
	}

	var out []domain.PatientProfile
	stmt := f.Apply(db.Model(&domain.PatientProfile{})).Find(&out).Statement
	sql := stmt.SQL.String()

	if !strings.Contains(sql, "created_by_user_id = $") {
		t.Errorf("SQL missing creator constraint: %s", sql)
	}
	if !strings.Contains(sql, "gender = $") {
		t.Errorf("SQL missing gender constraint: %s", sql)
	}
}

func TestSessionFilters(t *testing.T) {
	db := newDryRunDB(t)

	patID := uuid.New()
	f := SessionFilters{PatientID: &patID}

	var out []domain.Session
	stmt := f.ApplySort(f.Apply(db.Model(&domain.Session{})), Sort{}).Find(&out).Statement
	sql := stmt.SQL.String()

	if !strings.Contains(sql, "patient_id = $") {
		t.Errorf("SQL missing patient constraint: %s", sql)
	}
	if !strings.Contains(sql, "ORDER BY session_date ASC") {
		t.Errorf("SQL missing natural date sort: %s", sql)
	}
}

func TestUserFilters(t *testing.T) {
	db := newDryRunDB(t)

	name := "maria"
	role := domain.RoleClient
	f := UserFilters{Name: &name, Role: &role}

	var out []domain.User
	stmt := f.Apply(db.Model(&domain.User{})).Find(&out).Statement
	sql := stmt.SQL.String()

	if !strings.Contains(sql, "name ILIKE $") {
		t.Errorf("SQL missing name constraint: %s", sql)
	}
	if !strings.Contains(sql, "role = $") {
		t.Errorf("SQL missing role constraint: %s", sql)
	}

	foundPattern := false
	for _, v := range stmt.Vars {
		if v == "%maria%" {
			foundPattern = true
		}
	}
	if !foundPattern {
		t.Errorf("substring pattern not bound: %v", stmt.Vars)
	}
}
