package session

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mindmanager/mindmanager_backend/internal/domain"
	"github.com/mindmanager/mindmanager_backend/internal/fault"
	"github.com/mindmanager/mindmanager_backend/internal/query"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn, PreferSimpleProtocol: true}), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	return db, mock
}

func TestNarrowFilters(t *testing.T) {
	ctx := context.Background()

	t.Run("psychologist is pinned to own profile id", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := &sessionService{db: db}

		userID := uuid.New()
		profileID := uuid.New()
		other := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM "psychologist_profiles" WHERE user_id =`).
			WithArgs(userID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).
				AddRow(profileID.String(), userID.String()))

		f, err := svc.narrowFilters(ctx, db, domain.Actor{UserID: userID, Role: domain.RolePsychologist},
			query.SessionFilters{PsychologistID: &other})
		if err != nil {
			t.Fatalf("narrowFilters() error = %v", err)
		}
		if f.PsychologistID == nil || *f.PsychologistID != profileID {
			t.Errorf("PsychologistID = %v, want resolved profile %v", f.PsychologistID, profileID)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations: %v", err)
		}
	})

	t.Run("client is pinned to own patient profile id", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := &sessionService{db: db}

		userID := uuid.New()
		profileID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM "patient_profiles" WHERE user_id =`).
			WithArgs(userID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).
				AddRow(profileID.String(), userID.String()))

		f, err := svc.narrowFilters(ctx, db, domain.Actor{UserID: userID, Role: domain.RoleClient},
			query.SessionFilters{})
		if err != nil {
			t.Fatalf("narrowFilters() error = %v", err)
		}
		if f.PatientID == nil || *f.PatientID != profileID {
			t.Errorf("PatientID = %v, want resolved profile %v", f.PatientID, profileID)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations: %v", err)
		}
	})

	t.Run("admin filters pass through without a lookup", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := &sessionService{db: db}

		other := uuid.New()
		f, err := svc.narrowFilters(ctx, db, domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin},
			query.SessionFilters{PatientID: &other})
		if err != nil {
			t.Fatalf("narrowFilters() error = %v", err)
		}
		if f.PatientID == nil || *f.PatientID != other {
			t.Errorf("admin filter was modified: %v", f.PatientID)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unexpected queries: %v", err)
		}
	})

	t.Run("unresolvable profile is unauthorized", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := &sessionService{db: db}

		userID := uuid.New()
		mock.ExpectQuery(`SELECT (.+) FROM "patient_profiles" WHERE user_id =`).
			WithArgs(userID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}))

		_, err := svc.narrowFilters(ctx, db, domain.Actor{UserID: userID, Role: domain.RoleClient},
			query.SessionFilters{})
		if !errors.Is(err, ErrNoProfileResolved) {
			t.Fatalf("error = %v, want ErrNoProfileResolved", err)
		}
		if !fault.IsUnauthorized(err) {
			t.Errorf("kind = %v, want unauthorized", fault.KindOf(err))
		}
		if code := fault.CodeOf(err); code != "PROFILE_NOT_RESOLVED" {
			t.Errorf("code = %q, want PROFILE_NOT_RESOLVED", code)
		}
	})
}
