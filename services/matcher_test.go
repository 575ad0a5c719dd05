package services

import (
	"fmt"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"legal-shield/configuration"
	"legal-shield/models"
)

func newMockService(t *testing.T) (*EmergencyService, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return &EmergencyService{
		DB:             db,
		Now:            func() time.Time { return time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC) },
		MeetingBaseURL: "https://meet.test/room",
	}, mock
}

func TestUrgencyWeight(t *testing.T) {
	assert.Equal(t, 100, UrgencyWeight("critical"))
	assert.Equal(t, 70, UrgencyWeight("urgent"))
	assert.Equal(t, 70, UrgencyWeight("HIGH"))
	assert.Equal(t, 40, UrgencyWeight(" routine "))
	assert.Equal(t, configuration.DefaultUrgencyWeight, UrgencyWeight("whenever"))
	assert.Equal(t, configuration.DefaultUrgencyWeight, UrgencyWeight(""))
}

func TestIssueWeight(t *testing.T) {
	assert.Equal(t, 50, IssueWeight("court-martial"))
	assert.Equal(t, 30, IssueWeight("Article-15"))
	assert.Equal(t, 10, IssueWeight("finance"))
	assert.Equal(t, configuration.DefaultIssueWeight, IssueWeight("something else entirely"))
}

func TestScoreAttorney(t *testing.T) {
	req := &EmergencyRequest{
		IssueType:     "court-martial",
		UrgencyLevel:  "critical",
		Location:      "Fort Bragg",
		ContactMethod: "video",
	}

	t.Run("full match", func(t *testing.T) {
		a := &models.Attorney{
			Specialties:              "court-martial,security-clearance",
			Location:                 "Fort Bragg, NC",
			CurrentEmergencyBookings: 0,
		}
		// 100 + 50 + 20 specialty + 15 location + 10 contact + 100 capacity
		assert.Equal(t, 295, ScoreAttorney(a, req))
	})

	t.Run("capacity bonus shrinks with load", func(t *testing.T) {
		a := &models.Attorney{
			Specialties:              "court-martial",
			Location:                 "Fort Bragg, NC",
			CurrentEmergencyBookings: 3,
		}
		assert.Equal(t, 265, ScoreAttorney(a, req))
	})

	t.Run("capacity bonus floors at zero", func(t *testing.T) {
		a := &models.Attorney{CurrentEmergencyBookings: 15}
		// 100 + 50 + 10 contact; no negative capacity term
		assert.Equal(t, 160, ScoreAttorney(a, req))
	})

	t.Run("in-person needs a location match for the contact bonus", func(t *testing.T) {
		inPerson := &EmergencyRequest{
			IssueType:     "finance",
			UrgencyLevel:  "routine",
			Location:      "Norfolk",
			ContactMethod: "in-person",
		}
		near := &models.Attorney{Location: "Norfolk, VA", CurrentEmergencyBookings: 10}
		far := &models.Attorney{Location: "San Diego, CA", CurrentEmergencyBookings: 10}
		assert.Equal(t, ScoreAttorney(far, inPerson)+15+10, ScoreAttorney(near, inPerson))
	})

	t.Run("unknown categories use default weights", func(t *testing.T) {
		odd := &EmergencyRequest{IssueType: "parking ticket", UrgencyLevel: "someday", ContactMethod: "phone"}
		a := &models.Attorney{CurrentEmergencyBookings: 10}
		assert.Equal(t, 25+5+10, ScoreAttorney(a, odd))
	})
}

func attorneyRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"attorney_id", "name", "phone", "specialties", "location",
		"is_active", "available_for_emergency", "response_time_minutes",
		"current_emergency_bookings", "max_daily_emergency_bookings",
	})
}

func TestMatchAttorneysRanking(t *testing.T) {
	svc, mock := newMockService(t)

	req := &EmergencyRequest{
		IssueType:     "court-martial",
		UrgencyLevel:  "urgent",
		Location:      "Fort Hood",
		ContactMethod: "phone",
		PhoneNumber:   "+15550001111",
	}

	rows := attorneyRows().
		AddRow(1, "Busy Generalist", "+15550000001", "family-law", "Austin, TX", true, true, 30, 4, 5).
		AddRow(2, "Local Specialist", "+15550000002", "court-martial", "Fort Hood, TX", true, true, 20, 0, 5).
		AddRow(3, "Remote Specialist", "+15550000003", "court-martial", "Ramstein, DE", true, true, 10, 0, 5)

	mock.ExpectQuery(`SELECT \* FROM "attorneys"`).
		WithArgs(true, true).
		WillReturnRows(rows)

	scored, err := svc.MatchAttorneys(req)
	require.NoError(t, err)
	require.Len(t, scored, 3)

	assert.Equal(t, "Local Specialist", scored[0].Attorney.Name)
	assert.Equal(t, "Remote Specialist", scored[1].Attorney.Name)
	assert.Equal(t, "Busy Generalist", scored[2].Attorney.Name)
	assert.Greater(t, scored[0].Score, scored[1].Score)
	assert.Greater(t, scored[1].Score, scored[2].Score)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchAttorneysTieBreakOnResponseTime(t *testing.T) {
	svc, mock := newMockService(t)

	req := &EmergencyRequest{
		IssueType:     "article-15",
		UrgencyLevel:  "high",
		ContactMethod: "phone",
		PhoneNumber:   "+15550001111",
	}

	// Identical profiles except response time.
	rows := attorneyRows().
		AddRow(1, "Slower", "+15550000001", "article-15", "", true, true, 45, 1, 5).
		AddRow(2, "Faster", "+15550000002", "article-15", "", true, true, 15, 1, 5)

	mock.ExpectQuery(`SELECT \* FROM "attorneys"`).
		WithArgs(true, true).
		WillReturnRows(rows)

	scored, err := svc.MatchAttorneys(req)
	require.NoError(t, err)
	require.Len(t, scored, 2)
	assert.Equal(t, scored[0].Score, scored[1].Score)
	assert.Equal(t, "Faster", scored[0].Attorney.Name)
}

func TestMatchAttorneysCapsResults(t *testing.T) {
	svc, mock := newMockService(t)

	rows := attorneyRows()
	for i := 1; i <= configuration.MaxMatchResults+5; i++ {
		rows.AddRow(i, fmt.Sprintf("Attorney %d", i), "+15550000000", "finance", "", true, true, i, 0, 5)
	}

	mock.ExpectQuery(`SELECT \* FROM "attorneys"`).
		WithArgs(true, true).
		WillReturnRows(rows)

	scored, err := svc.MatchAttorneys(&EmergencyRequest{
		IssueType:     "finance",
		UrgencyLevel:  "routine",
		ContactMethod: "phone",
		PhoneNumber:   "+15550001111",
	})
	require.NoError(t, err)
	assert.Len(t, scored, configuration.MaxMatchResults)
}

func TestMatchAttorneysNoneAvailable(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT \* FROM "attorneys"`).
		WithArgs(true, true).
		WillReturnRows(attorneyRows())

	scored, err := svc.MatchAttorneys(&EmergencyRequest{
		IssueType:     "court-martial",
		UrgencyLevel:  "critical",
		ContactMethod: "phone",
		PhoneNumber:   "+15550001111",
	})
	assert.Nil(t, scored)
	assert.ErrorIs(t, err, ErrNoAvailableAttorneys)
}

func TestMatchAttorneysAvailabilityWindowFilter(t *testing.T) {
	svc, mock := newMockService(t)
	svc.UseAvailabilityWindows = true

	// Fixed clock: Tuesday 14:00.
	mock.ExpectQuery(`SELECT \* FROM "attorneys"`).
		WithArgs(true, true, 2, "14:00", "14:00").
		WillReturnRows(attorneyRows().
			AddRow(7, "On Duty", "+15550000007", "meb-peb", "", true, true, 20, 0, 5))

	scored, err := svc.MatchAttorneys(&EmergencyRequest{
		IssueType:     "meb-peb",
		UrgencyLevel:  "urgent",
		ContactMethod: "phone",
		PhoneNumber:   "+15550001111",
	})
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, "On Duty", scored[0].Attorney.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
