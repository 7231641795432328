package reports

import (
	"context"
	"testing"

	"wasteline-backend/internal/domain"
	"wasteline-backend/internal/pkg/apperrors"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.DumpReport{}))
	return &Service{DB: db}
}

func createReport(t *testing.T, s *Service, userID uint) *domain.DumpReport {
	t.Helper()
	report, err := s.Create(context.Background(), CreateInput{
		UserID:    userID,
		Location:  "Riverbank, Jakarta",
		WasteType: "hazardous",
		Severity:  "dangerous",
		ImageURL:  "https://cdn.example.com/dump.jpg",
	})
	require.NoError(t, err)
	return report
}

func TestCreate_DefaultsToPending(t *testing.T) {
	s := setupService(t)
	report := createReport(t, s, 1)

	assert.Equal(t, domain.ReportPending, report.Status)
	assert.Equal(t, "HAZARDOUS", report.WasteType)
	assert.Equal(t, "DANGEROUS", report.Severity)
}

func TestCreate_Validation(t *testing.T) {
	s := setupService(t)

	_, err := s.Create(context.Background(), CreateInput{
		UserID: 1, Location: "X", WasteType: "unknown", Severity: "small", ImageURL: "u",
	})
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))

	_, err = s.Create(context.Background(), CreateInput{
		UserID: 1, Location: "X", WasteType: "plastic", Severity: "catastrophic", ImageURL: "u",
	})
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))
}

func TestListByUser(t *testing.T) {
	s := setupService(t)
	createReport(t, s, 1)
	mineToo := createReport(t, s, 1)
	createReport(t, s, 2)

	mine, err := s.ListByUser(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, mineToo.ID, mine[0].ID)

	_, err = s.UpdateStatus(context.Background(), mineToo.ID, 1, "accepted")
	require.NoError(t, err)

	accepted, err := s.ListByUser(context.Background(), 1, "ACCEPTED")
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, mineToo.ID, accepted[0].ID)
}

func TestUpdateStatus_OwnerOnly(t *testing.T) {
	s := setupService(t)
	report := createReport(t, s, 1)

	_, err := s.UpdateStatus(context.Background(), report.ID, 2, "REJECTED")
	require.Error(t, err)
	assert.Equal(t, apperrors.Forbidden, apperrors.KindOf(err))

	var fresh domain.DumpReport
	require.NoError(t, s.DB.First(&fresh, report.ID).Error)
	assert.Equal(t, domain.ReportPending, fresh.Status)
}

func TestUpdateStatus(t *testing.T) {
	s := setupService(t)
	report := createReport(t, s, 1)

	got, err := s.UpdateStatus(context.Background(), report.ID, 1, "rejected")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportRejected, got.Status)

	_, err = s.UpdateStatus(context.Background(), report.ID, 1, "resolved")
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))

	_, err = s.UpdateStatus(context.Background(), 999, 1, "ACCEPTED")
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}
