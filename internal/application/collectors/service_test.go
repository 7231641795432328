package collectors

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
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.CollectorProfile{}))
	return &Service{DB: db}
}

func seedCollector(t *testing.T, s *Service, name, location string, priceMin, priceMax int, wasteTypes []string, status string) *domain.CollectorProfile {
	t.Helper()
	user := &domain.User{
		FullName:     name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         domain.RoleCollector,
	}
	require.NoError(t, s.DB.Create(user).Error)
	profile := &domain.CollectorProfile{
		UserID:     user.ID,
		Location:   location,
		PriceMin:   priceMin,
		PriceMax:   priceMax,
		WasteTypes: domain.StringList(wasteTypes),
		Status:     status,
	}
	require.NoError(t, s.DB.Create(profile).Error)
	return profile
}

func TestSearch_All(t *testing.T) {
	s := setupService(t)
	seedCollector(t, s, "budi", "Jakarta", 10, 50, []string{"PLASTIC"}, domain.CollectorAvailable)
	seedCollector(t, s, "sari", "Bandung", 20, 80, []string{"ORGANIC"}, domain.CollectorOffline)

	out, err := s.Search(context.Background(), Filters{})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "budi", out[0].Name)
	assert.Equal(t, "sari", out[1].Name)
}

func TestSearch_ByName(t *testing.T) {
	s := setupService(t)
	seedCollector(t, s, "Budi Santoso", "Jakarta", 10, 50, []string{"PLASTIC"}, domain.CollectorAvailable)
	seedCollector(t, s, "Sari Dewi", "Jakarta", 10, 50, []string{"PLASTIC"}, domain.CollectorAvailable)

	out, err := s.Search(context.Background(), Filters{Name: "budi"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Budi Santoso", out[0].Name)
}

func TestSearch_ByWasteType(t *testing.T) {
	s := setupService(t)
	seedCollector(t, s, "budi", "Jakarta", 10, 50, []string{"PLASTIC", "ELECTRONIC"}, domain.CollectorAvailable)
	seedCollector(t, s, "sari", "Jakarta", 10, 50, []string{"ORGANIC"}, domain.CollectorAvailable)

	out, err := s.Search(context.Background(), Filters{WasteType: "electronic"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "budi", out[0].Name)

	_, err = s.Search(context.Background(), Filters{WasteType: "nuclear"})
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))
}

func TestSearch_PriceRangeOverlap(t *testing.T) {
	s := setupService(t)
	// Bands: [10,50], [60,100], [40,70]
	seedCollector(t, s, "low", "Jakarta", 10, 50, []string{"PLASTIC"}, domain.CollectorAvailable)
	seedCollector(t, s, "high", "Jakarta", 60, 100, []string{"PLASTIC"}, domain.CollectorAvailable)
	seedCollector(t, s, "mid", "Jakarta", 40, 70, []string{"PLASTIC"}, domain.CollectorAvailable)

	min, max := 45, 55
	out, err := s.Search(context.Background(), Filters{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "low", out[0].Name)
	assert.Equal(t, "mid", out[1].Name)
}

func TestSearch_ByStatus(t *testing.T) {
	s := setupService(t)
	seedCollector(t, s, "budi", "Jakarta", 10, 50, []string{"PLASTIC"}, domain.CollectorAvailable)
	seedCollector(t, s, "sari", "Jakarta", 10, 50, []string{"PLASTIC"}, domain.CollectorBusy)

	out, err := s.Search(context.Background(), Filters{Status: "available"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "budi", out[0].Name)

	_, err = s.Search(context.Background(), Filters{Status: "sleeping"})
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))
}

func TestGetByID(t *testing.T) {
	s := setupService(t)
	p := seedCollector(t, s, "budi", "Jakarta", 10, 50, []string{"PLASTIC"}, domain.CollectorAvailable)

	got, err := s.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, "budi", got.User.FullName)

	_, err = s.GetByID(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestUpdateStatus(t *testing.T) {
	s := setupService(t)
	p := seedCollector(t, s, "budi", "Jakarta", 10, 50, []string{"PLASTIC"}, domain.CollectorOffline)

	got, err := s.UpdateStatus(context.Background(), p.UserID, "busy")
	require.NoError(t, err)
	assert.Equal(t, domain.CollectorBusy, got.Status)

	var fresh domain.CollectorProfile
	require.NoError(t, s.DB.First(&fresh, p.ID).Error)
	assert.Equal(t, domain.CollectorBusy, fresh.Status)

	_, err = s.UpdateStatus(context.Background(), p.UserID, "away")
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))

	_, err = s.UpdateStatus(context.Background(), 999, "BUSY")
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}
