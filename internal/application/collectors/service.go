package collectors

import (
	"context"
	"strings"

	"wasteline-backend/internal/domain"
	"wasteline-backend/internal/pkg/apperrors"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Filters is the optional collector search criteria, combined with AND.
type Filters struct {
	Name      string
	Location  string
	WasteType string
	MinPrice  *int
	MaxPrice  *int
	Status    string
	Limit     int
	Offset    int
}

// apply builds the search query. Price filters are a range-overlap test
// against the profile's accepted [price_min, price_max] band. Ordering is by
// id so repeated identical queries page deterministically.
func (f Filters) apply(q *gorm.DB) *gorm.DB {
	if f.Name != "" {
		q = q.Joins("JOIN users ON users.id = collector_profiles.user_id").
			Where("LOWER(users.full_name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}
	if f.Location != "" {
		q = q.Where("LOWER(collector_profiles.location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if f.WasteType != "" {
		// waste_types is a JSON text column; membership is a quoted substring match.
		q = q.Where("collector_profiles.waste_types LIKE ?", `%"`+f.WasteType+`"%`)
	}
	if f.MinPrice != nil {
		q = q.Where("collector_profiles.price_max >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("collector_profiles.price_min <= ?", *f.MaxPrice)
	}
	if f.Status != "" {
		q = q.Where("collector_profiles.status = ?", f.Status)
	}
	q = q.Order("collector_profiles.id ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	return q
}

// Summary is the search result row: profile fields plus the owner's name.
type Summary struct {
	ID            uint              `json:"id"`
	UserID        uint              `json:"user_id"`
	Name          string            `json:"name"`
	Location      string            `json:"location"`
	PriceMin      int               `json:"price_min"`
	PriceMax      int               `json:"price_max"`
	WorkingDays   domain.StringList `json:"working_days"`
	WasteTypes    domain.StringList `json:"waste_types"`
	AverageRating float64           `json:"average_rating"`
	Status        string            `json:"status"`
}

// Search returns collector profiles matching the filter set.
func (s *Service) Search(ctx context.Context, f Filters) ([]Summary, error) {
	if f.WasteType != "" {
		wt, err := domain.ParseWasteType(f.WasteType)
		if err != nil {
			return nil, apperrors.New(apperrors.InvalidArgument, "Invalid waste type")
		}
		f.WasteType = wt
	}
	if f.Status != "" {
		st, err := domain.ParseCollectorStatus(f.Status)
		if err != nil {
			return nil, apperrors.New(apperrors.InvalidArgument, "Invalid collector status")
		}
		f.Status = st
	}

	var profiles []domain.CollectorProfile
	q := f.apply(s.DB.WithContext(ctx).Model(&domain.CollectorProfile{}))
	if err := q.Preload("User").Find(&profiles).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}

	out := make([]Summary, 0, len(profiles))
	for _, p := range profiles {
		name := ""
		if p.User != nil {
			name = p.User.FullName
		}
		out = append(out, Summary{
			ID:            p.ID,
			UserID:        p.UserID,
			Name:          name,
			Location:      p.Location,
			PriceMin:      p.PriceMin,
			PriceMax:      p.PriceMax,
			WorkingDays:   p.WorkingDays,
			WasteTypes:    p.WasteTypes,
			AverageRating: p.AverageRating,
			Status:        p.Status,
		})
	}
	return out, nil
}

// GetByID returns the full profile with the owner's name.
func (s *Service) GetByID(ctx context.Context, id uint) (*domain.CollectorProfile, error) {
	var p domain.CollectorProfile
	if err := s.DB.WithContext(ctx).Preload("User").Where("id = ?", id).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.New(apperrors.NotFound, "Collector not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	return &p, nil
}

// UpdateStatus sets the availability status on the collector's own profile.
func (s *Service) UpdateStatus(ctx context.Context, userID uint, rawStatus string) (*domain.CollectorProfile, error) {
	status, err := domain.ParseCollectorStatus(rawStatus)
	if err != nil {
		return nil, apperrors.New(apperrors.InvalidArgument, "Invalid collector status")
	}
	var p domain.CollectorProfile
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.New(apperrors.NotFound, "Collector profile not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	if err := s.DB.WithContext(ctx).Model(&p).Update("status", status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	p.Status = status
	return &p, nil
}
