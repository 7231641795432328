package reports

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

// CreateInput for a new dump report.
type CreateInput struct {
	UserID      uint
	Location    string
	Description *string
	WasteType   string
	Severity    string
	ImageURL    string
}

// Create persists a new report with status PENDING. Reports are never
// deleted; only their status changes afterwards.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.DumpReport, error) {
	if strings.TrimSpace(in.Location) == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "Location is required")
	}
	if in.ImageURL == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "Image is required")
	}
	wasteType, err := domain.ParseWasteType(in.WasteType)
	if err != nil {
		return nil, apperrors.New(apperrors.InvalidArgument, "Invalid waste type")
	}
	severity, err := domain.ParseSeverity(in.Severity)
	if err != nil {
		return nil, apperrors.New(apperrors.InvalidArgument, "Invalid severity level")
	}

	report := &domain.DumpReport{
		UserID:      in.UserID,
		ImageURL:    in.ImageURL,
		Location:    strings.TrimSpace(in.Location),
		Description: in.Description,
		WasteType:   wasteType,
		Severity:    severity,
		Status:      domain.ReportPending,
	}
	if err := s.DB.WithContext(ctx).Create(report).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	return report, nil
}

// ListByUser returns a user's own reports, optionally filtered by status,
// newest first.
func (s *Service) ListByUser(ctx context.Context, userID uint, status string) ([]domain.DumpReport, error) {
	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		parsed, err := domain.ParseReportStatus(status)
		if err != nil {
			return nil, apperrors.New(apperrors.InvalidArgument, "Invalid report status")
		}
		q = q.Where("status = ?", parsed)
	}
	var out []domain.DumpReport
	if err := q.Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	return out, nil
}

// GetByID returns one report or NotFound.
func (s *Service) GetByID(ctx context.Context, id uint) (*domain.DumpReport, error) {
	var report domain.DumpReport
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.New(apperrors.NotFound, "Report not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	return &report, nil
}

// UpdateStatus sets a report's status. Ownership: only the reporting user may
// update their report.
func (s *Service) UpdateStatus(ctx context.Context, reportID, actorID uint, rawStatus string) (*domain.DumpReport, error) {
	status, err := domain.ParseReportStatus(rawStatus)
	if err != nil {
		return nil, apperrors.New(apperrors.InvalidArgument, "Invalid report status")
	}
	report, err := s.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.UserID != actorID {
		return nil, apperrors.New(apperrors.Forbidden, "You can only update your own reports")
	}
	if err := s.DB.WithContext(ctx).Model(report).Update("status", status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	report.Status = status
	return report, nil
}
