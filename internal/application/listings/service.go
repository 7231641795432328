package listings

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"wasteline-backend/internal/domain"
	"wasteline-backend/internal/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// CreateInput for a new marketplace listing.
type CreateInput struct {
	ResidentID  uint
	Title       string
	Description *string
	WasteType   string
	Price       float64
	Quantity    string
	Location    string
	ImageURL    string
}

// Create persists a new listing with status AVAILABLE and records a CREATED
// event in the same transaction.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Listing, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "Title is required")
	}
	if in.Price <= 0 {
		return nil, apperrors.New(apperrors.InvalidArgument, "Price must be greater than zero")
	}
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
	quantity, err := domain.ParseQuantity(in.Quantity)
	if err != nil {
		return nil, apperrors.New(apperrors.InvalidArgument, "Invalid quantity. Must be one of: small, medium, large")
	}

	listing := &domain.Listing{
		ResidentID:  in.ResidentID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		WasteType:   wasteType,
		Price:       in.Price,
		Quantity:    quantity,
		Location:    strings.TrimSpace(in.Location),
		ImageURL:    in.ImageURL,
		Status:      domain.ListingAvailable,
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Create(listing).Error; err != nil {
		tx.Rollback()
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	eventData, _ := json.Marshal(map[string]interface{}{
		"waste_type": listing.WasteType,
		"price":      listing.Price,
		"quantity":   listing.Quantity,
	})
	actorID := in.ResidentID
	if err := tx.Create(&domain.ListingEvent{
		ListingID: listing.ID,
		EventType: "CREATED",
		EventData: datatypes.JSON(eventData),
		ActorID:   &actorID,
	}).Error; err != nil {
		tx.Rollback()
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	return listing, nil
}

// List returns listings matching the filter set, newest first. Enum filters
// are validated and normalized before they reach the query.
func (s *Service) List(ctx context.Context, f Filters) ([]domain.Listing, error) {
	if f.WasteType != "" {
		wt, err := domain.ParseWasteType(f.WasteType)
		if err != nil {
			return nil, apperrors.New(apperrors.InvalidArgument, "Invalid waste type")
		}
		f.WasteType = wt
	}
	if f.Status != "" {
		st, err := domain.ParseListingStatus(f.Status)
		if err != nil {
			return nil, apperrors.New(apperrors.InvalidArgument, "Invalid listing status")
		}
		f.Status = st
	}
	var out []domain.Listing
	if err := f.Apply(s.DB.WithContext(ctx).Model(&domain.Listing{})).Find(&out).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	return out, nil
}

// GetByID returns one listing or NotFound.
func (s *Service) GetByID(ctx context.Context, id uint) (*domain.Listing, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.New(apperrors.NotFound, "Listing not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	return &listing, nil
}

// Transition moves a listing to newStatus and applies the status side
// effects. Any state may follow any state: the contract is last write wins,
// not a guarded state machine. Callers must have passed the role gate first;
// no authorization check happens here.
//
//	RESERVED  -> collector_id + reserved_at set (sold_at untouched)
//	SOLD      -> collector_id + sold_at set (reserved_at untouched)
//	AVAILABLE -> collector_id, reserved_at, sold_at all cleared
//	CANCELLED -> status only
//
// updated_at is set on every transition. The whole update is one transaction.
func (s *Service) Transition(ctx context.Context, listingID uint, newStatus string, collectorID *uint) (*domain.Listing, error) {
	status, err := domain.ParseListingStatus(newStatus)
	if err != nil {
		return nil, apperrors.New(apperrors.InvalidArgument, "Invalid listing status")
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var listing domain.Listing
	if err := tx.Where("id = ?", listingID).First(&listing).Error; err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.New(apperrors.NotFound, "Listing not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}

	now := time.Now().UTC()
	prevStatus := listing.Status
	listing.Status = status
	listing.UpdatedAt = now
	switch status {
	case domain.ListingReserved:
		listing.CollectorID = collectorID
		listing.ReservedAt = &now
	case domain.ListingSold:
		listing.CollectorID = collectorID
		listing.SoldAt = &now
	case domain.ListingAvailable:
		listing.CollectorID = nil
		listing.ReservedAt = nil
		listing.SoldAt = nil
	}

	// Save with explicit column list so clearing pointer fields writes NULL.
	cols := map[string]interface{}{
		"status":       listing.Status,
		"updated_at":   listing.UpdatedAt,
		"collector_id": listing.CollectorID,
		"reserved_at":  listing.ReservedAt,
		"sold_at":      listing.SoldAt,
	}
	if err := tx.Model(&domain.Listing{}).Where("id = ?", listing.ID).Updates(cols).Error; err != nil {
		tx.Rollback()
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}

	eventData, _ := json.Marshal(map[string]interface{}{
		"from": prevStatus,
		"to":   status,
	})
	if err := tx.Create(&domain.ListingEvent{
		ListingID: listing.ID,
		EventType: status,
		EventData: datatypes.JSON(eventData),
		ActorID:   collectorID,
	}).Error; err != nil {
		tx.Rollback()
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	return &listing, nil
}

// ListByResident returns a resident's own listings, newest first.
func (s *Service) ListByResident(ctx context.Context, residentID uint, includeSold bool) ([]domain.Listing, error) {
	q := s.DB.WithContext(ctx).Where("resident_id = ?", residentID)
	if !includeSold {
		q = q.Where("status <> ?", domain.ListingSold)
	}
	var out []domain.Listing
	if err := q.Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	return out, nil
}

// Reservations returns the listings a collector currently holds (RESERVED or
// SOLD), newest first.
func (s *Service) Reservations(ctx context.Context, collectorID uint) ([]domain.Listing, error) {
	var out []domain.Listing
	err := s.DB.WithContext(ctx).
		Where("collector_id = ?", collectorID).
		Where("status IN ?", []string{domain.ListingReserved, domain.ListingSold}).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	return out, nil
}

// Events returns the audit trail for a listing, oldest first.
func (s *Service) Events(ctx context.Context, listingID uint) ([]domain.ListingEvent, error) {
	if _, err := s.GetByID(ctx, listingID); err != nil {
		return nil, err
	}
	var events []domain.ListingEvent
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).Order("id ASC").Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	return events, nil
}
