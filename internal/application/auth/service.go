package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"wasteline-backend/internal/application/notifications"
	"wasteline-backend/internal/domain"
	"wasteline-backend/internal/pkg/apperrors"
	"wasteline-backend/internal/pkg/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service holds dependencies for registration and login.
type Service struct {
	DB         *gorm.DB
	JWTSecret  string
	JWTTTL     time.Duration
	Dispatcher *notifications.Dispatcher
}

// RegisterInput for POST /auth/register.
type RegisterInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ProfileInput for collector registration.
type ProfileInput struct {
	Location         string   `json:"location"`
	PriceMin         int      `json:"price_min"`
	PriceMax         int      `json:"price_max"`
	WorkingDays      []string `json:"working_days"`
	WasteTypes       []string `json:"waste_types"`
	QuantityAccepted []string `json:"quantity_accepted"`
	WhatsappNumber   *string  `json:"whatsapp_number"`
}

// Register creates a user. Email is normalized (trim + lowercase) before the
// uniqueness check, so addresses differing only by case or whitespace are
// rejected as duplicates.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	u, err := s.validateUser(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, createUserError(err)
	}
	s.Dispatcher.NotifyRegistered(u)
	return u, nil
}

// createUserError maps an insert failure. The duplicate pre-check in
// validateUser races with concurrent registrations, so a unique-index
// violation on email is still a registration conflict, not a server fault.
func createUserError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.New(apperrors.Conflict, "Email already registered")
	}
	return apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
}

// RegisterCollector creates a COLLECTOR user and its profile in one
// transaction. Profile validation runs before any row is written; a failure
// at either step rolls back both, so no user-without-profile state is
// observable.
func (s *Service) RegisterCollector(ctx context.Context, in RegisterInput, profile ProfileInput) (*domain.User, error) {
	if strings.ToUpper(strings.TrimSpace(in.Role)) != domain.RoleCollector {
		return nil, apperrors.New(apperrors.InvalidArgument, "Role must be COLLECTOR for this registration endpoint")
	}
	u, err := s.validateUser(ctx, in)
	if err != nil {
		return nil, err
	}
	p, err := buildProfile(profile)
	if err != nil {
		return nil, err
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Create(u).Error; err != nil {
		tx.Rollback()
		return nil, createUserError(err)
	}
	p.UserID = u.ID
	if err := tx.Create(p).Error; err != nil {
		tx.Rollback()
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	u.CollectorProfile = p
	s.Dispatcher.NotifyRegistered(u)
	return u, nil
}

// Login verifies credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, apperrors.New(apperrors.InvalidArgument, "Email and password are required")
	}
	var u domain.User
	err := s.DB.WithContext(ctx).Where("email = ?", validation.NormalizeEmail(email)).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, apperrors.New(apperrors.Unauthenticated, "Incorrect email or password")
		}
		return "", nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, apperrors.New(apperrors.Unauthenticated, "Incorrect email or password")
	}
	token, err := NewAccessToken(s.JWTSecret, s.JWTTTL, u.ID, u.Email, u.Role)
	if err != nil {
		return "", nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	return token, &u, nil
}

// Me returns the user with its collector profile when present.
func (s *Service) Me(ctx context.Context, userID uint) (*domain.User, error) {
	var u domain.User
	err := s.DB.WithContext(ctx).Preload("CollectorProfile").Where("id = ?", userID).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.New(apperrors.NotFound, "User not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	return &u, nil
}

func (s *Service) validateUser(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "Full name is required")
	}
	email := validation.NormalizeEmail(in.Email)
	if !validation.IsValidEmail(email) {
		return nil, apperrors.New(apperrors.InvalidArgument, "Invalid email format")
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, apperrors.New(apperrors.InvalidArgument, "Invalid password format")
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, apperrors.New(apperrors.InvalidArgument, "Role must be RESIDENT or COLLECTOR")
	}

	var existing domain.User
	switch err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error; {
	case err == nil:
		return nil, apperrors.New(apperrors.Conflict, "Email already registered")
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "Internal Server Error", err)
	}
	return &domain.User{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}, nil
}

func buildProfile(in ProfileInput) (*domain.CollectorProfile, error) {
	if strings.TrimSpace(in.Location) == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "Location is required")
	}
	if in.PriceMin < 0 || in.PriceMax <= in.PriceMin {
		return nil, apperrors.New(apperrors.InvalidArgument, "price_max must be greater than price_min")
	}
	wasteTypes, err := domain.ParseWasteTypes(in.WasteTypes)
	if err != nil || len(wasteTypes) == 0 {
		return nil, apperrors.New(apperrors.InvalidArgument, "Invalid waste types")
	}
	if len(in.QuantityAccepted) == 0 {
		return nil, apperrors.New(apperrors.InvalidArgument, "Invalid quantity set")
	}
	quantities := make([]string, 0, len(in.QuantityAccepted))
	for _, q := range in.QuantityAccepted {
		parsed, err := domain.ParseQuantity(q)
		if err != nil {
			return nil, apperrors.New(apperrors.InvalidArgument, "Invalid quantity set")
		}
		quantities = append(quantities, parsed)
	}
	if len(in.WorkingDays) == 0 {
		return nil, apperrors.New(apperrors.InvalidArgument, "Working days are required")
	}
	return &domain.CollectorProfile{
		Location:         strings.TrimSpace(in.Location),
		PriceMin:         in.PriceMin,
		PriceMax:         in.PriceMax,
		WorkingDays:      domain.StringList(in.WorkingDays),
		WasteTypes:       domain.StringList(wasteTypes),
		QuantityAccepted: domain.StringList(quantities),
		WhatsappNumber:   in.WhatsappNumber,
		Status:           domain.CollectorOffline,
	}, nil
}
