package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"wasteline-backend/internal/domain"
	"wasteline-backend/internal/pkg/apperrors"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.CollectorProfile{}))
	return &Service{
		DB:        db,
		JWTSecret: "test-secret",
		JWTTTL:    30 * time.Minute,
	}
}

func residentInput() RegisterInput {
	return RegisterInput{
		FullName: "Ani Wijaya",
		Email:    "ani@example.com",
		Password: "Passw0rd!",
		Role:     "resident",
	}
}

func collectorProfileInput() ProfileInput {
	return ProfileInput{
		Location:         "Jakarta",
		PriceMin:         10,
		PriceMax:         50,
		WorkingDays:      []string{"MON", "WED", "FRI"},
		WasteTypes:       []string{"plastic", "organic"},
		QuantityAccepted: []string{"small", "medium"},
	}
}

func TestRegister(t *testing.T) {
	s := setupService(t)
	u, err := s.Register(context.Background(), residentInput())
	require.NoError(t, err)
	assert.Equal(t, domain.RoleResident, u.Role)
	assert.Equal(t, "ani@example.com", u.Email)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "Passw0rd!", u.PasswordHash)
}

func TestRegister_DuplicateEmailNormalized(t *testing.T) {
	s := setupService(t)
	_, err := s.Register(context.Background(), residentInput())
	require.NoError(t, err)

	dup := residentInput()
	dup.Email = "  ANI@Example.com "
	_, err = s.Register(context.Background(), dup)
	require.Error(t, err)
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err))
	assert.Equal(t, "Email already registered", apperrors.Message(err))
}

func TestRegister_DuplicateKeyOnInsertIsConflict(t *testing.T) {
	s := setupService(t)
	seed := domain.User{
		FullName:     "Ani Wijaya",
		Email:        "ani@example.com",
		PasswordHash: "x",
		Role:         domain.RoleResident,
		IsActive:     true,
	}
	require.NoError(t, s.DB.Create(&seed).Error)

	// A registration losing the race to the unique index maps to a conflict.
	err := createUserError(s.DB.Create(&domain.User{
		FullName:     "Ani Wijaya",
		Email:        "ani@example.com",
		PasswordHash: "x",
		Role:         domain.RoleResident,
	}).Error)
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err))
	assert.Equal(t, "Email already registered", apperrors.Message(err))

	assert.Equal(t, apperrors.Internal, apperrors.KindOf(createUserError(errors.New("connection reset"))))
}

func TestRegister_LookupFailureDoesNotCreate(t *testing.T) {
	// users table never migrated, so the duplicate lookup fails outright.
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	s := &Service{DB: db, JWTSecret: "test-secret", JWTTTL: 30 * time.Minute}

	_, err = s.Register(context.Background(), residentInput())
	require.Error(t, err)
	assert.Equal(t, apperrors.Internal, apperrors.KindOf(err))
}

func TestRegister_Validation(t *testing.T) {
	s := setupService(t)

	in := residentInput()
	in.Email = "not-an-email"
	_, err := s.Register(context.Background(), in)
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))

	in = residentInput()
	in.Password = "short"
	_, err = s.Register(context.Background(), in)
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))

	in = residentInput()
	in.Role = "admin"
	_, err = s.Register(context.Background(), in)
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))
}

func TestRegisterCollector(t *testing.T) {
	s := setupService(t)
	in := residentInput()
	in.Role = "collector"

	u, err := s.RegisterCollector(context.Background(), in, collectorProfileInput())
	require.NoError(t, err)
	require.NotNil(t, u.CollectorProfile)
	assert.Equal(t, u.ID, u.CollectorProfile.UserID)
	assert.Equal(t, domain.CollectorOffline, u.CollectorProfile.Status)
	assert.Equal(t, domain.StringList{"PLASTIC", "ORGANIC"}, u.CollectorProfile.WasteTypes)
}

func TestRegisterCollector_WrongRole(t *testing.T) {
	s := setupService(t)
	_, err := s.RegisterCollector(context.Background(), residentInput(), collectorProfileInput())
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))
}

func TestRegisterCollector_BadPriceBandWritesNothing(t *testing.T) {
	s := setupService(t)
	in := residentInput()
	in.Role = "collector"
	profile := collectorProfileInput()
	profile.PriceMax = profile.PriceMin

	_, err := s.RegisterCollector(context.Background(), in, profile)
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))
	assert.Equal(t, "price_max must be greater than price_min", apperrors.Message(err))

	var users, profiles int64
	s.DB.Model(&domain.User{}).Count(&users)
	s.DB.Model(&domain.CollectorProfile{}).Count(&profiles)
	assert.Equal(t, int64(0), users)
	assert.Equal(t, int64(0), profiles)
}

func TestLogin(t *testing.T) {
	s := setupService(t)
	_, err := s.Register(context.Background(), residentInput())
	require.NoError(t, err)

	token, u, err := s.Login(context.Background(), "Ani@Example.com", "Passw0rd!")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ani@example.com", u.Email)

	claims, err := ParseToken(s.JWTSecret, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, domain.RoleResident, claims.Role)
}

func TestLogin_BadCredentials(t *testing.T) {
	s := setupService(t)
	_, err := s.Register(context.Background(), residentInput())
	require.NoError(t, err)

	_, _, err = s.Login(context.Background(), "ani@example.com", "WrongPass1!")
	assert.Equal(t, apperrors.Unauthenticated, apperrors.KindOf(err))

	_, _, err = s.Login(context.Background(), "nobody@example.com", "Passw0rd!")
	assert.Equal(t, apperrors.Unauthenticated, apperrors.KindOf(err))
}

func TestMe(t *testing.T) {
	s := setupService(t)
	in := residentInput()
	in.Role = "collector"
	u, err := s.RegisterCollector(context.Background(), in, collectorProfileInput())
	require.NoError(t, err)

	got, err := s.Me(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CollectorProfile)
	assert.Equal(t, "Jakarta", got.CollectorProfile.Location)

	_, err = s.Me(context.Background(), 999)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := NewAccessToken("secret-a", time.Minute, 1, "a@b.co", domain.RoleResident)
	require.NoError(t, err)

	_, err = ParseToken("secret-b", token)
	require.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := NewAccessToken("secret", -time.Minute, 1, "a@b.co", domain.RoleResident)
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	require.Error(t, err)
}
