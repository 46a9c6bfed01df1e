package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/denialp88/tickets/internal/auth"
	apperrors "github.com/denialp88/tickets/internal/errors"
	"github.com/denialp88/tickets/internal/model"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Login(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenStore := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(userRepo, jwtService, tokenStore)

	user := &model.User{
		ID:           1,
		Username:     "admin",
		PasswordHash: hashPassword(t, "admin123"),
		Role:         model.RoleAdmin,
	}

	userRepo.On("FindByUsername", mock.Anything, "admin").Return(user, nil)
	tokenStore.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(1), "admin", model.RoleAdmin, auth.RefreshTokenExpiry).Return(nil)

	access, refresh, got, err := svc.Login(context.Background(), "admin", "admin123")

	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, user, got)

	claims, err := jwtService.ValidateToken(access)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)

	userRepo.AssertExpectations(t)
	tokenStore.AssertExpectations(t)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

	userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, _, _, err := svc.Login(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

	user := &model.User{ID: 1, Username: "admin", PasswordHash: hashPassword(t, "admin123"), Role: model.RoleAdmin}
	userRepo.On("FindByUsername", mock.Anything, "admin").Return(user, nil)

	_, _, _, err := svc.Login(context.Background(), "admin", "wrong")
	// Same error as an unknown username; callers cannot enumerate accounts.
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_ResetPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

	user := &model.User{ID: 7, Username: "booker", FirstLogin: true}
	userRepo.On("FindByID", mock.Anything, uint(7)).Return(user, nil)
	userRepo.On("UpdatePassword", mock.Anything, uint(7), mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte("newsecret")) == nil
	})).Return(nil)

	err := svc.ResetPassword(context.Background(), 7, "newsecret")

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestAuthService_ResetPassword_TooShort(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

	err := svc.ResetPassword(context.Background(), 7, "abc")

	assert.ErrorIs(t, err, apperrors.ErrPasswordTooShort)
	userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_RefreshToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenStore := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(userRepo, jwtService, tokenStore)

	user := &model.User{ID: 3, Username: "booker", Role: model.RoleBooker}
	tokenID, refresh, err := jwtService.GenerateRefreshToken(user)
	assert.NoError(t, err)

	tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(3), "booker", model.RoleBooker, nil)
	userRepo.On("FindByID", mock.Anything, uint(3)).Return(user, nil)

	access, err := svc.RefreshToken(context.Background(), refresh)

	assert.NoError(t, err)
	claims, err := jwtService.ValidateToken(access)
	assert.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)
	assert.Equal(t, model.RoleBooker, claims.Role)
}

func TestAuthService_RefreshToken_NotInStore(t *testing.T) {
	tokenStore := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(new(MockUserRepository), jwtService, tokenStore)

	user := &model.User{ID: 3, Username: "booker", Role: model.RoleBooker}
	tokenID, refresh, err := jwtService.GenerateRefreshToken(user)
	assert.NoError(t, err)

	tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(0), "", model.Role(""), apperrors.ErrInvalidCredentials)

	_, err = svc.RefreshToken(context.Background(), refresh)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), auth.NewJWTService("test-secret"), new(MockTokenStore))

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Logout(t *testing.T) {
	tokenStore := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(new(MockUserRepository), jwtService, tokenStore)

	user := &model.User{ID: 3, Username: "booker", Role: model.RoleBooker}
	tokenID, refresh, err := jwtService.GenerateRefreshToken(user)
	assert.NoError(t, err)

	tokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), refresh, ""))
	tokenStore.AssertExpectations(t)
	tokenStore.AssertNotCalled(t, "BlacklistAccessToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Logout_BlacklistsAccessToken(t *testing.T) {
	tokenStore := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(new(MockUserRepository), jwtService, tokenStore)

	user := &model.User{ID: 3, Username: "booker", Role: model.RoleBooker}
	refreshID, refresh, err := jwtService.GenerateRefreshToken(user)
	assert.NoError(t, err)
	access, err := jwtService.GenerateAccessToken(user)
	assert.NoError(t, err)

	claims, err := jwtService.ValidateToken(access)
	assert.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	tokenStore.On("DeleteRefreshToken", mock.Anything, refreshID).Return(nil)
	tokenStore.On("BlacklistAccessToken", mock.Anything, claims.ID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 0 && ttl <= auth.AccessTokenExpiry
	})).Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), refresh, access))
	tokenStore.AssertExpectations(t)
}

func TestAuthService_Logout_IgnoresGarbageAccessToken(t *testing.T) {
	tokenStore := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(new(MockUserRepository), jwtService, tokenStore)

	user := &model.User{ID: 3, Username: "booker", Role: model.RoleBooker}
	tokenID, refresh, err := jwtService.GenerateRefreshToken(user)
	assert.NoError(t, err)

	tokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	// An unparsable access token does not block logout.
	assert.NoError(t, svc.Logout(context.Background(), refresh, "not-a-token"))
	tokenStore.AssertNotCalled(t, "BlacklistAccessToken", mock.Anything, mock.Anything, mock.Anything)
}
