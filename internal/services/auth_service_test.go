package services_test

import (
	"fmt"
	"testing"
	"time"

	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, quietLogger())

	// Test successful registration
	mockRepo.On("GetByUsername", "alice").Return(nil, fmt.Errorf("user with username alice: %w", models.ErrNotFound)).Once()
	mockRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "alice" && bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("pw1")) == nil
	})).Return(nil).Once()

	err := authService.RegisterUser("alice", "pw1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test username already taken
	mockRepo.On("GetByUsername", "alice").Return(&models.User{Username: "alice"}, nil).Once()
	err = authService.RegisterUser("alice", "pw1")
	assert.ErrorIs(t, err, models.ErrDuplicateUsername)
	assert.Contains(t, err.Error(), "'alice'")
	mockRepo.AssertExpectations(t)

	// Test empty username
	err = authService.RegisterUser("  ", "pw1")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	// Test storage failure during lookup
	mockRepo.On("GetByUsername", "bob").Return(nil, fmt.Errorf("disk I/O error")).Once()
	err = authService.RegisterUser("bob", "pw")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrDuplicateUsername)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_CheckCredentials(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, quietLogger())

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.DefaultCost)
	user := &models.User{Username: "alice", Password: string(hashedPassword)}

	mockRepo.On("GetByUsername", "alice").Return(user, nil)
	mockRepo.On("GetByUsername", "ghost").Return(nil, fmt.Errorf("user with username ghost: %w", models.ErrNotFound))

	ok, err := authService.CheckCredentials("alice", "pw1")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = authService.CheckCredentials("alice", "wrong")
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = authService.CheckCredentials("ghost", "pw1")
	assert.NoError(t, err, "unknown user is not an error")
	assert.False(t, ok)
}

func TestAuthService_RoundTripWithMemoryStore(t *testing.T) {
	store := repositories.NewMemoryStore()
	authService := services.NewAuthService(store.Users(), testJWTSecret, time.Hour, quietLogger())

	require.NoError(t, authService.RegisterUser("alice", "pw1"))

	ok, err := authService.CheckCredentials("alice", "pw1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = authService.CheckCredentials("alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	err = authService.RegisterUser("alice", "pw2")
	assert.ErrorIs(t, err, models.ErrDuplicateUsername)

	// EnsureUser is a no-op for an existing account
	require.NoError(t, authService.EnsureUser("alice", "pw2"))
	ok, err = authService.CheckCredentials("alice", "pw1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, authService.EnsureUser("admin", "admin123"))
	ok, err = authService.CheckCredentials("admin", "admin123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, quietLogger())

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{Username: "testuser", Password: string(hashedPassword)}

	// Test successful login
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	token, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.Username, claims["username"])
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	_, err = authService.LoginUser("testuser", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (user not found)
	mockRepo.On("GetByUsername", "nonexistentuser").Return(nil, fmt.Errorf("user with username nonexistentuser: %w", models.ErrNotFound)).Once()
	_, err = authService.LoginUser("nonexistentuser", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, quietLogger())

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "testuser",
		"exp":      jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	// Test valid token
	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "testuser", claims["username"])

	// Test malformed token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorContains(t, err, "invalid token")

	// Test wrong secret
	forged, _ := token.SignedString([]byte("another_secret"))
	_, err = authService.ValidateToken(forged)
	assert.ErrorContains(t, err, "invalid token")

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "testuser",
		"exp":      jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.ErrorContains(t, err, "invalid token")
}
