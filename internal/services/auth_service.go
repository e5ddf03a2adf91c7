package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gudang/internal/models"
	"gudang/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by LoginUser for any unknown user or wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService is the credential store: it registers users, checks passwords
// and issues the tokens that carry a session.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	log        logrus.FieldLogger
}

// NewAuthService creates a new AuthService. A non-positive tokenTTL means 24 hours.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration, log logrus.FieldLogger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenTTL,
		log:        log,
	}
}

// RegisterUser stores a new user with a bcrypt-hashed password. Password
// policy and confirmation are the caller's concern.
func (s *AuthService) RegisterUser(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", models.ErrInvalidInput)
	}

	existing, err := s.userRepo.GetByUsername(username)
	if err == nil && existing != nil {
		return fmt.Errorf("%w: '%s'", models.ErrDuplicateUsername, username)
	}
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to look up user %s: %w", username, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: username, Password: string(hashedPassword)}
	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	s.log.WithField("username", username).Info("user registered")
	return nil
}

// EnsureUser registers username unless it already exists.
func (s *AuthService) EnsureUser(username, password string) error {
	err := s.RegisterUser(username, password)
	if err != nil && !errors.Is(err, models.ErrDuplicateUsername) {
		return err
	}
	return nil
}

// CheckCredentials reports whether username exists and password matches.
// A mismatch or unknown user is false with a nil error.
func (s *AuthService) CheckCredentials(username, password string) (bool, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up user %s: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.log.WithField("username", username).WithError(err).Warn("stored password hash is unusable")
		}
		return false, nil
	}
	return true, nil
}

// LoginUser checks the credentials and returns a signed JWT when they match.
func (s *AuthService) LoginUser(username, password string) (string, error) {
	ok, err := s.CheckCredentials(username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"exp":      now.Add(s.tokenDurat).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
