package services

import (
	"errors"
	"time"

	"tasknest/tasknest/database"
	"tasknest/tasknest/models"
	"tasknest/tasknest/utils/token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Use the JWTClaims from token package
type JWTClaims = token.JWTClaims

// LoginResult is the token pair plus minimal user identity issued on login
type LoginResult struct {
	Token   string
	Refresh string
	User    models.User
}

type AuthServiceInterface interface {
	Login(db *database.Database, username, password string) (LoginResult, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
	HashPassword(password string) (string, error)
	ComparePasswords(hashedPassword, password string) error
}

type AuthService struct {
	jwtSecret         []byte
	jwtExpiration     time.Duration
	refreshExpiration time.Duration
}

func NewAuthService(jwtSecret string, jwtExpirationHours, refreshExpirationHours int) *AuthService {
	return &AuthService{
		jwtSecret:         []byte(jwtSecret),
		jwtExpiration:     time.Duration(jwtExpirationHours) * time.Hour,
		refreshExpiration: time.Duration(refreshExpirationHours) * time.Hour,
	}
}

// Login verifies credentials and issues an access/refresh token pair. Unknown
// user and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(db *database.Database, username, password string) (LoginResult, error) {
	var user models.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err := s.ComparePasswords(user.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	accessToken, err := token.GenerateToken(user.ID, user.Username, token.TypeAccess, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		return LoginResult{}, err
	}

	refreshToken, err := token.GenerateToken(user.ID, user.Username, token.TypeRefresh, s.jwtSecret, s.refreshExpiration)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token:   accessToken,
		Refresh: refreshToken,
		User:    user,
	}, nil
}

// ValidateToken uses the token utility to validate tokens
func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	return token.ValidateToken(tokenString, s.jwtSecret)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

var AuthServiceInstance AuthServiceInterface
