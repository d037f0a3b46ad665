package services

import (
	"errors"
	"fmt"

	"tasknest/tasknest/broker"
	"tasknest/tasknest/database"
	"tasknest/tasknest/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserServiceInterface interface {
	CreateUser(db *database.Database, username, password string) (models.User, error)
	GetUserById(db *database.Database, id string) (models.User, error)
}

type UserService struct {
	authService AuthServiceInterface
}

func NewUserService(authService AuthServiceInterface) *UserService {
	return &UserService{authService: authService}
}

// CreateUser registers a new account. No token is issued on signup; the
// caller is expected to log in afterwards.
func (s *UserService) CreateUser(db *database.Database, username, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	var existing models.User
	err := db.DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return models.User{}, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	passwordHash, err := s.authService.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}

	broker.PublishEvent(broker.UserCreated, map[string]interface{}{
		"user_id":  user.ID.String(),
		"username": user.Username,
	})

	return user, nil
}

func (s *UserService) GetUserById(db *database.Database, id string) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

var UserServiceInstance UserServiceInterface
