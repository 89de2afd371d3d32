package services

import (
	"errors"

	"github.com/iCodeLakshay/fit-tracker-backend/models"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetProfile returns the user with the workout collection expanded to full
// records, not just ids.
func (s *UserService) GetProfile(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Workouts").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create stores a user exactly as supplied. This backs the admin-only
// creation endpoint and applies no password hashing.
func (s *UserService) Create(user *models.User) error {
	return s.db.Create(user).Error
}

// UpdateBodyMetrics overwrites the three metric fields. Values are taken
// as-is; nothing recomputes or sanity-checks them.
func (s *UserService) UpdateBodyMetrics(id uint, weight, height, bmi float64) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Weight = weight
	user.Height = height
	user.BMI = bmi

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
