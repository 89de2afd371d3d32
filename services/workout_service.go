package services

import (
	"errors"
	"time"

	"github.com/iCodeLakshay/fit-tracker-backend/models"

	"gorm.io/gorm"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrOwnerNotFound   = errors.New("owner user not found")
)

type WorkoutService struct {
	db *gorm.DB
}

func NewWorkoutService(db *gorm.DB) *WorkoutService {
	return &WorkoutService{db: db}
}

// List returns the workouts owned by the given user, in creation order.
// Scoping is always by authenticated identity, never by a URL parameter.
func (s *WorkoutService) List(userID uint) ([]models.Workout, error) {
	workouts := []models.Workout{}
	err := s.db.Where("user_id = ?", userID).Find(&workouts).Error
	return workouts, err
}

// Create persists a workout for an existing owner. The row insert and the
// membership in the owner's collection are one transactional unit.
func (s *WorkoutService) Create(workout *models.Workout) error {
	if workout.Date.IsZero() {
		workout.Date = time.Now()
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.First(&owner, workout.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOwnerNotFound
			}
			return err
		}
		return tx.Create(workout).Error
	})
}

// WorkoutUpdate carries the fields a caller may change. Zero values are
// left untouched.
type WorkoutUpdate struct {
	WorkoutName string    `json:"workoutName"`
	BodyPart    string    `json:"bodyPart"`
	Sets        int       `json:"sets"`
	Reps        int       `json:"reps"`
	Weight      float64   `json:"weight"`
	Date        time.Time `json:"date"`
}

// Update merges the supplied fields into the caller's workout. An id owned
// by someone else reads as not found.
func (s *WorkoutService) Update(id, callerID uint, input WorkoutUpdate) (*models.Workout, error) {
	var workout models.Workout
	err := s.db.Where("id = ? AND user_id = ?", id, callerID).First(&workout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	if input.WorkoutName != "" {
		workout.WorkoutName = input.WorkoutName
	}
	if input.BodyPart != "" {
		workout.BodyPart = input.BodyPart
	}
	if input.Sets > 0 {
		workout.Sets = input.Sets
	}
	if input.Reps > 0 {
		workout.Reps = input.Reps
	}
	if input.Weight > 0 {
		workout.Weight = input.Weight
	}
	if !input.Date.IsZero() {
		workout.Date = input.Date
	}

	if err := s.db.Save(&workout).Error; err != nil {
		return nil, err
	}
	return &workout, nil
}

// Delete removes the caller's workout. Dropping the row also removes it
// from the owner's collection, so there is no second step to get out of
// sync. A missing id is treated as success and yields a nil workout.
func (s *WorkoutService) Delete(id, callerID uint) (*models.Workout, error) {
	var workout models.Workout
	err := s.db.Where("id = ? AND user_id = ?", id, callerID).First(&workout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := s.db.Delete(&workout).Error; err != nil {
		return nil, err
	}
	return &workout, nil
}

// Recent returns up to limit workouts newest first, for prompt grounding.
func (s *WorkoutService) Recent(userID uint, limit int) ([]models.Workout, error) {
	var workouts []models.Workout
	err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&workouts).Error
	return workouts, err
}
