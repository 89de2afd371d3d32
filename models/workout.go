package models

import (
	"time"

	"gorm.io/gorm"
)

// Workout is a single logged exercise session, owned by exactly one user.
type Workout struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index;not null" json:"userId"`
	WorkoutName string         `gorm:"size:100;not null" json:"workoutName"`
	BodyPart    string         `gorm:"size:50;not null" json:"bodyPart"`
	Sets        int            `gorm:"not null" json:"sets"`
	Reps        int            `gorm:"not null" json:"reps"`
	Weight      float64        `gorm:"not null" json:"weight"` // kg
	Date        time.Time      `json:"date"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Workout) TableName() string {
	return "workouts"
}
