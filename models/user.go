package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an account holder. The password column stores a bcrypt hash and
// is never serialized into responses.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Weight    float64        `gorm:"default:0" json:"weight"` // kg
	Height    float64        `gorm:"default:0" json:"height"` // cm
	BMI       float64        `gorm:"default:0" json:"bmi"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Workouts owned by this user, in creation order.
	Workouts []Workout `gorm:"foreignKey:UserID" json:"workouts"`
}

func (User) TableName() string {
	return "users"
}
