package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the account record. Password is nil for accounts created through
// a federated provider; such accounts can never authenticate with a password.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password    *string   `gorm:"size:255" json:"-"`
	CalorieGoal *int      `json:"calorieGoal"`
	ProteinGoal *int      `json:"proteinGoal"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
