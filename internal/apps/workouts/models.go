package workouts

import (
	"time"

	"github.com/google/uuid"
)

// Workout belongs to exactly one user; its exercises are created and deleted
// with it and carry no lifecycle of their own.
type Workout struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Date      time.Time  `gorm:"not null;index" json:"date"`
	Exercises []Exercise `gorm:"foreignKey:WorkoutID" json:"exercises"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Exercise struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkoutID uuid.UUID `gorm:"type:uuid;not null;index" json:"workoutId"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Sets      int       `json:"sets"`
	Reps      int       `json:"reps"`
	Weight    float64   `json:"weight"`
}

// --- DTOs ---

type ExerciseRequest struct {
	Name   string  `json:"name" validate:"required"`
	Sets   int     `json:"sets" validate:"gte=0"`
	Reps   int     `json:"reps" validate:"gte=0"`
	Weight float64 `json:"weight" validate:"gte=0"`
}

// WorkoutRequest is used for both create and replace: updates swap the full
// exercise set rather than diffing it, so exercise ids are regenerated on
// every write.
type WorkoutRequest struct {
	Name      string            `json:"name" validate:"required"`
	Date      time.Time         `json:"date" validate:"required"`
	Exercises []ExerciseRequest `json:"exercises" validate:"dive"`
}
