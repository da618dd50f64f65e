package nutrition

import (
	"time"

	"github.com/google/uuid"
)

// Food is a per-user catalog entry; it is only visible to its creator.
// Calories and protein are per serving.
type Food struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"creatorId"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Calories    float64   `gorm:"not null" json:"calories"`
	Protein     float64   `gorm:"not null" json:"protein"`
	ServingSize string    `gorm:"size:100" json:"servingSize"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MealEntry stores calories and protein derived at log time
// (food value x quantity, rounded). Editing the food afterwards does not
// touch entries already logged.
type MealEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	FoodID    uuid.UUID `gorm:"type:uuid;not null;index" json:"foodId"`
	Food      Food      `gorm:"foreignKey:FoodID" json:"food"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	MealType  string    `gorm:"size:50;not null" json:"mealType"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	Calories  int       `gorm:"not null" json:"calories"`
	Protein   int       `gorm:"not null" json:"protein"`
	CreatedAt time.Time `json:"created_at"`
}

// --- DTOs ---

type GoalsResponse struct {
	CalorieGoal *int `json:"calorieGoal"`
	ProteinGoal *int `json:"proteinGoal"`
}

type UpdateGoalsRequest struct {
	CalorieGoal *int `json:"calorieGoal" validate:"omitempty,gte=0"`
	ProteinGoal *int `json:"proteinGoal" validate:"omitempty,gte=0"`
}

type CreateFoodRequest struct {
	Name        string  `json:"name" validate:"required"`
	Calories    float64 `json:"calories" validate:"gte=0"`
	Protein     float64 `json:"protein" validate:"gte=0"`
	ServingSize string  `json:"servingSize" validate:"required"`
}

type LogMealRequest struct {
	FoodID   uuid.UUID `json:"foodId" validate:"required"`
	Date     time.Time `json:"date" validate:"required"`
	MealType string    `json:"mealType" validate:"required"`
	Quantity float64   `json:"quantity" validate:"gt=0"`
}

// DailySummaryRow is one day of the contiguous summary series; days without
// entries are present with zero sums so the frontend can chart the range.
type DailySummaryRow struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
	Protein  int    `json:"protein"`
}
