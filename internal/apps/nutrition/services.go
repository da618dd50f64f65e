package nutrition

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/fittrackapp/fittrack-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrAccessDenied covers both a missing food and one created by another
// user; the two are indistinguishable to the caller.
var ErrAccessDenied = errors.New("cannot log food you did not create")

type NutritionService struct {
	db *gorm.DB
}

func NewNutritionService(db *gorm.DB) *NutritionService {
	return &NutritionService{db: db}
}

// --- Goals ---

func (s *NutritionService) GetGoals(userID uuid.UUID) (*GoalsResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &GoalsResponse{CalorieGoal: user.CalorieGoal, ProteinGoal: user.ProteinGoal}, nil
}

// UpdateGoals applies a partial update: absent fields keep their value.
func (s *NutritionService) UpdateGoals(userID uuid.UUID, req UpdateGoalsRequest) (*GoalsResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.CalorieGoal != nil {
		updates["calorie_goal"] = *req.CalorieGoal
		user.CalorieGoal = req.CalorieGoal
	}
	if req.ProteinGoal != nil {
		updates["protein_goal"] = *req.ProteinGoal
		user.ProteinGoal = req.ProteinGoal
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return &GoalsResponse{CalorieGoal: user.CalorieGoal, ProteinGoal: user.ProteinGoal}, nil
}

// --- Food catalog ---

func (s *NutritionService) CreateFood(userID uuid.UUID, req CreateFoodRequest) (*Food, error) {
	food := Food{
		ID:          uuid.New(),
		CreatorID:   userID,
		Name:        req.Name,
		Calories:    req.Calories,
		Protein:     req.Protein,
		ServingSize: req.ServingSize,
	}

	if err := s.db.Create(&food).Error; err != nil {
		return nil, err
	}

	return &food, nil
}

// SearchFoods does a case-insensitive substring match over the caller's own
// foods; the catalog is not shared between users.
func (s *NutritionService) SearchFoods(userID uuid.UUID, query string) ([]Food, error) {
	var foods []Food
	pattern := "%" + strings.ToLower(query) + "%"
	err := s.db.
		Where("creator_id = ? AND LOWER(name) LIKE ?", userID, pattern).
		Order("name ASC").
		Find(&foods).Error
	return foods, err
}

// --- Meal logging ---

// LogMeal stores the entry's calories and protein as a snapshot of the food's
// current per-serving values times quantity, rounded to the nearest integer.
func (s *NutritionService) LogMeal(userID uuid.UUID, req LogMealRequest) (*MealEntry, error) {
	var food Food
	if err := s.db.First(&food, "id = ?", req.FoodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, err
	}

	if food.CreatorID != userID {
		return nil, ErrAccessDenied
	}

	entry := MealEntry{
		ID:       uuid.New(),
		UserID:   userID,
		FoodID:   food.ID,
		Date:     req.Date,
		MealType: req.MealType,
		Quantity: req.Quantity,
		Calories: int(math.Round(food.Calories * req.Quantity)),
		Protein:  int(math.Round(food.Protein * req.Quantity)),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	entry.Food = food
	return &entry, nil
}

// GetDailyLog returns the caller's entries whose date falls inside the given
// local day, oldest first, each joined with its food.
func (s *NutritionService) GetDailyLog(userID uuid.UUID, date time.Time) ([]MealEntry, error) {
	start := startOfDay(date)
	end := endOfDay(date)

	var entries []MealEntry
	err := s.db.Preload("Food").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}

// GetDailySummary aggregates calories and protein per day over the inclusive
// range, emitting a zero row for days without entries.
func (s *NutritionService) GetDailySummary(userID uuid.UUID, startDate, endDate time.Time) ([]DailySummaryRow, error) {
	start := startOfDay(startDate)
	end := endOfDay(endDate)

	var entries []MealEntry
	err := s.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	type sums struct{ calories, protein int }
	byDay := make(map[string]sums)
	for _, e := range entries {
		key := e.Date.In(start.Location()).Format("2006-01-02")
		agg := byDay[key]
		agg.calories += e.Calories
		agg.protein += e.Protein
		byDay[key] = agg
	}

	rows := []DailySummaryRow{}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		agg := byDay[key]
		rows = append(rows, DailySummaryRow{Date: key, Calories: agg.calories, Protein: agg.protein})
	}

	return rows, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(24*time.Hour - time.Millisecond)
}
