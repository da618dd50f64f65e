package nutrition

import (
	"github.com/fittrackapp/fittrack-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type App struct{}

func New() *App {
	return &App{}
}

func (a *App) ID() string {
	return "nutrition"
}

func (a *App) Models() []interface{} {
	return []interface{}{&Food{}, &MealEntry{}}
}

func (a *App) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewNutritionService(db)
	handler := NewNutritionHandler(service)

	group := router.Group("/nutrition")
	group.Get("/goals", handler.GetGoals)
	group.Patch("/goals", handler.UpdateGoals)
	group.Post("/food", handler.CreateFood)
	group.Get("/food", handler.SearchFoods)
	group.Post("/meal", handler.LogMeal)
	group.Get("/log", handler.GetDailyLog)
	group.Get("/stats/summary", handler.GetDailySummary)
}
