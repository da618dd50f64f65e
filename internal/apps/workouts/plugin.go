package workouts

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
	return "workouts"
}

func (a *App) Models() []interface{} {
	return []interface{}{&Workout{}, &Exercise{}}
}

func (a *App) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewWorkoutService(db)
	handler := NewWorkoutHandler(service)

	group := router.Group("/workouts")
	group.Post("/", handler.Create)
	group.Get("/", handler.List)
	group.Get("/:id", handler.Get)
	group.Patch("/:id", handler.Replace)
	group.Delete("/:id", handler.Delete)
}
