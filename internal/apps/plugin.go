package apps

import (
	"github.com/fittrackapp/fittrack-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin defines the interface every app module must implement.
type Plugin interface {
	// ID returns the unique module identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts module routes on the given Fiber router.
	// The router already has the session guard applied.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
