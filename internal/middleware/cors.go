package middleware

import (
	"github.com/freementors/backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func CORS(cfg *config.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: false,
	})
}
