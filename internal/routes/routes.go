package routes

import (
	"time"

	"github.com/freementors/backend/internal/config"
	"github.com/freementors/backend/internal/handlers"
	"github.com/freementors/backend/internal/middleware"
	"github.com/freementors/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	auth *services.AuthService,
	graphqlHandler *handlers.GraphQLHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/api/health", healthHandler.Check)

	// Single GraphQL endpoint. Rate limit: 60 req/min per IP. Bearer tokens
	// are resolved into a viewer here; per-operation authorization happens in
	// the resolvers.
	app.Post("/graphql",
		limiter.New(limiter.Config{
			Max:               60,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		}),
		middleware.Viewer(auth),
		graphqlHandler.Post,
	)
}
