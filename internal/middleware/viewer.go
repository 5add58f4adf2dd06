package middleware

import (
	"strings"

	"github.com/freementors/backend/internal/models"
	"github.com/freementors/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

const viewerLocal = "viewer"

// Viewer resolves an `Authorization: Bearer <token>` header into a user
// record and stores it in the request locals. It never rejects the request:
// several GraphQL operations are public and the resolvers make the
// authentication decision themselves.
func Viewer(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if user, err := auth.ResolveToken(token); err == nil {
				c.Locals(viewerLocal, user)
			}
		}
		return c.Next()
	}
}

// ViewerFrom returns the authenticated user for the request, or nil.
func ViewerFrom(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(viewerLocal).(*models.User)
	return user
}
