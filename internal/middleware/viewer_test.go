package middleware_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/freementors/backend/internal/config"
	"github.com/freementors/backend/internal/middleware"
	"github.com/freementors/backend/internal/models"
	"github.com/freementors/backend/internal/services"
	"github.com/freementors/backend/internal/store"
	"github.com/gofiber/fiber/v2"
)

// newViewerApp wires the Viewer middleware in front of a probe handler that
// reports the resolved viewer's email, or "anonymous".
func newViewerApp(auth *services.AuthService) *fiber.App {
	app := fiber.New()
	app.Get("/probe", middleware.Viewer(auth), func(c *fiber.Ctx) error {
		if viewer := middleware.ViewerFrom(c); viewer != nil {
			return c.SendString(viewer.Email)
		}
		return c.SendString("anonymous")
	})
	return app
}

func TestViewerMiddleware(t *testing.T) {
	st := store.NewMemoryStore()
	auth := services.NewAuthService(st.Users, &config.Config{
		JWTSecret:        "test-secret",
		JWTExpiry:        time.Hour,
		JWTRefreshWindow: 168 * time.Hour,
	})

	user := &models.User{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "x",
		Address:   "somewhere",
		Role:      models.RoleMentee,
	}
	if err := st.Users.Create(user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := auth.IssueToken(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	app := newViewerApp(auth)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no_header", "", "anonymous"},
		{"valid_bearer", "Bearer " + token, "ada@example.com"},
		{"garbage_token", "Bearer garbage", "anonymous"},
		{"wrong_scheme", "Basic " + token, "anonymous"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/probe", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()

			// The middleware never rejects; authorization is per resolver.
			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			body, _ := io.ReadAll(resp.Body)
			if string(body) != tt.want {
				t.Errorf("viewer = %q, want %q", body, tt.want)
			}
		})
	}
}
