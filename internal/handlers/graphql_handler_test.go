package handlers_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/freementors/backend/internal/config"
	"github.com/freementors/backend/internal/graph"
	"github.com/freementors/backend/internal/handlers"
	"github.com/freementors/backend/internal/middleware"
	"github.com/freementors/backend/internal/services"
	"github.com/freementors/backend/internal/store"
	"github.com/gofiber/fiber/v2"
)

func newGraphQLApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTExpiry:        time.Hour,
		JWTRefreshWindow: 168 * time.Hour,
	}
	auth := services.NewAuthService(st.Users, cfg)
	schema, err := graph.NewSchema(&graph.Resolver{
		Auth:     auth,
		Sessions: services.NewSessionService(st.Users, st.Sessions),
		Reviews:  services.NewReviewService(st.Users, st.Sessions, st.Reviews),
	})
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}

	app := fiber.New()
	app.Post("/graphql", middleware.Viewer(auth), handlers.NewGraphQLHandler(schema).Post)
	return app, st
}

func post(t *testing.T, app *fiber.App, body, bearer string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return resp.StatusCode, decoded
}

func TestGraphQLEnvelope(t *testing.T) {
	app, _ := newGraphQLApp(t)

	t.Run("malformed_body", func(t *testing.T) {
		status, body := post(t, app, `{not json`, "")
		if status != fiber.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
		if body["error"] != true {
			t.Errorf("body = %v, want error envelope", body)
		}
	})

	// Domain failures still travel as 200 + errors array, never transport
	// failures.
	t.Run("resolver_error_is_200", func(t *testing.T) {
		status, body := post(t, app, `{"query": "{ me { email } }"}`, "")
		if status != fiber.StatusOK {
			t.Errorf("status = %d, want 200", status)
		}
		errs, _ := body["errors"].([]interface{})
		if len(errs) == 0 {
			t.Fatal("expected errors array")
		}
		first, _ := errs[0].(map[string]interface{})
		if msg, _ := first["message"].(string); !strings.Contains(msg, "Authentication required") {
			t.Errorf("message = %q", msg)
		}
	})

	t.Run("mutation_roundtrip_with_bearer", func(t *testing.T) {
		status, body := post(t, app, `{"query": "mutation { createUser(firstName: \"Ada\", lastName: \"Lovelace\", email: \"ada@example.com\", password: \"correct-horse\", address: \"12 Analytical Way\") { user { email } } }"}`, "")
		if status != fiber.StatusOK {
			t.Fatalf("createUser status = %d", status)
		}
		if body["errors"] != nil {
			t.Fatalf("createUser errors: %v", body["errors"])
		}

		_, body = post(t, app, `{"query": "mutation { tokenAuth(email: \"ada@example.com\", password: \"correct-horse\") { token } }"}`, "")
		token, _ := body["data"].(map[string]interface{})["tokenAuth"].(map[string]interface{})["token"].(string)
		if token == "" {
			t.Fatalf("no token in %v", body)
		}

		_, body = post(t, app, `{"query": "{ me { email } }"}`, token)
		email := body["data"].(map[string]interface{})["me"].(map[string]interface{})["email"]
		if email != "ada@example.com" {
			t.Errorf("me.email = %v", email)
		}
	})

	t.Run("variables", func(t *testing.T) {
		status, body := post(t, app, `{"query": "query Mentor($id: ID!) { mentor(id: $id) { email } }", "variables": {"id": "not-a-uuid"}, "operationName": "Mentor"}`, "")
		if status != fiber.StatusOK {
			t.Fatalf("status = %d", status)
		}
		if body["errors"] == nil {
			t.Error("expected errors for anonymous mentor lookup")
		}
	})
}
