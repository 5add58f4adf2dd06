package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/freementors/backend/internal/config"
	"github.com/freementors/backend/internal/models"
	"github.com/freementors/backend/internal/services"
	"github.com/freementors/backend/internal/store"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTExpiry:        time.Hour,
		JWTRefreshWindow: 168 * time.Hour,
	}
}

func signupInput(email string) services.SignupInput {
	return services.SignupInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "correct-horse",
		Address:   "12 Analytical Way",
	}
}

// seedStaff inserts a staff admin directly into the store.
func seedStaff(t *testing.T, users store.Users) *models.User {
	t.Helper()
	admin := &models.User{
		FirstName: "Root",
		LastName:  "Admin",
		Email:     "admin@example.com",
		Password:  "x",
		Address:   "HQ",
		Role:      models.RoleAdmin,
		IsStaff:   true,
	}
	if err := users.Create(admin); err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	return admin
}

func TestSignupTokenRoundTrip(t *testing.T) {
	st := store.NewMemoryStore()
	auth := services.NewAuthService(st.Users, testConfig())

	user, err := auth.Signup(signupInput("ada@example.com"))
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Role != models.RoleMentee {
		t.Errorf("new user role = %q, want mentee", user.Role)
	}
	if user.IsStaff {
		t.Error("new user must not be staff")
	}

	authed, err := auth.Authenticate("ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	token, err := auth.IssueToken(authed)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	resolved, err := auth.ResolveToken(token)
	if err != nil {
		t.Fatalf("resolve token: %v", err)
	}
	if resolved.ID != user.ID {
		t.Errorf("resolved user %s, want %s", resolved.ID, user.ID)
	}
}

func TestSignupValidation(t *testing.T) {
	st := store.NewMemoryStore()
	auth := services.NewAuthService(st.Users, testConfig())

	if _, err := auth.Signup(signupInput("ada@example.com")); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*services.SignupInput)
		wantErr error
	}{
		{"duplicate_email", func(in *services.SignupInput) {}, services.ErrEmailTaken},
		{"short_password", func(in *services.SignupInput) { in.Email = "b@example.com"; in.Password = "short" }, nil},
		{"missing_address", func(in *services.SignupInput) { in.Email = "c@example.com"; in.Address = "" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := signupInput("ada@example.com")
			tt.mutate(&in)
			_, err := auth.Signup(in)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	st := store.NewMemoryStore()
	auth := services.NewAuthService(st.Users, testConfig())
	if _, err := auth.Signup(signupInput("ada@example.com")); err != nil {
		t.Fatalf("signup: %v", err)
	}

	for _, tt := range []struct{ name, email, password string }{
		{"wrong_password", "ada@example.com", "wrong"},
		{"unknown_email", "nobody@example.com", "correct-horse"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := auth.Authenticate(tt.email, tt.password); !errors.Is(err, services.ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestResolveExpiredToken(t *testing.T) {
	st := store.NewMemoryStore()
	cfg := testConfig()
	auth := services.NewAuthService(st.Users, cfg)
	user, err := auth.Signup(signupInput("ada@example.com"))
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	// An issuer with a negative expiry produces already-expired tokens.
	expiredCfg := testConfig()
	expiredCfg.JWTExpiry = -time.Minute
	expired := services.NewAuthService(st.Users, expiredCfg)
	token, err := expired.IssueToken(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := auth.ResolveToken(token); !errors.Is(err, services.ErrTokenExpired) {
		t.Errorf("resolve expired: err = %v, want ErrTokenExpired", err)
	}

	// Still refreshable: iat is recent, well inside the refresh window.
	fresh, err := auth.RefreshToken(token)
	if err != nil {
		t.Fatalf("refresh expired token: %v", err)
	}
	resolved, err := auth.ResolveToken(fresh)
	if err != nil {
		t.Fatalf("resolve refreshed token: %v", err)
	}
	if resolved.ID != user.ID {
		t.Errorf("refreshed token resolves to %s, want %s", resolved.ID, user.ID)
	}
}

func TestResolveMalformedToken(t *testing.T) {
	st := store.NewMemoryStore()
	auth := services.NewAuthService(st.Users, testConfig())
	if _, err := auth.ResolveToken("not-a-jwt"); !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenPayload(t *testing.T) {
	st := store.NewMemoryStore()
	auth := services.NewAuthService(st.Users, testConfig())
	user, err := auth.Signup(signupInput("ada@example.com"))
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	token, err := auth.IssueToken(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	payload, err := auth.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if payload.UserID != user.ID.String() {
		t.Errorf("payload userId = %q, want %q", payload.UserID, user.ID)
	}
	if payload.Exp <= payload.Iat {
		t.Errorf("exp %d must be after iat %d", payload.Exp, payload.Iat)
	}
}

func TestPromote(t *testing.T) {
	st := store.NewMemoryStore()
	auth := services.NewAuthService(st.Users, testConfig())
	admin := seedStaff(t, st.Users)
	mentee, err := auth.Signup(signupInput("mentee@example.com"))
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	t.Run("non_staff_rejected", func(t *testing.T) {
		if _, err := auth.Promote(mentee, mentee.ID.String()); !errors.Is(err, services.ErrNotAuthorized) {
			t.Errorf("err = %v, want ErrNotAuthorized", err)
		}
	})

	t.Run("unknown_target", func(t *testing.T) {
		if _, err := auth.Promote(admin, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, services.ErrUserNotFound) {
			t.Errorf("err = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("staff_promotes_mentee", func(t *testing.T) {
		promoted, err := auth.Promote(admin, mentee.ID.String())
		if err != nil {
			t.Fatalf("promote: %v", err)
		}
		if promoted.Role != models.RoleMentor {
			t.Errorf("role = %q, want mentor", promoted.Role)
		}
	})

	t.Run("mentor_not_promotable_again", func(t *testing.T) {
		if _, err := auth.Promote(admin, mentee.ID.String()); !errors.Is(err, services.ErrNotAMentee) {
			t.Errorf("err = %v, want ErrNotAMentee", err)
		}
	})
}

func TestUpdateProfilePatchSemantics(t *testing.T) {
	st := store.NewMemoryStore()
	auth := services.NewAuthService(st.Users, testConfig())
	in := signupInput("ada@example.com")
	in.Bio = "original bio"
	in.Occupation = "engineer"
	user, err := auth.Signup(in)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	empty := ""
	newName := "Augusta"
	updated, err := auth.UpdateProfile(user, services.ProfilePatch{
		FirstName: &newName,
		Bio:       &empty, // explicit empty string clears the field
		// Occupation absent: must stay unchanged
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}

	if updated.FirstName != "Augusta" {
		t.Errorf("firstName = %q, want Augusta", updated.FirstName)
	}
	if updated.Bio != "" {
		t.Errorf("bio = %q, want cleared", updated.Bio)
	}
	if updated.Occupation != "engineer" {
		t.Errorf("occupation = %q, want unchanged", updated.Occupation)
	}

	stored, err := st.Users.ByID(user.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Occupation != "engineer" || stored.Bio != "" {
		t.Errorf("stored patch mismatch: bio=%q occupation=%q", stored.Bio, stored.Occupation)
	}
}

func TestEnsureAdmin(t *testing.T) {
	st := store.NewMemoryStore()
	auth := services.NewAuthService(st.Users, testConfig())

	if err := auth.EnsureAdmin("root@example.com", "super-secret-pw"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	admin, err := auth.Authenticate("root@example.com", "super-secret-pw")
	if err != nil {
		t.Fatalf("authenticate seeded admin: %v", err)
	}
	if !admin.IsStaff || admin.Role != models.RoleAdmin {
		t.Errorf("seeded admin: staff=%v role=%q", admin.IsStaff, admin.Role)
	}

	// Second call is a no-op once a staff account exists.
	if err := auth.EnsureAdmin("other@example.com", "pw-pw-pw-pw"); err != nil {
		t.Fatalf("second ensure admin: %v", err)
	}
	if _, err := st.Users.ByEmail("other@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Error("second admin must not be created")
	}
}
