package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/freementors/backend/internal/config"
	"github.com/freementors/backend/internal/models"
	"github.com/freementors/backend/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrFieldsRequired     = errors.New("First name, last name, email and address are required")
	ErrPasswordTooShort   = errors.New("Password must be at least 8 characters")
	ErrEmailTaken         = errors.New("User with this email already exists")
	ErrInvalidCredentials = errors.New("Invalid email or Password")
	ErrTokenExpired       = errors.New("Token has expired")
	ErrInvalidToken       = errors.New("Invalid token")
	ErrUserNotFound       = errors.New("User not found")
	ErrNotAMentee         = errors.New("User is not a mentee")
	ErrNotAuthorized      = errors.New("Not authorized")
)

// AuthService is the identity and credential store: signup, password
// verification, token issue/resolve/refresh, mentor promotion and profile
// updates.
type AuthService struct {
	users store.Users
	cfg   *config.Config
}

func NewAuthService(users store.Users, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// SignupInput carries the fields of the createUser mutation.
type SignupInput struct {
	FirstName  string
	LastName   string
	Email      string
	Password   string
	Address    string
	Bio        string
	Occupation string
	Expertise  string
}

// ProfilePatch enumerates the optional updateUser fields. A nil field is left
// unchanged; a non-nil field is assigned, even when it points at an empty
// string.
type ProfilePatch struct {
	FirstName  *string
	LastName   *string
	Address    *string
	Bio        *string
	Occupation *string
	Expertise  *string
}

// TokenPayload is the decoded claim set returned by VerifyToken.
type TokenPayload struct {
	UserID string
	Iat    int64
	Exp    int64
}

// Signup registers a new mentee account. Email uniqueness is exact-match and
// ultimately enforced by the unique index.
func (s *AuthService) Signup(in SignupInput) (*models.User, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Address == "" {
		return nil, ErrFieldsRequired
	}
	if len(in.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.users.ByEmail(in.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Password:   string(hash),
		Address:    in.Address,
		Bio:        in.Bio,
		Occupation: in.Occupation,
		Expertise:  in.Expertise,
		Role:       models.RoleMentee,
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies an email/password pair. Both an unknown email and a
// wrong password fail with the same error.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.users.ByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken signs an HS256 bearer token for the user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.JWTExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ResolveToken turns a bearer token back into the user it was issued for.
func (s *AuthService) ResolveToken(tokenString string) (*models.User, error) {
	claims, err := s.parse(tokenString, true)
	if err != nil {
		return nil, err
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// VerifyToken decodes a valid token and returns its payload.
func (s *AuthService) VerifyToken(tokenString string) (*TokenPayload, error) {
	claims, err := s.parse(tokenString, true)
	if err != nil {
		return nil, err
	}
	return payloadFrom(claims), nil
}

// RefreshToken issues a fresh token for the subject of the presented one. An
// expired token is still refreshable while its issue time is within the
// refresh window.
func (s *AuthService) RefreshToken(tokenString string) (string, error) {
	claims, err := s.parse(tokenString, false)
	if err != nil {
		return "", err
	}

	iat, ok := claims["iat"].(float64)
	if !ok || time.Since(time.Unix(int64(iat), 0)) > s.cfg.JWTRefreshWindow {
		return "", ErrTokenExpired
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return "", ErrInvalidToken
	}
	user, err := s.users.ByID(userID)
	if err != nil {
		return "", ErrInvalidToken
	}
	return s.IssueToken(user)
}

// Promote flips a mentee to mentor. Staff only.
func (s *AuthService) Promote(actor *models.User, targetID string) (*models.User, error) {
	if !actor.IsStaff {
		return nil, ErrNotAuthorized
	}

	id, err := uuid.Parse(targetID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	target, err := s.users.ByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if target.Role != models.RoleMentee {
		return nil, ErrNotAMentee
	}

	target.Role = models.RoleMentor
	if err := s.users.Save(target); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return target, nil
}

// UpdateProfile applies a partial update to the actor's own record.
func (s *AuthService) UpdateProfile(actor *models.User, patch ProfilePatch) (*models.User, error) {
	if patch.FirstName != nil {
		actor.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		actor.LastName = *patch.LastName
	}
	if patch.Address != nil {
		actor.Address = *patch.Address
	}
	if patch.Bio != nil {
		actor.Bio = *patch.Bio
	}
	if patch.Occupation != nil {
		actor.Occupation = *patch.Occupation
	}
	if patch.Expertise != nil {
		actor.Expertise = *patch.Expertise
	}

	if err := s.users.Save(actor); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return actor, nil
}

// ListUsers returns the whole user directory. Staff only.
func (s *AuthService) ListUsers(actor *models.User) ([]models.User, error) {
	if !actor.IsStaff {
		return nil, ErrNotAuthorized
	}
	users, err := s.users.All()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListMentors returns every user with the mentor role.
func (s *AuthService) ListMentors() ([]models.User, error) {
	mentors, err := s.users.Mentors()
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}
	return mentors, nil
}

// MentorByID resolves an id to a mentor-role user. A malformed id, an unknown
// id and a non-mentor user all fail the same way.
func (s *AuthService) MentorByID(mentorID string) (*models.User, error) {
	id, err := uuid.Parse(mentorID)
	if err != nil {
		return nil, ErrMentorNotFound
	}
	user, err := s.users.ByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMentorNotFound
		}
		return nil, fmt.Errorf("failed to load mentor: %w", err)
	}
	if !user.IsMentor() {
		return nil, ErrMentorNotFound
	}
	return user, nil
}

// EnsureAdmin seeds a staff admin account at boot when none exists yet.
func (s *AuthService) EnsureAdmin(email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	exists, err := s.users.AnyStaff()
	if err != nil {
		return fmt.Errorf("failed to check for staff accounts: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := &models.User{
		FirstName: "Admin",
		LastName:  "Admin",
		Email:     email,
		Password:  string(hash),
		Address:   "n/a",
		Role:      models.RoleAdmin,
		IsStaff:   true,
	}
	if err := s.users.Create(admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	return nil
}

// parse verifies signature and signing method; claim validation (exp) is
// skipped when validateClaims is false so RefreshToken can accept expired
// tokens inside the refresh window.
func (s *AuthService) parse(tokenString string, validateClaims bool) (jwt.MapClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if !validateClaims {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func payloadFrom(claims jwt.MapClaims) *TokenPayload {
	p := &TokenPayload{}
	if sub, ok := claims["sub"].(string); ok {
		p.UserID = sub
	}
	if iat, ok := claims["iat"].(float64); ok {
		p.Iat = int64(iat)
	}
	if exp, ok := claims["exp"].(float64); ok {
		p.Exp = int64(exp)
	}
	return p
}
