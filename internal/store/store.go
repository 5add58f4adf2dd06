// Package store defines the persistence ports for the three domain
// collections and their GORM-backed implementations. Services depend on these
// interfaces only, which keeps the business rules testable against the
// in-memory store.
package store

import (
	"errors"

	"github.com/freementors/backend/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a lookup resolves to no document.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// Users is the user collection.
type Users interface {
	ByID(id uuid.UUID) (*models.User, error)
	ByEmail(email string) (*models.User, error)
	All() ([]models.User, error)
	Mentors() ([]models.User, error)
	AnyStaff() (bool, error)
	Create(u *models.User) error
	Save(u *models.User) error
}

// Sessions is the mentorship session collection.
type Sessions interface {
	ByID(id uuid.UUID) (*models.MentorshipSession, error)
	All() ([]models.MentorshipSession, error)
	ForUser(userID uuid.UUID) ([]models.MentorshipSession, error)
	Create(s *models.MentorshipSession) error
	Save(s *models.MentorshipSession) error
}

// Reviews is the review collection.
type Reviews interface {
	ByID(id uuid.UUID) (*models.Review, error)
	All() ([]models.Review, error)
	Visible() ([]models.Review, error)
	VisibleForMentor(mentorID uuid.UUID) ([]models.Review, error)
	Create(r *models.Review) error
	Save(r *models.Review) error
}

// Store bundles the three collections behind one handle.
type Store struct {
	Users    Users
	Sessions Sessions
	Reviews  Reviews
}
