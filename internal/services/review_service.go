package services

import (
	"errors"
	"fmt"

	"github.com/freementors/backend/internal/models"
	"github.com/freementors/backend/internal/store"
	"github.com/google/uuid"
)

var (
	ErrInvalidSessionID  = errors.New("Invalid session id")
	ErrInvalidRating     = errors.New("Rating must be between 1 and 5")
	ErrSessionIncomplete = errors.New("Cannot review an incomplete session")
	ErrReviewExists      = errors.New("Review already exists for this session")
	ErrReviewNotFound    = errors.New("Review not found")
)

// ReviewService creates and moderates mentee feedback on completed sessions.
type ReviewService struct {
	users    store.Users
	sessions store.Sessions
	reviews  store.Reviews
}

func NewReviewService(users store.Users, sessions store.Sessions, reviews store.Reviews) *ReviewService {
	return &ReviewService{users: users, sessions: sessions, reviews: reviews}
}

// Create records the actor's review of a completed session. The unique index
// on session_id is the authoritative one-review-per-session guard; a
// duplicate-key insert maps to ErrReviewExists.
func (s *ReviewService) Create(actor *models.User, sessionID string, rating int, content string) (*models.Review, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, ErrInvalidSessionID
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	session, err := s.sessions.ByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.MenteeID != actor.ID {
		return nil, ErrNotAuthorized
	}
	if session.Status != models.StatusCompleted {
		return nil, ErrSessionIncomplete
	}

	review := &models.Review{
		SessionID: session.ID,
		Rating:    rating,
		Content:   content,
		IsVisible: true,
	}
	if err := s.reviews.Create(review); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrReviewExists
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	review.Session = *session
	return review, nil
}

// ListAll returns every review for staff; everyone else only sees visible
// ones. Filtering, not denial.
func (s *ReviewService) ListAll(actor *models.User) ([]models.Review, error) {
	var (
		reviews []models.Review
		err     error
	)
	if actor != nil && actor.IsStaff {
		reviews, err = s.reviews.All()
	} else {
		reviews, err = s.reviews.Visible()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// ListForMentor returns the visible reviews of a mentor's sessions. This
// backs the public mentor profile page and requires no authentication.
func (s *ReviewService) ListForMentor(mentorID string) ([]models.Review, error) {
	id, err := uuid.Parse(mentorID)
	if err != nil {
		return nil, ErrMentorNotFound
	}
	mentor, err := s.users.ByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMentorNotFound
		}
		return nil, fmt.Errorf("failed to load mentor: %w", err)
	}
	if !mentor.IsMentor() {
		return nil, ErrMentorNotFound
	}

	reviews, err := s.reviews.VisibleForMentor(mentor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// SetVisibility toggles a review's visibility. Staff only.
func (s *ReviewService) SetVisibility(actor *models.User, reviewID string, visible bool) (*models.Review, error) {
	if !actor.IsStaff {
		return nil, ErrNotAuthorized
	}

	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, ErrReviewNotFound
	}
	review, err := s.reviews.ByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}

	review.IsVisible = visible
	if err := s.reviews.Save(review); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}
	return review, nil
}
