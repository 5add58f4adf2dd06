package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/freementors/backend/internal/models"
	"github.com/freementors/backend/internal/store"
	"github.com/google/uuid"
)

var (
	ErrMentorNotFound  = errors.New("Mentor not found")
	ErrSessionNotFound = errors.New("Session not found")
	ErrTopicRequired   = errors.New("Topic is required")
	// ErrInvalidStatus mirrors the wire message, listing the accepted literals.
	ErrInvalidStatus = fmt.Errorf("Invalid status. Choose from %s", strings.Join(models.SessionStatuses, ", "))
)

// SessionService is the session lifecycle engine: creation by mentees and
// mentor-authorized status changes. Status transitions are not constrained by
// the current state, only by membership in the status set.
type SessionService struct {
	users    store.Users
	sessions store.Sessions
}

func NewSessionService(users store.Users, sessions store.Sessions) *SessionService {
	return &SessionService{users: users, sessions: sessions}
}

// Create opens a pending session between the actor (mentee side) and the
// given mentor. The mentor id must resolve to a user whose role is mentor; a
// malformed id is treated the same as an unknown one.
func (s *SessionService) Create(actor *models.User, mentorID, topic, questions string) (*models.MentorshipSession, error) {
	if topic == "" {
		return nil, ErrTopicRequired
	}

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

	session := &models.MentorshipSession{
		MentorID:  mentor.ID,
		MenteeID:  actor.ID,
		Topic:     topic,
		Questions: questions,
		Status:    models.StatusPending,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	session.Mentor = *mentor
	session.Mentee = *actor
	return session, nil
}

// UpdateStatus sets a session's status. Only the session's mentor may call
// this, and the new value must be one of the four status literals.
func (s *SessionService) UpdateStatus(actor *models.User, sessionID, status string) (*models.MentorshipSession, error) {
	if !models.ValidSessionStatus(status) {
		return nil, ErrInvalidStatus
	}

	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	session, err := s.sessions.ByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.MentorID != actor.ID {
		return nil, ErrNotAuthorized
	}

	session.Status = status
	if err := s.sessions.Save(session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// ListAll returns every session. Staff only.
func (s *SessionService) ListAll(actor *models.User) ([]models.MentorshipSession, error) {
	if !actor.IsStaff {
		return nil, ErrNotAuthorized
	}
	sessions, err := s.sessions.All()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// ListForUser returns the sessions where the actor is either side.
func (s *SessionService) ListForUser(actor *models.User) ([]models.MentorshipSession, error) {
	sessions, err := s.sessions.ForUser(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}
