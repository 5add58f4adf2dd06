package store

import (
	"sync"
	"time"

	"github.com/freementors/backend/internal/models"
	"github.com/google/uuid"
)

// NewMemoryStore returns an in-process Store with the same constraint
// semantics as the Postgres-backed one (unique email, unique review per
// session). Used by unit tests and local experiments.
func NewMemoryStore() *Store {
	m := &memory{
		users:    make(map[uuid.UUID]models.User),
		sessions: make(map[uuid.UUID]models.MentorshipSession),
		reviews:  make(map[uuid.UUID]models.Review),
	}
	return &Store{
		Users:    &memoryUsers{m},
		Sessions: &memorySessions{m},
		Reviews:  &memoryReviews{m},
	}
}

type memory struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]models.User
	sessions     map[uuid.UUID]models.MentorshipSession
	reviews      map[uuid.UUID]models.Review
	userOrder    []uuid.UUID
	sessionOrder []uuid.UUID
	reviewOrder  []uuid.UUID
}

func (m *memory) hydrateSession(s models.MentorshipSession) models.MentorshipSession {
	s.Mentor = m.users[s.MentorID]
	s.Mentee = m.users[s.MenteeID]
	return s
}

func (m *memory) hydrateReview(r models.Review) models.Review {
	r.Session = m.hydrateSession(m.sessions[r.SessionID])
	return r
}

type memoryUsers struct{ m *memory }

func (s *memoryUsers) ByID(id uuid.UUID) (*models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *memoryUsers) ByEmail(email string) (*models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, id := range s.m.userOrder {
		if u := s.m.users[id]; u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryUsers) All() ([]models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	users := make([]models.User, 0, len(s.m.userOrder))
	for _, id := range s.m.userOrder {
		users = append(users, s.m.users[id])
	}
	return users, nil
}

func (s *memoryUsers) Mentors() ([]models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var mentors []models.User
	for _, id := range s.m.userOrder {
		if u := s.m.users[id]; u.Role == models.RoleMentor {
			mentors = append(mentors, u)
		}
	}
	return mentors, nil
}

func (s *memoryUsers) AnyStaff() (bool, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, u := range s.m.users {
		if u.IsStaff {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryUsers) Create(u *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, existing := range s.m.users {
		if existing.Email == u.Email {
			return ErrDuplicate
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	s.m.users[u.ID] = *u
	s.m.userOrder = append(s.m.userOrder, u.ID)
	return nil
}

func (s *memoryUsers) Save(u *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.users[u.ID]; !ok {
		return ErrNotFound
	}
	u.UpdatedAt = time.Now().UTC()
	s.m.users[u.ID] = *u
	return nil
}

type memorySessions struct{ m *memory }

func (s *memorySessions) ByID(id uuid.UUID) (*models.MentorshipSession, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	sess, ok := s.m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	hydrated := s.m.hydrateSession(sess)
	return &hydrated, nil
}

func (s *memorySessions) All() ([]models.MentorshipSession, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	sessions := make([]models.MentorshipSession, 0, len(s.m.sessionOrder))
	for _, id := range s.m.sessionOrder {
		sessions = append(sessions, s.m.hydrateSession(s.m.sessions[id]))
	}
	return sessions, nil
}

func (s *memorySessions) ForUser(userID uuid.UUID) ([]models.MentorshipSession, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var sessions []models.MentorshipSession
	for _, id := range s.m.sessionOrder {
		sess := s.m.sessions[id]
		if sess.MentorID == userID || sess.MenteeID == userID {
			sessions = append(sessions, s.m.hydrateSession(sess))
		}
	}
	return sessions, nil
}

func (s *memorySessions) Create(sess *models.MentorshipSession) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if sess.ID == uuid.Nil {
		sess.ID = uuid.New()
	}
	if sess.Status == "" {
		sess.Status = models.StatusPending
	}
	now := time.Now().UTC()
	sess.CreatedAt, sess.UpdatedAt = now, now
	s.m.sessions[sess.ID] = *sess
	s.m.sessionOrder = append(s.m.sessionOrder, sess.ID)
	return nil
}

func (s *memorySessions) Save(sess *models.MentorshipSession) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.sessions[sess.ID]; !ok {
		return ErrNotFound
	}
	sess.UpdatedAt = time.Now().UTC()
	s.m.sessions[sess.ID] = *sess
	return nil
}

type memoryReviews struct{ m *memory }

func (s *memoryReviews) ByID(id uuid.UUID) (*models.Review, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	r, ok := s.m.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	hydrated := s.m.hydrateReview(r)
	return &hydrated, nil
}

func (s *memoryReviews) All() ([]models.Review, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	reviews := make([]models.Review, 0, len(s.m.reviewOrder))
	for _, id := range s.m.reviewOrder {
		reviews = append(reviews, s.m.hydrateReview(s.m.reviews[id]))
	}
	return reviews, nil
}

func (s *memoryReviews) Visible() ([]models.Review, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var reviews []models.Review
	for _, id := range s.m.reviewOrder {
		if r := s.m.reviews[id]; r.IsVisible {
			reviews = append(reviews, s.m.hydrateReview(r))
		}
	}
	return reviews, nil
}

func (s *memoryReviews) VisibleForMentor(mentorID uuid.UUID) ([]models.Review, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var reviews []models.Review
	for _, id := range s.m.reviewOrder {
		r := s.m.reviews[id]
		if !r.IsVisible {
			continue
		}
		if sess, ok := s.m.sessions[r.SessionID]; ok && sess.MentorID == mentorID {
			reviews = append(reviews, s.m.hydrateReview(r))
		}
	}
	return reviews, nil
}

func (s *memoryReviews) Create(r *models.Review) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, existing := range s.m.reviews {
		if existing.SessionID == r.SessionID {
			return ErrDuplicate
		}
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	now := time.Now().UTC()
	r.CreatedAt, r.UpdatedAt = now, now
	s.m.reviews[r.ID] = *r
	s.m.reviewOrder = append(s.m.reviewOrder, r.ID)
	return nil
}

func (s *memoryReviews) Save(r *models.Review) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.reviews[r.ID]; !ok {
		return ErrNotFound
	}
	r.UpdatedAt = time.Now().UTC()
	s.m.reviews[r.ID] = *r
	return nil
}
