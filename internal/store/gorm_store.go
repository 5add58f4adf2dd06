package store

import (
	"errors"

	"github.com/freementors/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewGormStore wires the three collections onto one *gorm.DB.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:    &gormUsers{db: db},
		Sessions: &gormSessions{db: db},
		Reviews:  &gormReviews{db: db},
	}
}

// mapErr translates GORM errors onto the store sentinels.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

type gormUsers struct {
	db *gorm.DB
}

func (s *gormUsers) ByID(id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *gormUsers) ByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "email = ?", email).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *gormUsers) All() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("created_at").Find(&users).Error
	return users, mapErr(err)
}

func (s *gormUsers) Mentors() ([]models.User, error) {
	var users []models.User
	err := s.db.Where("role = ?", models.RoleMentor).Order("created_at").Find(&users).Error
	return users, mapErr(err)
}

func (s *gormUsers) AnyStaff() (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).Where("is_staff = true").Count(&count).Error
	return count > 0, mapErr(err)
}

func (s *gormUsers) Create(u *models.User) error {
	return mapErr(s.db.Create(u).Error)
}

func (s *gormUsers) Save(u *models.User) error {
	return mapErr(s.db.Save(u).Error)
}

type gormSessions struct {
	db *gorm.DB
}

func (s *gormSessions) ByID(id uuid.UUID) (*models.MentorshipSession, error) {
	var sess models.MentorshipSession
	err := s.db.Preload("Mentor").Preload("Mentee").First(&sess, "id = ?", id).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &sess, nil
}

func (s *gormSessions) All() ([]models.MentorshipSession, error) {
	var sessions []models.MentorshipSession
	err := s.db.Preload("Mentor").Preload("Mentee").Order("created_at").Find(&sessions).Error
	return sessions, mapErr(err)
}

func (s *gormSessions) ForUser(userID uuid.UUID) ([]models.MentorshipSession, error) {
	var sessions []models.MentorshipSession
	err := s.db.Preload("Mentor").Preload("Mentee").
		Where("mentor_id = ? OR mentee_id = ?", userID, userID).
		Order("created_at").Find(&sessions).Error
	return sessions, mapErr(err)
}

func (s *gormSessions) Create(sess *models.MentorshipSession) error {
	return mapErr(s.db.Create(sess).Error)
}

func (s *gormSessions) Save(sess *models.MentorshipSession) error {
	return mapErr(s.db.Save(sess).Error)
}

type gormReviews struct {
	db *gorm.DB
}

func (s *gormReviews) preloaded() *gorm.DB {
	return s.db.Preload("Session").Preload("Session.Mentor").Preload("Session.Mentee")
}

func (s *gormReviews) ByID(id uuid.UUID) (*models.Review, error) {
	var r models.Review
	if err := s.preloaded().First(&r, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &r, nil
}

func (s *gormReviews) All() ([]models.Review, error) {
	var reviews []models.Review
	err := s.preloaded().Order("created_at").Find(&reviews).Error
	return reviews, mapErr(err)
}

func (s *gormReviews) Visible() ([]models.Review, error) {
	var reviews []models.Review
	err := s.preloaded().Where("is_visible = true").Order("created_at").Find(&reviews).Error
	return reviews, mapErr(err)
}

func (s *gormReviews) VisibleForMentor(mentorID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := s.preloaded().
		Joins("JOIN mentorship_sessions ON mentorship_sessions.id = reviews.session_id").
		Where("mentorship_sessions.mentor_id = ? AND reviews.is_visible = true", mentorID).
		Order("reviews.created_at").Find(&reviews).Error
	return reviews, mapErr(err)
}

func (s *gormReviews) Create(r *models.Review) error {
	return mapErr(s.db.Create(r).Error)
}

func (s *gormReviews) Save(r *models.Review) error {
	return mapErr(s.db.Save(r).Error)
}
