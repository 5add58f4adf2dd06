package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Every signup starts as a mentee; staff can promote mentees to
// mentors. Admins are created out-of-band by the bootstrap seed.
const (
	RoleMentor = "mentor"
	RoleMentee = "mentee"
	RoleAdmin  = "admin"
)

// User is a platform account: mentee, mentor or admin.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirstName  string    `gorm:"size:100;not null" json:"first_name"`
	LastName   string    `gorm:"size:100;not null" json:"last_name"`
	Email      string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	Address    string    `gorm:"size:255;not null" json:"address"`
	Bio        string    `gorm:"type:text" json:"bio"`
	Occupation string    `gorm:"size:100" json:"occupation"`
	Expertise  string    `gorm:"size:100" json:"expertise"`
	Role       string    `gorm:"size:20;default:'mentee'" json:"user_type"`
	IsStaff    bool      `gorm:"default:false" json:"is_staff"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsMentor reports whether the user can be the mentor side of a session.
func (u *User) IsMentor() bool { return u.Role == RoleMentor }
