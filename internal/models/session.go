package models

import (
	"time"

	"github.com/google/uuid"
)

// Session statuses. Transitions are intentionally unconstrained beyond
// membership in this set; only the session's mentor may change the status.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusDeclined  = "declined"
	StatusCompleted = "completed"
)

// SessionStatuses lists the accepted status literals in display order.
var SessionStatuses = []string{StatusPending, StatusAccepted, StatusDeclined, StatusCompleted}

// ValidSessionStatus reports whether s is one of the accepted status literals.
func ValidSessionStatus(s string) bool {
	for _, v := range SessionStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// MentorshipSession is a single engagement request between a mentee and a
// mentor. Deleting either participant cascades to the session.
type MentorshipSession struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MentorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"mentor_id"`
	Mentor    User      `gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE" json:"mentor"`
	MenteeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"mentee_id"`
	Mentee    User      `gorm:"foreignKey:MenteeID;constraint:OnDelete:CASCADE" json:"mentee"`
	Topic     string    `gorm:"size:255;not null" json:"topic"`
	Questions string    `gorm:"type:text" json:"questions"`
	Status    string    `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
