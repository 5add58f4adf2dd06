package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is mentee feedback on one completed session. The unique index on
// SessionID is the authoritative one-review-per-session guard; the service
// layer treats a duplicate-key insert as "review already exists".
type Review struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SessionID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex" json:"session_id"`
	Session   MentorshipSession `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"session"`
	Rating    int               `gorm:"not null" json:"rating"`
	Content   string            `gorm:"type:text;not null" json:"content"`
	IsVisible bool              `gorm:"default:true" json:"is_visible"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
