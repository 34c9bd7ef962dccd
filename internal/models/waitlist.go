package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const WaitlistSubmissionsTable = "waitlist_submissions"

// WaitlistSubmission is one captured email address. Rows are inserted once and never updated.
type WaitlistSubmission struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id,omitempty"`
	Email     string    `gorm:"not null;uniqueIndex" json:"email"`
	CreatedAt time.Time `gorm:"not null" json:"created_at,omitzero"`
	Source    *string   `json:"source"`
	IPAddress *string   `gorm:"column:ip_address" json:"ip_address,omitempty"`
	UserAgent *string   `json:"user_agent"`
}

func (WaitlistSubmission) TableName() string {
	return WaitlistSubmissionsTable
}

func (s *WaitlistSubmission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
