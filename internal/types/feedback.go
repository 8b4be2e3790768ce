package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback types.
const (
	FeedbackSuccess     = "success"
	FeedbackWarning     = "warning"
	FeedbackInfo        = "info"
	FeedbackAchievement = "achievement"
)

type Feedback struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	FeedbackType string    `gorm:"column:feedback_type;not null" json:"feedback_type"`
	Title        string    `gorm:"column:title;not null" json:"title"`
	Message      string    `gorm:"column:message;not null" json:"message"`

	IsRead      bool      `gorm:"column:is_read;not null;default:false" json:"is_read"`
	IsDismissed bool      `gorm:"column:is_dismissed;not null;default:false" json:"is_dismissed"`
	CreatedAt   time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (Feedback) TableName() string { return "feedback" }

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
