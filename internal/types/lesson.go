package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lesson content types. The same values appear in Course.ContentTypes
// and in Activity details, so the analyzer and scorer share them.
const (
	ContentText        = "text"
	ContentVideo       = "video"
	ContentQuiz        = "quiz"
	ContentInteractive = "interactive"
)

type Lesson struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course      *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	ContentType string    `gorm:"column:content_type;not null" json:"content_type"`

	ContentText   string `gorm:"column:content_text" json:"content_text"`
	VideoURL      string `gorm:"column:video_url" json:"video_url"`
	VideoDuration int    `gorm:"column:video_duration;not null;default:0" json:"video_duration"`

	Order int `gorm:"column:sort_order;not null;default:0" json:"order"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Lesson) TableName() string { return "lesson" }

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
