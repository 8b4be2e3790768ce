package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PDFReadingProgress tracks page-by-page reading progress, one row per
// (user, course), persisted on page change and on exit.
type PDFReadingProgress struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_pdf_user_course,unique" json:"user_id"`
	User     *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index:idx_pdf_user_course,unique" json:"course_id"`
	Course   *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`

	LastPageRead int       `gorm:"column:last_page_read;not null;default:1" json:"last_page_read"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (PDFReadingProgress) TableName() string { return "pdf_reading_progress" }

func (p *PDFReadingProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ReadingSession records pages read per sitting, used for reading
// speed and habit stats.
type ReadingSession struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course   *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`

	StartedAt       time.Time  `gorm:"column:started_at;not null" json:"started_at"`
	EndedAt         *time.Time `gorm:"column:ended_at" json:"ended_at,omitempty"`
	PagesRead       int        `gorm:"column:pages_read;not null;default:0" json:"pages_read"`
	DurationMinutes float64    `gorm:"column:duration_minutes;not null;default:0" json:"duration_minutes"`
}

func (ReadingSession) TableName() string { return "reading_session" }

func (s *ReadingSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now().UTC()
	}
	return nil
}
