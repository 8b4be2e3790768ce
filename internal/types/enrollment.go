package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment links a user to a course. The (user, course) pair is
// unique; it is both the candidate exclusion filter for the
// recommendation engine and an input signal for the progress factor.
type Enrollment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_user_course,unique" json:"user_id"`
	User     *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index:idx_user_course,unique" json:"course_id"`
	Course   *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`

	EnrolledAt time.Time `gorm:"column:enrolled_at;not null" json:"enrolled_at"`

	LessonsCompleted   int     `gorm:"column:lessons_completed;not null;default:0" json:"lessons_completed"`
	ProgressPercentage float64 `gorm:"column:progress_percentage;not null;default:0" json:"progress_percentage"`
	CurrentLesson      int     `gorm:"column:current_lesson;not null;default:1" json:"current_lesson"`

	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	IsCompleted bool       `gorm:"column:is_completed;not null;default:false" json:"is_completed"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Enrollment) TableName() string { return "enrollment" }

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.EnrolledAt.IsZero() {
		e.EnrolledAt = time.Now().UTC()
	}
	return nil
}
