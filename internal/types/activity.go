package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity types recorded in the behavior log.
const (
	ActivityLessonCompleted = "lesson_completed"
	ActivityQuizCompleted   = "quiz_completed"
	ActivityCourseEnrolled  = "course_enrolled"
	ActivityLearningTime    = "learning_time"
	ActivityLogin           = "login"
	ActivityContentViewed   = "content_viewed"
)

// Activity is an append-only behavior log entry. Rows are never
// mutated or deleted; readers query them in time windows only.
type Activity struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_activity_user_time" json:"user_id"`
	User         *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ActivityType string         `gorm:"column:activity_type;not null;index" json:"activity_type"`
	Details      datatypes.JSON `gorm:"type:jsonb;column:details" json:"details"`

	SessionDuration float64   `gorm:"column:session_duration;not null;default:0" json:"session_duration"`
	Timestamp       time.Time `gorm:"column:timestamp;not null;index:idx_activity_user_time" json:"timestamp"`
}

func (Activity) TableName() string { return "activity" }

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	return nil
}
