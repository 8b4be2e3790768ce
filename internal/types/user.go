package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Skill levels, learning paces and styles stored on the learner profile.
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"

	PaceSlow      = "slow"
	PaceModerate  = "moderate"
	PaceIntensive = "intensive"

	StyleVisual      = "visual"
	StyleAuditory    = "auditory"
	StyleKinesthetic = "kinesthetic"
	StyleReading     = "reading"
)

// User carries both account fields and the mutable learner profile.
// The profile fields (SkillLevel, LearningPace, PreferredContentType)
// are rewritten wholesale by the behavior analyzer.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	FirstName string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string    `gorm:"not null;column:last_name" json:"last_name"`

	// Learner profile
	Interests            datatypes.JSON `gorm:"type:jsonb;column:interests" json:"interests"`
	LearningStyle        string         `gorm:"column:learning_style;not null;default:'visual'" json:"learning_style"`
	SkillLevel           string         `gorm:"column:skill_level;not null;default:'beginner'" json:"skill_level"`
	LearningPace         string         `gorm:"column:learning_pace;not null;default:'moderate'" json:"learning_pace"`
	PreferredContentType string         `gorm:"column:preferred_content_type;not null;default:'video'" json:"preferred_content_type"`
	PreferredStudyTime   string         `gorm:"column:preferred_study_time;not null;default:'morning'" json:"preferred_study_time"`

	// Behavior counters
	LoginCount             int        `gorm:"column:login_count;not null;default:0" json:"login_count"`
	LastActiveAt           *time.Time `gorm:"column:last_active_at" json:"last_active_at,omitempty"`
	AverageSessionDuration float64    `gorm:"column:average_session_duration;not null;default:0" json:"average_session_duration"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
