package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Quiz struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"lesson_id"`
	Lesson        *Lesson        `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	Question      string         `gorm:"column:question;not null" json:"question"`
	Options       datatypes.JSON `gorm:"type:jsonb;column:options" json:"options"`
	CorrectAnswer int            `gorm:"column:correct_answer;not null;default:0" json:"-"`
	Explanation   string         `gorm:"column:explanation" json:"explanation"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Quiz) TableName() string { return "quiz" }

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// QuizAttempt rows are append-only; Score is 0 or 100 in the current
// grading scheme but is stored as a float 0-100.
type QuizAttempt struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index:idx_attempt_user_time" json:"user_id"`
	User           *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	QuizID         uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Quiz           *Quiz     `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"quiz,omitempty"`
	SelectedAnswer int       `gorm:"column:selected_answer;not null" json:"selected_answer"`
	IsCorrect      bool      `gorm:"column:is_correct;not null;default:false" json:"is_correct"`
	Score          float64   `gorm:"column:score;not null;default:0" json:"score"`
	AttemptedAt    time.Time `gorm:"column:attempted_at;not null;index:idx_attempt_user_time" json:"attempted_at"`
}

func (QuizAttempt) TableName() string { return "quiz_attempt" }

func (a *QuizAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AttemptedAt.IsZero() {
		a.AttemptedAt = time.Now().UTC()
	}
	return nil
}
