package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recommendation is one scored (user, course, generation event) row.
// FactorScores holds the five canonical factor names mapped to 0-100
// values; TotalScore is reproducible from them and the fixed weights.
type Recommendation struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_rec_user_score" json:"user_id"`
	User     *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course   *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`

	TotalScore   float64        `gorm:"column:total_score;not null;default:0;index:idx_rec_user_score" json:"total_score"`
	FactorScores datatypes.JSON `gorm:"type:jsonb;column:factor_scores" json:"factor_scores"`
	Reasons      datatypes.JSON `gorm:"type:jsonb;column:reasons" json:"reasons"`

	GeneratedAt time.Time `gorm:"column:generated_at;not null;index" json:"generated_at"`
	IsViewed    bool      `gorm:"column:is_viewed;not null;default:false" json:"is_viewed"`
	IsEnrolled  bool      `gorm:"column:is_enrolled;not null;default:false" json:"is_enrolled"`
}

func (Recommendation) TableName() string { return "recommendation" }

func (r *Recommendation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = time.Now().UTC()
	}
	return nil
}
