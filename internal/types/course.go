package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course categories.
const (
	CategoryWebDevelopment   = "web_development"
	CategoryDataScience      = "data_science"
	CategoryMachineLearning  = "machine_learning"
	CategoryMobileDevelopment = "mobile_development"
	CategoryCloudComputing   = "cloud_computing"
	CategoryAI               = "artificial_intelligence"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	Category    string    `gorm:"column:category;not null;index" json:"category"`
	Level       string    `gorm:"column:level;not null" json:"level"`

	DurationHours int `gorm:"column:duration_hours;not null;default:0" json:"duration_hours"`
	LessonsCount  int `gorm:"column:lessons_count;not null;default:0" json:"lessons_count"`

	// Popularity metrics, updated on enrollment events
	EnrolledCount int     `gorm:"column:enrolled_count;not null;default:0" json:"enrolled_count"`
	Rating        float64 `gorm:"column:rating;not null;default:0" json:"rating"`

	// Content metadata consumed by the scoring factors
	Topics       datatypes.JSON `gorm:"type:jsonb;column:topics" json:"topics"`
	ContentTypes datatypes.JSON `gorm:"type:jsonb;column:content_types" json:"content_types"`

	// PDF course fields
	PDFURL      string `gorm:"column:pdf_url" json:"pdf_url"`
	TotalPages  int    `gorm:"column:total_pages;not null;default:1" json:"total_pages"`
	ChatSummary string `gorm:"column:chat_summary" json:"chat_summary"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Course) TableName() string { return "course" }

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
