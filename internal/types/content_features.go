package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EngagementMetrics struct {
	AvgRating       float64 `json:"avg_rating,omitempty"`
	CompletionRate  float64 `json:"completion_rate,omitempty"`
	EnrollmentCount int     `json:"enrollment_count,omitempty"`
}

type ContentFeatures struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"course_id"`
	Course            *Course        `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Topics            datatypes.JSON `gorm:"type:jsonb;column:topics" json:"topics"`
	Skills            datatypes.JSON `gorm:"type:jsonb;column:skills" json:"skills"`
	Categories        datatypes.JSON `gorm:"type:jsonb;column:categories" json:"categories"`
	DifficultyLevel   int            `gorm:"column:difficulty_level;not null;default:0" json:"difficulty_level"`
	Prerequisites     datatypes.JSON `gorm:"type:jsonb;column:prerequisites" json:"prerequisites"`
	Characteristics   datatypes.JSON `gorm:"type:jsonb;column:characteristics" json:"characteristics"`
	EngagementMetrics datatypes.JSON `gorm:"type:jsonb;column:engagement_metrics" json:"engagement_metrics"`
	LastAnalyzedAt    time.Time      `gorm:"column:last_analyzed_at;not null;default:now();index" json:"last_analyzed_at"`
	CreatedAt         time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ContentFeatures) TableName() string { return "content_features" }
