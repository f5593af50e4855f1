package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Difficulty levels form a 4-point ordinal scale used by the scoring core.
const (
	DifficultyBeginner     = 0
	DifficultyIntermediate = 1
	DifficultyAdvanced     = 2
	DifficultyExpert       = 3
)

type Course struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrganizationID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	Title           string         `gorm:"column:title;not null" json:"title"`
	Description     string         `gorm:"column:description" json:"description"`
	Category        string         `gorm:"column:category;index" json:"category"`
	Tags            datatypes.JSON `gorm:"type:jsonb;column:tags" json:"tags"`
	DifficultyLevel int            `gorm:"column:difficulty_level;not null;default:0" json:"difficulty_level"`
	DurationMinutes int            `gorm:"column:duration_minutes" json:"duration_minutes"`
	ContentType     string         `gorm:"column:content_type;index" json:"content_type"`
	Published       bool           `gorm:"column:published;not null;default:false;index" json:"published"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Course) TableName() string { return "course" }

type Enrollment struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_enrollment_user_course,unique" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_enrollment_user_course,unique;index" json:"course_id"`
	Course      *Course        `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Status      string         `gorm:"column:status;not null;default:active;index" json:"status"`
	Progress    float64        `gorm:"column:progress;not null;default:0" json:"progress"`
	EnrolledAt  time.Time      `gorm:"column:enrolled_at;not null;default:now();index" json:"enrolled_at"`
	CompletedAt *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Enrollment) TableName() string { return "enrollment" }

const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentDropped   = "dropped"
)

type AssessmentResult struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	Course    *Course        `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Skill     string         `gorm:"column:skill;not null;index" json:"skill"`
	Score     float64        `gorm:"column:score;not null" json:"score"`
	Passed    bool           `gorm:"column:passed;not null" json:"passed"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (AssessmentResult) TableName() string { return "assessment_result" }
