package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	LearningStyleVisual      = "visual"
	LearningStyleAuditory    = "auditory"
	LearningStyleReading     = "reading"
	LearningStyleKinesthetic = "kinesthetic"
	LearningStyleUnspecified = "unspecified"
)

// Interests is the jsonb payload behind UserLearningProfile.Interests.
type Interests struct {
	Topics      []string `json:"topics,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	CareerGoals []string `json:"career_goals,omitempty"`
}

type SkillLevelInfo struct {
	Level      int     `json:"level"` // same 4-point ordinal scale as course difficulty
	Confidence float64 `json:"confidence"`
	Evidence   int     `json:"evidence"`
}

type ProfilePreferences struct {
	ContentTypes         []string `json:"content_types,omitempty"`
	DurationPreference   string   `json:"duration_preference,omitempty"`
	DifficultyPreference string   `json:"difficulty_preference,omitempty"`
	Locale               string   `json:"locale,omitempty"`
}

type LearningBehavior struct {
	AvgSessionMinutes float64 `json:"avg_session_minutes,omitempty"`
	SessionsPerWeek   float64 `json:"sessions_per_week,omitempty"`
	CompletionRate    float64 `json:"completion_rate,omitempty"`
	EngagementScore   float64 `json:"engagement_score,omitempty"`
}

type CareerPath struct {
	CurrentRole    string   `json:"current_role,omitempty"`
	TargetRole     string   `json:"target_role,omitempty"`
	RequiredSkills []string `json:"required_skills,omitempty"`
	SkillGaps      []string `json:"skill_gaps,omitempty"`
}

type UserLearningProfile struct {
	ID                  uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID              uuid.UUID      `gorm:"type:uuid;not null;index:idx_profile_user_org,unique" json:"user_id"`
	User                *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	OrganizationID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_profile_user_org,unique" json:"organization_id"`
	Interests           datatypes.JSON `gorm:"type:jsonb;column:interests" json:"interests"`
	SkillLevels         datatypes.JSON `gorm:"type:jsonb;column:skill_levels" json:"skill_levels"`
	LearningStyle       string         `gorm:"column:learning_style;not null;default:unspecified" json:"learning_style"`
	Preferences         datatypes.JSON `gorm:"type:jsonb;column:preferences" json:"preferences"`
	LearningBehavior    datatypes.JSON `gorm:"type:jsonb;column:learning_behavior" json:"learning_behavior"`
	CareerPath          datatypes.JSON `gorm:"type:jsonb;column:career_path" json:"career_path"`
	ProfileCompleteness float64        `gorm:"column:profile_completeness;not null;default:0" json:"profile_completeness"`
	LastProfiledAt      time.Time      `gorm:"column:last_profiled_at;not null;default:now();index" json:"last_profiled_at"`
	CreatedAt           time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (UserLearningProfile) TableName() string { return "user_learning_profile" }
