package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ModelTypeContentBased  = "content_based"
	ModelTypeCollaborative = "collaborative"
	ModelTypeHybrid        = "hybrid"
	ModelTypeTrending      = "trending"
	ModelTypeCareerPath    = "career_path"
	ModelTypeSkillGap      = "skill_gap"
	ModelTypeContextual    = "contextual"
)

type RecommendationModel struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrganizationID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name              string         `gorm:"column:name;not null" json:"name"`
	Type              string         `gorm:"column:type;not null;index" json:"type"`
	Parameters        datatypes.JSON `gorm:"type:jsonb;column:parameters" json:"parameters"`
	FeatureWeights    datatypes.JSON `gorm:"type:jsonb;column:feature_weights" json:"feature_weights"`
	Thresholds        datatypes.JSON `gorm:"type:jsonb;column:thresholds" json:"thresholds"`
	IsActive          bool           `gorm:"column:is_active;not null;default:false;index" json:"is_active"`
	Performance       datatypes.JSON `gorm:"type:jsonb;column:performance" json:"performance"`
	TrainingDataCount int            `gorm:"column:training_data_count;not null;default:0" json:"training_data_count"`
	LastTrainedAt     *time.Time     `gorm:"column:last_trained_at" json:"last_trained_at,omitempty"`
	CreatedAt         time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (RecommendationModel) TableName() string { return "recommendation_model" }

const (
	RecommendationActive    = "active"
	RecommendationClicked   = "clicked"
	RecommendationEnrolled  = "enrolled"
	RecommendationDismissed = "dismissed"
	RecommendationExpired   = "expired"
)

// Reasoning is the jsonb payload behind UserRecommendation.Reasoning.
type Reasoning struct {
	Factors []string `json:"factors,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type UserRecommendation struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	OrganizationID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	CourseID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	Course          *Course        `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	ModelID         string         `gorm:"column:model_id;not null;index" json:"model_id"`
	Sources         datatypes.JSON `gorm:"type:jsonb;column:sources" json:"sources"`
	ConfidenceScore float64        `gorm:"column:confidence_score;not null" json:"confidence_score"`
	RelevanceScore  float64        `gorm:"column:relevance_score;not null" json:"relevance_score"`
	Reasoning       datatypes.JSON `gorm:"type:jsonb;column:reasoning" json:"reasoning"`
	Status          string         `gorm:"column:status;not null;default:active;index" json:"status"`
	ExpiresAt       time.Time      `gorm:"column:expires_at;not null;index" json:"expires_at"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (UserRecommendation) TableName() string { return "user_recommendation" }

const (
	InteractionView    = "view"
	InteractionClick   = "click"
	InteractionEnroll  = "enroll"
	InteractionDismiss = "dismiss"
	InteractionRate    = "rate"
	InteractionShare   = "share"
)

// RecommendationInteraction is append-only: rows are never mutated after insert,
// so there is no DeletedAt column and its repo exposes no update or delete.
type RecommendationInteraction struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	RecommendationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"recommendation_id"`
	Type             string         `gorm:"column:type;not null;index" json:"type"`
	Payload          datatypes.JSON `gorm:"type:jsonb;column:payload" json:"payload"`
	CreatedAt        time.Time      `gorm:"not null;default:now();index" json:"created_at"`
}

func (RecommendationInteraction) TableName() string { return "recommendation_interaction" }

type InteractionPayload struct {
	Rating          *float64 `json:"rating,omitempty"`
	DurationSeconds *int     `json:"duration_seconds,omitempty"`
	Device          string   `json:"device,omitempty"`
}
