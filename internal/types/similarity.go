package types

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Similarity rows are stored under a canonical pair key: ID1 is always the
// lexicographically smaller uuid. This makes (a,b) and (b,a) the same row, so
// the two directions can never disagree. CanonicalPair normalizes before any
// read or write.
func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) > 0 {
		return b, a
	}
	return a, b
}

type ContentSimilarity struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ID1       uuid.UUID      `gorm:"type:uuid;column:id1;not null;index:idx_content_sim_pair,unique;index" json:"id1"`
	ID2       uuid.UUID      `gorm:"type:uuid;column:id2;not null;index:idx_content_sim_pair,unique;index" json:"id2"`
	Score     float64        `gorm:"column:score;not null;index" json:"score"`
	Factors   datatypes.JSON `gorm:"type:jsonb;column:factors" json:"factors"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ContentSimilarity) TableName() string { return "content_similarity" }

type UserSimilarity struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ID1       uuid.UUID      `gorm:"type:uuid;column:id1;not null;index:idx_user_sim_pair,unique;index" json:"id1"`
	ID2       uuid.UUID      `gorm:"type:uuid;column:id2;not null;index:idx_user_sim_pair,unique;index" json:"id2"`
	Score     float64        `gorm:"column:score;not null;index" json:"score"`
	Factors   datatypes.JSON `gorm:"type:jsonb;column:factors" json:"factors"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (UserSimilarity) TableName() string { return "user_similarity" }
