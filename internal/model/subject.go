package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultSubjectName is used for quizzes created without an explicit subject.
const DefaultSubjectName = "General"

type Subject struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `json:"name" gorm:"not null;index"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	CreatedByID *uuid.UUID `json:"created_by_id,omitempty" gorm:"type:uuid;index"`
	CreatedBy   *User      `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL;"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (s *Subject) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
