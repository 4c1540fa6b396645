package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Choice struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `json:"question_id" gorm:"type:uuid;not null;index"`
	Text       string    `json:"text" gorm:"size:500;not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"not null;default:false"`
	Order      int       `json:"order" gorm:"column:sort_order;not null;default:0"`
}

func (c *Choice) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
