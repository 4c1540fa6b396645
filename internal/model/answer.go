package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Answer struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AttemptID        uuid.UUID  `json:"attempt_id" gorm:"type:uuid;not null;index"`
	QuestionID       uuid.UUID  `json:"question_id" gorm:"type:uuid;not null;index"`
	Question         Question   `json:"question,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE;"`
	SelectedChoiceID *uuid.UUID `json:"selected_choice_id,omitempty" gorm:"type:uuid;index"`
	SelectedChoice   *Choice    `json:"selected_choice,omitempty" gorm:"foreignKey:SelectedChoiceID;constraint:OnDelete:SET NULL;"`
	AnswerText       string     `json:"answer_text,omitempty" gorm:"type:text"`
	IsCorrect        bool       `json:"is_correct" gorm:"not null;default:false"`
	PointsEarned     int        `json:"points_earned" gorm:"not null;default:0"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
