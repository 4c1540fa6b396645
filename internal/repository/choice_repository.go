package repository

import (
	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/model"
	"gorm.io/gorm"
)

type ChoiceRepository interface {
	FindByIDs(ids []uuid.UUID) ([]model.Choice, error)
}

type choiceRepository struct {
	db *gorm.DB
}

func NewChoiceRepository(db *gorm.DB) ChoiceRepository {
	return &choiceRepository{db: db}
}

// FindByIDs looks choices up across all questions. Unknown ids are simply absent.
func (r *choiceRepository) FindByIDs(ids []uuid.UUID) ([]model.Choice, error) {
	var choices []model.Choice
	if len(ids) == 0 {
		return choices, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&choices).Error
	return choices, err
}
