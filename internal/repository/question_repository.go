package repository

import (
	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uuid.UUID) (*model.Question, error)
	Update(question *model.Question, replaceChoices bool) error
	Delete(id uuid.UUID) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// Create inserts the question along with any choices attached to it.
func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uuid.UUID) (*model.Question, error) {
	var question model.Question
	err := r.db.Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("choices.sort_order ASC")
	}).First(&question, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// Update saves the question fields. With replaceChoices the stored choices are
// dropped and question.Choices inserted in their place.
func (r *questionRepository) Update(question *model.Question, replaceChoices bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Choices").Save(question).Error; err != nil {
			return err
		}
		if !replaceChoices {
			return nil
		}
		oldChoiceIDs := tx.Model(&model.Choice{}).Select("id").Where("question_id = ?", question.ID)
		if err := tx.Model(&model.Answer{}).
			Where("selected_choice_id IN (?)", oldChoiceIDs).
			Update("selected_choice_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		for i := range question.Choices {
			question.Choices[i].QuestionID = question.ID
		}
		if len(question.Choices) == 0 {
			return nil
		}
		return tx.Create(&question.Choices).Error
	})
}

func (r *questionRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, "id = ?", id).Error
	})
}
