package repository

import (
	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	FindByQuiz(quizID uuid.UUID) ([]model.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

// FindByQuiz returns every answer recorded by attempts of the quiz.
func (r *answerRepository) FindByQuiz(quizID uuid.UUID) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.
		Joins("JOIN quiz_attempts ON quiz_attempts.id = answers.attempt_id").
		Where("quiz_attempts.quiz_id = ?", quizID).
		Find(&answers).Error
	return answers, err
}
