package repository

import (
	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	WithTx(tx *gorm.DB) AttemptRepository
	Create(attempt *model.QuizAttempt) error
	FindByIDWithDetails(id uuid.UUID) (*model.QuizAttempt, error)
	FindAllByQuiz(quizID uuid.UUID) ([]model.QuizAttempt, error)
	FindAllByUser(userID uuid.UUID) ([]model.QuizAttempt, error)
	FindLatestByQuizAndUser(quizID, userID uuid.UUID) (*model.QuizAttempt, error)
	AverageScoreByQuiz(quizID uuid.UUID) (float64, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *attemptRepository) WithTx(tx *gorm.DB) AttemptRepository {
	return &attemptRepository{db: tx}
}

// Create inserts the attempt and its answers.
func (r *attemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.db.Omit("User", "Quiz").Create(attempt).Error
}

func withAnswerDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Answers.Question.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.sort_order ASC")
		}).
		Preload("Answers.SelectedChoice")
}

func (r *attemptRepository) FindByIDWithDetails(id uuid.UUID) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := withAnswerDetails(r.db).
		Preload("Quiz").
		Preload("User").
		First(&attempt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindAllByQuiz(quizID uuid.UUID) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.Preload("User").
		Where("quiz_id = ?", quizID).
		Order("completed_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindAllByUser(userID uuid.UUID) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.Preload("Quiz").
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindLatestByQuizAndUser(quizID, userID uuid.UUID) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := withAnswerDetails(r.db).
		Preload("Quiz").
		Preload("User").
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("completed_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// AverageScoreByQuiz is 0 when the quiz has no attempts.
func (r *attemptRepository) AverageScoreByQuiz(quizID uuid.UUID) (float64, error) {
	var avg float64
	err := r.db.Model(&model.QuizAttempt{}).
		Select("COALESCE(AVG(score), 0)").
		Where("quiz_id = ?", quizID).
		Row().Scan(&avg)
	return avg, err
}
