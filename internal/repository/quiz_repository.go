package repository

import (
	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(quiz *model.Quiz) error
	FindByID(id uuid.UUID) (*model.Quiz, error)
	FindByIDWithQuestions(id uuid.UUID) (*model.Quiz, error)
	FindAll() ([]model.Quiz, error)
	FindPublished() ([]model.Quiz, error)
	FindByCreator(userID uuid.UUID) ([]model.Quiz, error)
	CountQuestions(quizIDs []uuid.UUID) (map[uuid.UUID]int, error)
	Update(quiz *model.Quiz) error
	Delete(id uuid.UUID) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

// orderedQuestions preloads questions in presentation order, then their choices.
func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.sort_order ASC").Order("questions.created_at ASC")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.sort_order ASC")
		})
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindByID(id uuid.UUID) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.First(&quiz, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindByIDWithQuestions(id uuid.UUID) (*model.Quiz, error) {
	var quiz model.Quiz
	err := orderedQuestions(r.db).
		Preload("Subject").
		Preload("CreatedBy").
		First(&quiz, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// FindAll, FindPublished and FindByCreator load quizzes without their
// questions; list views take question counts from CountQuestions.
func (r *quizRepository) FindAll() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.Preload("Subject").Preload("CreatedBy").Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) FindPublished() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.
		Preload("Subject").
		Preload("CreatedBy").
		Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) FindByCreator(userID uuid.UUID) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.
		Preload("Subject").
		Preload("CreatedBy").
		Where("created_by_id = ?", userID).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// CountQuestions returns the number of questions per quiz in one grouped
// query. Quizzes without questions are absent from the map.
func (r *quizRepository) CountQuestions(quizIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(quizIDs))
	if len(quizIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		QuizID uuid.UUID
		Total  int
	}
	err := r.db.Model(&model.Question{}).
		Select("quiz_id, COUNT(*) AS total").
		Where("quiz_id IN ?", quizIDs).
		Group("quiz_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.QuizID] = row.Total
	}
	return counts, nil
}

func (r *quizRepository) Update(quiz *model.Quiz) error {
	return r.db.Omit("Questions", "Subject", "CreatedBy").Save(quiz).Error
}

// Delete removes the quiz together with its questions, choices, attempts and
// answers in one transaction.
func (r *quizRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		attemptIDs := tx.Model(&model.QuizAttempt{}).Select("id").Where("quiz_id = ?", id)
		questionIDs := tx.Model(&model.Question{}).Select("id").Where("quiz_id = ?", id)

		if err := tx.Where("attempt_id IN (?) OR question_id IN (?)", attemptIDs, questionIDs).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizAttempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, "id = ?", id).Error
	})
}
