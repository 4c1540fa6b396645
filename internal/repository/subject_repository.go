package repository

import (
	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/model"
	"gorm.io/gorm"
)

type SubjectRepository interface {
	Create(subject *model.Subject) error
	FindByID(id uuid.UUID) (*model.Subject, error)
	FindAll() ([]model.Subject, error)
	FindOrCreateDefault() (*model.Subject, error)
	CountQuizzes(id uuid.UUID) (int64, error)
	Update(subject *model.Subject) error
	Delete(id uuid.UUID) error
}

type subjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(subject *model.Subject) error {
	return r.db.Create(subject).Error
}

func (r *subjectRepository) FindByID(id uuid.UUID) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.First(&subject, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) FindAll() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.Order("name ASC").Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepository) FindOrCreateDefault() (*model.Subject, error) {
	subject := model.Subject{Name: model.DefaultSubjectName}
	err := r.db.
		Where(model.Subject{Name: model.DefaultSubjectName}).
		Attrs(model.Subject{Description: "Default subject for quizzes"}).
		FirstOrCreate(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) CountQuizzes(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Quiz{}).Where("subject_id = ?", id).Count(&count).Error
	return count, err
}

func (r *subjectRepository) Update(subject *model.Subject) error {
	return r.db.Save(subject).Error
}

func (r *subjectRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Subject{}, "id = ?", id).Error
}
