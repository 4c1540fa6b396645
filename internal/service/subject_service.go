package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/dto"
	"github.com/lshigami/quizforge/internal/model"
	"github.com/lshigami/quizforge/internal/policy"
	"github.com/lshigami/quizforge/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SubjectService interface {
	ListSubjects() ([]dto.SubjectResponse, error)
	CreateSubject(actor *model.User, req dto.SubjectRequest) (*dto.SubjectResponse, error)
	UpdateSubject(actor *model.User, id uuid.UUID, req dto.SubjectRequest) (*dto.SubjectResponse, error)
	DeleteSubject(actor *model.User, id uuid.UUID) error
}

type subjectService struct {
	repo repository.SubjectRepository
}

func NewSubjectService(repo repository.SubjectRepository) SubjectService {
	return &subjectService{repo: repo}
}

func (s *subjectService) ListSubjects() ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		resp = append(resp, toSubjectResponse(&subjects[i]))
	}
	return resp, nil
}

func (s *subjectService) CreateSubject(actor *model.User, req dto.SubjectRequest) (*dto.SubjectResponse, error) {
	if !policy.CanPerform(actor, policy.CreateSubject, nil) {
		return nil, ErrForbidden
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: subject name is required", ErrInvalidInput)
	}
	subject := model.Subject{
		Name:        name,
		Description: req.Description,
		CreatedByID: &actor.ID,
	}
	if err := s.repo.Create(&subject); err != nil {
		log.Error().Err(err).Str("name", name).Msg("Failed to create subject")
		return nil, err
	}
	resp := toSubjectResponse(&subject)
	return &resp, nil
}

func (s *subjectService) find(id uuid.UUID) (*model.Subject, error) {
	subject, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return subject, nil
}

func (s *subjectService) UpdateSubject(actor *model.User, id uuid.UUID, req dto.SubjectRequest) (*dto.SubjectResponse, error) {
	if !policy.CanPerform(actor, policy.ManageSubject, nil) {
		return nil, ErrForbidden
	}
	subject, err := s.find(id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: subject name is required", ErrInvalidInput)
	}
	subject.Name = name
	subject.Description = req.Description
	if err := s.repo.Update(subject); err != nil {
		return nil, err
	}
	resp := toSubjectResponse(subject)
	return &resp, nil
}

// DeleteSubject refuses while any quiz still belongs to the subject.
func (s *subjectService) DeleteSubject(actor *model.User, id uuid.UUID) error {
	if !policy.CanPerform(actor, policy.ManageSubject, nil) {
		return ErrForbidden
	}
	if _, err := s.find(id); err != nil {
		return err
	}
	inUse, err := s.repo.CountQuizzes(id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return fmt.Errorf("%w: subject is used by %d quiz(zes)", ErrConflict, inUse)
	}
	return s.repo.Delete(id)
}
