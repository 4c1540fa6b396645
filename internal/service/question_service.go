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

type QuestionService interface {
	CreateQuestion(actor *model.User, quizID uuid.UUID, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(actor *model.User, id uuid.UUID, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(actor *model.User, id uuid.UUID) error
}

type questionService struct {
	repo     repository.QuestionRepository
	quizRepo repository.QuizRepository
}

func NewQuestionService(repo repository.QuestionRepository, quizRepo repository.QuizRepository) QuestionService {
	return &questionService{repo: repo, quizRepo: quizRepo}
}

func buildChoices(reqs []dto.ChoiceRequest) []model.Choice {
	choices := make([]model.Choice, 0, len(reqs))
	for i, c := range reqs {
		order := c.Order
		if order == 0 {
			order = i + 1
		}
		choices = append(choices, model.Choice{
			Text:      strings.TrimSpace(c.Text),
			IsCorrect: c.IsCorrect,
			Order:     order,
		})
	}
	return choices
}

// buildQuestion applies defaults (mcq, 1 point) and validates the request.
func buildQuestion(req dto.CreateQuestionRequest) (model.Question, error) {
	question := model.Question{
		Text:   strings.TrimSpace(req.Text),
		Type:   model.QuestionTypeMCQ,
		Points: 1,
		Order:  req.Order,
	}
	if req.Type != "" {
		question.Type = req.Type
	}
	if req.Points != nil {
		question.Points = *req.Points
	}
	question.Choices = buildChoices(req.Choices)
	return question, validateQuestion(&question)
}

func validateQuestion(q *model.Question) error {
	if q.Text == "" {
		return fmt.Errorf("%w: question text is required", ErrInvalidInput)
	}
	switch q.Type {
	case model.QuestionTypeMCQ, model.QuestionTypeTrueFalse, model.QuestionTypeShortAnswer:
	default:
		return fmt.Errorf("%w: unknown question type %q", ErrInvalidInput, q.Type)
	}
	if q.Points < 0 {
		return fmt.Errorf("%w: points cannot be negative", ErrInvalidInput)
	}
	return nil
}

func (s *questionService) authorize(actor *model.User, quizID uuid.UUID) error {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		return err
	}
	if !policy.CanPerform(actor, policy.ManageQuiz, &quiz.CreatedByID) {
		return ErrForbidden
	}
	return nil
}

func (s *questionService) find(id uuid.UUID) (*model.Question, error) {
	question, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return question, nil
}

func (s *questionService) CreateQuestion(actor *model.User, quizID uuid.UUID, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	if err := s.authorize(actor, quizID); err != nil {
		return nil, err
	}
	question, err := buildQuestion(req)
	if err != nil {
		return nil, err
	}
	question.QuizID = quizID
	if err := s.repo.Create(&question); err != nil {
		log.Error().Err(err).Str("quizID", quizID.String()).Msg("Failed to create question")
		return nil, err
	}
	resp := toQuestionResponse(&question, true)
	return &resp, nil
}

func (s *questionService) UpdateQuestion(actor *model.User, id uuid.UUID, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, question.QuizID); err != nil {
		return nil, err
	}

	if req.Text != nil {
		question.Text = strings.TrimSpace(*req.Text)
	}
	if req.Type != nil {
		question.Type = *req.Type
	}
	if req.Points != nil {
		question.Points = *req.Points
	}
	if req.Order != nil {
		question.Order = *req.Order
	}
	replaceChoices := req.Choices != nil
	if replaceChoices {
		question.Choices = buildChoices(req.Choices)
	}
	if err := validateQuestion(question); err != nil {
		return nil, err
	}

	if err := s.repo.Update(question, replaceChoices); err != nil {
		log.Error().Err(err).Str("questionID", id.String()).Msg("Failed to update question")
		return nil, err
	}
	resp := toQuestionResponse(question, true)
	return &resp, nil
}

func (s *questionService) DeleteQuestion(actor *model.User, id uuid.UUID) error {
	question, err := s.find(id)
	if err != nil {
		return err
	}
	if err := s.authorize(actor, question.QuizID); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
