package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/dto"
	"github.com/lshigami/quizforge/internal/model"
	"github.com/lshigami/quizforge/internal/policy"
	"github.com/lshigami/quizforge/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const defaultTimeLimit = 30 // minutes

type QuizService interface {
	CreateQuiz(actor *model.User, req dto.CreateQuizRequest) (*dto.QuizResponse, error)
	UpdateQuiz(actor *model.User, id uuid.UUID, req dto.UpdateQuizRequest) (*dto.QuizResponse, error)
	DeleteQuiz(actor *model.User, id uuid.UUID) error
	GetQuiz(actor *model.User, id uuid.UUID) (*dto.QuizResponse, error)
	ListQuizzes(actor *model.User) ([]dto.QuizResponse, error)
	MyQuizzes(actor *model.User) ([]dto.QuizResponse, error)
	AvailableQuizzes() ([]dto.QuizResponse, error)
}

type quizService struct {
	quizRepo    repository.QuizRepository
	subjectRepo repository.SubjectRepository
	attemptRepo repository.AttemptRepository
	now         func() time.Time
}

func NewQuizService(
	quizRepo repository.QuizRepository,
	subjectRepo repository.SubjectRepository,
	attemptRepo repository.AttemptRepository,
) QuizService {
	return &quizService{
		quizRepo:    quizRepo,
		subjectRepo: subjectRepo,
		attemptRepo: attemptRepo,
		now:         time.Now,
	}
}

// present maps a quiz and fills the availability figures from a single now.
func present(quiz *model.Quiz, now time.Time, withQuestions, revealCorrect bool) dto.QuizResponse {
	resp := toQuizResponse(quiz)
	resp.IsAvailable = quiz.IsAvailableAt(now)
	resp.TimeUntilStart = quiz.MinutesUntilStart(now)
	resp.TimeUntilEnd = quiz.MinutesUntilEnd(now)
	if withQuestions {
		resp.Questions = make([]dto.QuestionResponse, 0, len(quiz.Questions))
		for i := range quiz.Questions {
			resp.Questions = append(resp.Questions, toQuestionResponse(&quiz.Questions[i], revealCorrect))
		}
	}
	return resp
}

// presentAll maps list results. Questions are not loaded for lists, so the
// counts come from a single grouped query.
func (s *quizService) presentAll(quizzes []model.Quiz, now time.Time) ([]dto.QuizResponse, error) {
	ids := make([]uuid.UUID, 0, len(quizzes))
	for i := range quizzes {
		ids = append(ids, quizzes[i].ID)
	}
	counts, err := s.quizRepo.CountQuestions(ids)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		item := present(&quizzes[i], now, false, false)
		item.QuestionCount = counts[quizzes[i].ID]
		resp = append(resp, item)
	}
	return resp, nil
}

func (s *quizService) resolveSubject(subjectID *uuid.UUID) (*model.Subject, error) {
	if subjectID == nil {
		return s.subjectRepo.FindOrCreateDefault()
	}
	subject, err := s.subjectRepo.FindByID(*subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: subject %s does not exist", ErrInvalidInput, subjectID)
		}
		return nil, err
	}
	return subject, nil
}

func (s *quizService) CreateQuiz(actor *model.User, req dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	if !policy.CanPerform(actor, policy.CreateQuiz, nil) {
		return nil, ErrForbidden
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	subject, err := s.resolveSubject(req.SubjectID)
	if err != nil {
		return nil, err
	}

	quiz := model.Quiz{
		Title:              title,
		Description:        req.Description,
		SubjectID:          subject.ID,
		CreatedByID:        actor.ID,
		TimeLimit:          defaultTimeLimit,
		IsPublished:        req.IsPublished,
		ScheduledStart:     req.ScheduledStart,
		ScheduledEnd:       req.ScheduledEnd,
		AllowReview:        true,
		ShowScore:          true,
		RandomizeQuestions: req.RandomizeQuestions,
		RandomizeChoices:   req.RandomizeChoices,
	}
	if req.TimeLimit != nil {
		quiz.TimeLimit = *req.TimeLimit
	}
	if req.AllowReview != nil {
		quiz.AllowReview = *req.AllowReview
	}
	if req.ShowScore != nil {
		quiz.ShowScore = *req.ShowScore
	}
	if quiz.TimeLimit <= 0 {
		return nil, fmt.Errorf("%w: time limit must be positive", ErrInvalidInput)
	}
	if !quiz.HasValidSchedule() {
		return nil, fmt.Errorf("%w: scheduled end must be after scheduled start", ErrInvalidInput)
	}
	for i, qReq := range req.Questions {
		question, err := buildQuestion(qReq)
		if err != nil {
			return nil, err
		}
		if question.Order == 0 {
			question.Order = i + 1
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Str("title", title).Msg("CreateQuiz: failed to persist quiz")
		return nil, err
	}
	log.Info().Str("quizID", quiz.ID.String()).Int("questions", len(quiz.Questions)).Msg("Quiz created")

	quiz.Subject = *subject
	quiz.CreatedBy = *actor
	resp := present(&quiz, s.now(), true, true)
	return &resp, nil
}

func (s *quizService) loadQuiz(id uuid.UUID) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *quizService) UpdateQuiz(actor *model.User, id uuid.UUID, req dto.UpdateQuizRequest) (*dto.QuizResponse, error) {
	quiz, err := s.loadQuiz(id)
	if err != nil {
		return nil, err
	}
	if !policy.CanPerform(actor, policy.ManageQuiz, &quiz.CreatedByID) {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		quiz.Title = title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.SubjectID != nil {
		subject, err := s.resolveSubject(req.SubjectID)
		if err != nil {
			return nil, err
		}
		quiz.SubjectID = subject.ID
		quiz.Subject = *subject
	}
	if req.TimeLimit != nil {
		if *req.TimeLimit <= 0 {
			return nil, fmt.Errorf("%w: time limit must be positive", ErrInvalidInput)
		}
		quiz.TimeLimit = *req.TimeLimit
	}
	if req.IsPublished != nil {
		quiz.IsPublished = *req.IsPublished
	}
	if req.ClearSchedule {
		quiz.ScheduledStart = nil
		quiz.ScheduledEnd = nil
	}
	if req.ScheduledStart != nil {
		quiz.ScheduledStart = req.ScheduledStart
	}
	if req.ScheduledEnd != nil {
		quiz.ScheduledEnd = req.ScheduledEnd
	}
	if req.AllowReview != nil {
		quiz.AllowReview = *req.AllowReview
	}
	if req.ShowScore != nil {
		quiz.ShowScore = *req.ShowScore
	}
	if req.RandomizeQuestions != nil {
		quiz.RandomizeQuestions = *req.RandomizeQuestions
	}
	if req.RandomizeChoices != nil {
		quiz.RandomizeChoices = *req.RandomizeChoices
	}
	if !quiz.HasValidSchedule() {
		return nil, fmt.Errorf("%w: scheduled end must be after scheduled start", ErrInvalidInput)
	}

	if err := s.quizRepo.Update(quiz); err != nil {
		log.Error().Err(err).Str("quizID", id.String()).Msg("UpdateQuiz: failed to save quiz")
		return nil, err
	}
	resp := present(quiz, s.now(), true, true)
	return &resp, nil
}

func (s *quizService) DeleteQuiz(actor *model.User, id uuid.UUID) error {
	quiz, err := s.quizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		return err
	}
	if !policy.CanPerform(actor, policy.ManageQuiz, &quiz.CreatedByID) {
		return ErrForbidden
	}
	if err := s.quizRepo.Delete(id); err != nil {
		log.Error().Err(err).Str("quizID", id.String()).Msg("DeleteQuiz: cascade delete failed")
		return err
	}
	log.Info().Str("quizID", id.String()).Str("by", actor.ID.String()).Msg("Quiz deleted")
	return nil
}

// GetQuiz hides unpublished quizzes from users who cannot manage them.
func (s *quizService) GetQuiz(actor *model.User, id uuid.UUID) (*dto.QuizResponse, error) {
	quiz, err := s.loadQuiz(id)
	if err != nil {
		return nil, err
	}
	canManage := policy.CanPerform(actor, policy.ManageQuiz, &quiz.CreatedByID)
	if !quiz.IsPublished && !canManage {
		return nil, ErrQuizNotFound
	}
	resp := present(quiz, s.now(), true, canManage)
	avg, err := s.attemptRepo.AverageScoreByQuiz(quiz.ID)
	if err != nil {
		log.Warn().Err(err).Str("quizID", id.String()).Msg("GetQuiz: could not compute average score")
	}
	resp.AverageScore = avg
	return &resp, nil
}

func (s *quizService) ListQuizzes(actor *model.User) ([]dto.QuizResponse, error) {
	var (
		quizzes []model.Quiz
		err     error
	)
	if actor != nil && actor.IsAdmin() {
		quizzes, err = s.quizRepo.FindAll()
	} else {
		quizzes, err = s.quizRepo.FindPublished()
	}
	if err != nil {
		return nil, err
	}
	return s.presentAll(quizzes, s.now())
}

func (s *quizService) MyQuizzes(actor *model.User) ([]dto.QuizResponse, error) {
	if !policy.CanPerform(actor, policy.CreateQuiz, nil) {
		return nil, ErrForbidden
	}
	quizzes, err := s.quizRepo.FindByCreator(actor.ID)
	if err != nil {
		return nil, err
	}
	return s.presentAll(quizzes, s.now())
}

func (s *quizService) AvailableQuizzes() ([]dto.QuizResponse, error) {
	quizzes, err := s.quizRepo.FindPublished()
	if err != nil {
		return nil, err
	}
	now := s.now()
	open := make([]model.Quiz, 0, len(quizzes))
	for i := range quizzes {
		if quizzes[i].IsAvailableAt(now) {
			open = append(open, quizzes[i])
		}
	}
	return s.presentAll(open, now)
}
