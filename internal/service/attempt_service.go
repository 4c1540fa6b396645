package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/dto"
	"github.com/lshigami/quizforge/internal/model"
	"github.com/lshigami/quizforge/internal/policy"
	"github.com/lshigami/quizforge/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AttemptService interface {
	MyResults(user *model.User) ([]dto.AttemptDTO, error)
	GetAttempt(requester *model.User, attemptID uuid.UUID) (*dto.AttemptDTO, error)
	QuizAttempts(requester *model.User, quizID uuid.UUID) ([]dto.AttemptDTO, error)
}

type attemptService struct {
	attemptRepo repository.AttemptRepository
	quizRepo    repository.QuizRepository
}

func NewAttemptService(attemptRepo repository.AttemptRepository, quizRepo repository.QuizRepository) AttemptService {
	return &attemptService{attemptRepo: attemptRepo, quizRepo: quizRepo}
}

func (s *attemptService) MyResults(user *model.User) ([]dto.AttemptDTO, error) {
	if user == nil {
		return nil, ErrForbidden
	}
	attempts, err := s.attemptRepo.FindAllByUser(user.ID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AttemptDTO, 0, len(attempts))
	for i := range attempts {
		attempts[i].User = *user
		resp = append(resp, toAttemptDTO(&attempts[i], false))
	}
	return resp, nil
}

// GetAttempt is visible to the student who made the attempt, the quiz owner
// and admins. Students only see their answers when the quiz allows review.
func (s *attemptService) GetAttempt(requester *model.User, attemptID uuid.UUID) (*dto.AttemptDTO, error) {
	if requester == nil {
		return nil, ErrForbidden
	}
	attempt, err := s.attemptRepo.FindByIDWithDetails(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	canView := policy.CanPerform(requester, policy.ViewQuizResults, &attempt.Quiz.CreatedByID)
	isOwner := attempt.UserID == requester.ID
	if !canView && !isOwner {
		return nil, ErrForbidden
	}
	resp := toAttemptDTO(attempt, canView || attempt.Quiz.AllowReview)
	return &resp, nil
}

// QuizAttempts lists every attempt on a quiz. Users without access to the
// quiz results get an empty list.
func (s *attemptService) QuizAttempts(requester *model.User, quizID uuid.UUID) ([]dto.AttemptDTO, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	if !policy.CanPerform(requester, policy.ViewQuizResults, &quiz.CreatedByID) {
		log.Info().Str("quizID", quizID.String()).Msg("QuizAttempts: requester may not view results")
		return []dto.AttemptDTO{}, nil
	}
	attempts, err := s.attemptRepo.FindAllByQuiz(quizID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AttemptDTO, 0, len(attempts))
	for i := range attempts {
		attempts[i].Quiz = *quiz
		resp = append(resp, toAttemptDTO(&attempts[i], false))
	}
	return resp, nil
}
