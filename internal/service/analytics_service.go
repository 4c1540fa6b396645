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

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// AnalyticsService answers with nil and no error both when the quiz does not
// exist and when the requester may not see its results.
type AnalyticsService interface {
	QuizAnalytics(requester *model.User, quizID uuid.UUID) (*dto.QuizAnalyticsDTO, error)
	StudentPerformance(requester *model.User, quizID, studentID uuid.UUID) (*dto.StudentPerformanceDTO, error)
}

type analyticsService struct {
	quizRepo    repository.QuizRepository
	attemptRepo repository.AttemptRepository
	answerRepo  repository.AnswerRepository
}

func NewAnalyticsService(
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
) AnalyticsService {
	return &analyticsService{quizRepo: quizRepo, attemptRepo: attemptRepo, answerRepo: answerRepo}
}

// visibleQuiz loads the quiz when requester may view its results.
func (s *analyticsService) visibleQuiz(requester *model.User, quizID uuid.UUID) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !policy.CanPerform(requester, policy.ViewQuizResults, &quiz.CreatedByID) {
		log.Info().Str("quizID", quizID.String()).Msg("Analytics: requester may not view results")
		return nil, nil
	}
	return quiz, nil
}

func (s *analyticsService) QuizAnalytics(requester *model.User, quizID uuid.UUID) (*dto.QuizAnalyticsDTO, error) {
	quiz, err := s.visibleQuiz(requester, quizID)
	if err != nil || quiz == nil {
		return nil, err
	}
	attempts, err := s.attemptRepo.FindAllByQuiz(quizID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.FindByQuiz(quizID)
	if err != nil {
		return nil, err
	}
	byQuestion := make(map[uuid.UUID][]model.Answer)
	for _, a := range answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
	}
	analytics := ComputeQuizAnalytics(quiz, attempts, byQuestion)
	return &analytics, nil
}

// StudentPerformance returns the student's most recent attempt on the quiz
// with its answers. Per-question timings are not recorded, so
// TimePerQuestion is always empty.
func (s *analyticsService) StudentPerformance(requester *model.User, quizID, studentID uuid.UUID) (*dto.StudentPerformanceDTO, error) {
	quiz, err := s.visibleQuiz(requester, quizID)
	if err != nil || quiz == nil {
		return nil, err
	}
	attempt, err := s.attemptRepo.FindLatestByQuizAndUser(quizID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dto.StudentPerformanceDTO{
		Attempt:         toAttemptDTO(attempt, true),
		TimePerQuestion: []int{},
	}, nil
}

// ComputeQuizAnalytics aggregates the attempts of quiz. answersByQuestion
// holds the answers recorded for each question across those attempts.
func ComputeQuizAnalytics(quiz *model.Quiz, attempts []model.QuizAttempt, answersByQuestion map[uuid.UUID][]model.Answer) dto.QuizAnalyticsDTO {
	result := dto.QuizAnalyticsDTO{
		QuizID:            quiz.ID,
		QuizTitle:         quiz.Title,
		QuestionAnalytics: []dto.QuestionAnalyticsDTO{},
	}
	if len(attempts) == 0 {
		return result
	}

	students := make(map[uuid.UUID]struct{})
	var totalScore, totalTime float64
	var timed, passed int
	result.HighestScore = attempts[0].Score
	result.LowestScore = attempts[0].Score
	for _, a := range attempts {
		students[a.UserID] = struct{}{}
		totalScore += a.Score
		if a.Score > result.HighestScore {
			result.HighestScore = a.Score
		}
		if a.Score < result.LowestScore {
			result.LowestScore = a.Score
		}
		if a.TimeTaken > 0 {
			totalTime += float64(a.TimeTaken)
			timed++
		}
		if a.Passed() {
			passed++
		}
	}

	result.TotalAttempts = len(attempts)
	result.UniqueStudents = len(students)
	result.AverageScore = totalScore / float64(len(attempts))
	if timed > 0 {
		result.AverageCompletionTime = totalTime / float64(timed)
	}
	result.PassRate = float64(passed) / float64(len(attempts)) * 100

	for _, q := range quiz.Questions {
		answers := answersByQuestion[q.ID]
		if len(answers) == 0 {
			continue
		}
		correct := 0
		for _, a := range answers {
			if a.IsCorrect {
				correct++
			}
		}
		accuracy := float64(correct) / float64(len(answers)) * 100
		result.QuestionAnalytics = append(result.QuestionAnalytics, dto.QuestionAnalyticsDTO{
			QuestionID:    q.ID,
			QuestionText:  q.Text,
			TotalAnswered: len(answers),
			CorrectCount:  correct,
			Accuracy:      accuracy,
			Difficulty:    Difficulty(accuracy),
		})
	}
	return result
}

// Difficulty classifies a question by the share of correct answers.
func Difficulty(accuracy float64) string {
	switch {
	case accuracy >= 80:
		return DifficultyEasy
	case accuracy >= 60:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}
