package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/dto"
	"github.com/lshigami/quizforge/internal/model"
	"github.com/lshigami/quizforge/internal/policy"
	"github.com/lshigami/quizforge/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmittedAnswer is one normalised entry of a quiz submission.
type SubmittedAnswer struct {
	QuestionID uuid.UUID
	ChoiceID   *uuid.UUID
	Text       string
}

type SubmissionService interface {
	GradeSubmission(quizID uuid.UUID, user *model.User, answers []SubmittedAnswer, timeTaken int) (*dto.AttemptDTO, error)
}

type submissionService struct {
	quizRepo    repository.QuizRepository
	choiceRepo  repository.ChoiceRepository
	attemptRepo repository.AttemptRepository
	db          *gorm.DB
	now         func() time.Time
}

func NewSubmissionService(
	quizRepo repository.QuizRepository,
	choiceRepo repository.ChoiceRepository,
	attemptRepo repository.AttemptRepository,
	db *gorm.DB,
) SubmissionService {
	return &submissionService{
		quizRepo:    quizRepo,
		choiceRepo:  choiceRepo,
		attemptRepo: attemptRepo,
		db:          db,
		now:         time.Now,
	}
}

// GradeSubmission scores the answers against the quiz and stores the attempt
// with its answers in one transaction. Entries that cannot be resolved are
// logged and skipped; only quiz-level problems fail the call.
func (s *submissionService) GradeSubmission(quizID uuid.UUID, user *model.User, answers []SubmittedAnswer, timeTaken int) (*dto.AttemptDTO, error) {
	if !policy.CanPerform(user, policy.SubmitQuiz, nil) {
		return nil, ErrForbidden
	}
	if timeTaken < 0 {
		return nil, fmt.Errorf("%w: time taken cannot be negative", ErrInvalidInput)
	}

	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	if !quiz.IsAvailableAt(s.now()) {
		log.Info().Str("quizID", quizID.String()).Str("userID", user.ID.String()).Msg("GradeSubmission: quiz is not open")
		return nil, ErrQuizNotAvailable
	}

	var choiceIDs []uuid.UUID
	for _, a := range answers {
		if a.ChoiceID != nil {
			choiceIDs = append(choiceIDs, *a.ChoiceID)
		}
	}
	found, err := s.choiceRepo.FindByIDs(choiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load submitted choices: %w", err)
	}
	choices := make(map[uuid.UUID]model.Choice, len(found))
	for _, c := range found {
		choices[c.ID] = c
	}

	attempt := gradeAnswers(quiz, user.ID, answers, choices)
	attempt.TimeTaken = timeTaken

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.attemptRepo.WithTx(tx).Create(&attempt); err != nil {
			return fmt.Errorf("failed to create quiz attempt: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("quizID", quizID.String()).Msg("GradeSubmission: transaction failed")
		return nil, err
	}

	log.Info().
		Str("attemptID", attempt.ID.String()).
		Str("quizID", quizID.String()).
		Str("userID", user.ID.String()).
		Float64("score", attempt.Score).
		Int("correct", attempt.CorrectAnswers).
		Int("total", attempt.TotalQuestions).
		Str("status", attempt.Status).
		Msg("Quiz attempt graded")

	attachReferences(&attempt, quiz, choices)
	attempt.User = *user
	resp := toAttemptDTO(&attempt, true)
	return &resp, nil
}

// gradeAnswers builds the unsaved attempt for a submission. Questions must
// belong to quiz; choices are looked up in the global choice set and are not
// checked against the question. Entries without a choice never score.
func gradeAnswers(quiz *model.Quiz, userID uuid.UUID, answers []SubmittedAnswer, choices map[uuid.UUID]model.Choice) model.QuizAttempt {
	attempt := model.QuizAttempt{
		UserID:         userID,
		QuizID:         quiz.ID,
		TotalQuestions: len(quiz.Questions),
	}

	questions := make(map[uuid.UUID]*model.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		questions[quiz.Questions[i].ID] = &quiz.Questions[i]
	}
	seen := make(map[uuid.UUID]bool, len(answers))

	for _, entry := range answers {
		question, ok := questions[entry.QuestionID]
		if !ok {
			log.Warn().Str("questionID", entry.QuestionID.String()).Str("quizID", quiz.ID.String()).Msg("Grading: question is not part of this quiz, skipping")
			continue
		}

		answer := model.Answer{
			QuestionID: question.ID,
			AnswerText: entry.Text,
		}
		if entry.ChoiceID != nil {
			choice, ok := choices[*entry.ChoiceID]
			if !ok {
				log.Warn().Str("choiceID", entry.ChoiceID.String()).Str("questionID", question.ID.String()).Msg("Grading: choice does not exist, skipping")
				continue
			}
			answer.SelectedChoiceID = &choice.ID
			answer.IsCorrect = choice.IsCorrect
		}
		if answer.IsCorrect {
			answer.PointsEarned = question.Points
			attempt.Score += float64(question.Points)
			attempt.CorrectAnswers++
		}

		if seen[question.ID] {
			log.Warn().Str("questionID", question.ID.String()).Str("quizID", quiz.ID.String()).Msg("Grading: question answered more than once, every entry is scored")
		}
		seen[question.ID] = true
		attempt.Answers = append(attempt.Answers, answer)
	}

	attempt.Derive()
	return attempt
}

// attachReferences fills the loaded quiz, questions and choices into a saved
// attempt so it can be presented without another query.
func attachReferences(attempt *model.QuizAttempt, quiz *model.Quiz, choices map[uuid.UUID]model.Choice) {
	questions := make(map[uuid.UUID]model.Question, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions[q.ID] = q
	}
	attempt.Quiz = *quiz
	for i := range attempt.Answers {
		a := &attempt.Answers[i]
		a.Question = questions[a.QuestionID]
		if a.SelectedChoiceID != nil {
			if c, ok := choices[*a.SelectedChoiceID]; ok {
				a.SelectedChoice = &c
			}
		}
	}
}
