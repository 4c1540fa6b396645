package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyticsQuiz(questions ...string) *model.Quiz {
	quiz := &model.Quiz{ID: uuid.New(), Title: "Analytics"}
	for _, text := range questions {
		quiz.Questions = append(quiz.Questions, model.Question{ID: uuid.New(), Text: text})
	}
	return quiz
}

func TestComputeQuizAnalytics_NoAttempts(t *testing.T) {
	quiz := analyticsQuiz("q1", "q2")
	got := ComputeQuizAnalytics(quiz, nil, nil)

	assert.Equal(t, quiz.ID, got.QuizID)
	assert.Zero(t, got.TotalAttempts)
	assert.Zero(t, got.UniqueStudents)
	assert.Zero(t, got.AverageScore)
	assert.Zero(t, got.HighestScore)
	assert.Zero(t, got.LowestScore)
	assert.Zero(t, got.AverageCompletionTime)
	assert.Zero(t, got.PassRate)
	assert.NotNil(t, got.QuestionAnalytics)
	assert.Empty(t, got.QuestionAnalytics)
}

func TestComputeQuizAnalytics_Summary(t *testing.T) {
	quiz := analyticsQuiz("q1")
	alice, bob := uuid.New(), uuid.New()
	attempts := []model.QuizAttempt{
		{UserID: alice, Score: 8, Percentage: 80, TimeTaken: 0},
		{UserID: alice, Score: 2, Percentage: 20, TimeTaken: 120},
		{UserID: bob, Score: 5, Percentage: 60, TimeTaken: 60},
	}
	got := ComputeQuizAnalytics(quiz, attempts, nil)

	assert.Equal(t, 3, got.TotalAttempts)
	assert.Equal(t, 2, got.UniqueStudents)
	assert.Equal(t, 5.0, got.AverageScore)
	assert.Equal(t, 8.0, got.HighestScore)
	assert.Equal(t, 2.0, got.LowestScore)
	assert.Equal(t, 90.0, got.AverageCompletionTime)
	assert.InDelta(t, 66.666, got.PassRate, 0.001)
}

func TestComputeQuizAnalytics_ZeroDurationExcludedFromTime(t *testing.T) {
	quiz := analyticsQuiz("q1")
	attempts := []model.QuizAttempt{
		{UserID: uuid.New(), TimeTaken: 0},
		{UserID: uuid.New(), TimeTaken: 120},
	}
	got := ComputeQuizAnalytics(quiz, attempts, nil)
	assert.Equal(t, 120.0, got.AverageCompletionTime)

	allZero := ComputeQuizAnalytics(quiz, []model.QuizAttempt{{UserID: uuid.New()}}, nil)
	assert.Zero(t, allZero.AverageCompletionTime)
}

func TestComputeQuizAnalytics_PerQuestion(t *testing.T) {
	quiz := analyticsQuiz("easy", "unanswered", "medium", "hard")
	easy, unanswered, medium, hard := quiz.Questions[0].ID, quiz.Questions[1].ID, quiz.Questions[2].ID, quiz.Questions[3].ID

	answers := func(correct, wrong int) []model.Answer {
		var out []model.Answer
		for i := 0; i < correct; i++ {
			out = append(out, model.Answer{IsCorrect: true})
		}
		for i := 0; i < wrong; i++ {
			out = append(out, model.Answer{})
		}
		return out
	}
	byQuestion := map[uuid.UUID][]model.Answer{
		easy:   answers(4, 1),
		medium: answers(3, 2),
		hard:   answers(1, 2),
	}
	got := ComputeQuizAnalytics(quiz, []model.QuizAttempt{{UserID: uuid.New()}}, byQuestion)

	require.Len(t, got.QuestionAnalytics, 3)
	for _, qa := range got.QuestionAnalytics {
		assert.NotEqual(t, unanswered, qa.QuestionID)
		assert.Zero(t, qa.AverageTimeSpent)
	}

	assert.Equal(t, "easy", got.QuestionAnalytics[0].QuestionText)
	assert.Equal(t, 5, got.QuestionAnalytics[0].TotalAnswered)
	assert.Equal(t, 4, got.QuestionAnalytics[0].CorrectCount)
	assert.Equal(t, 80.0, got.QuestionAnalytics[0].Accuracy)
	assert.Equal(t, DifficultyEasy, got.QuestionAnalytics[0].Difficulty)

	assert.Equal(t, medium, got.QuestionAnalytics[1].QuestionID)
	assert.Equal(t, 60.0, got.QuestionAnalytics[1].Accuracy)
	assert.Equal(t, DifficultyMedium, got.QuestionAnalytics[1].Difficulty)

	assert.Equal(t, hard, got.QuestionAnalytics[2].QuestionID)
	assert.Equal(t, DifficultyHard, got.QuestionAnalytics[2].Difficulty)
}

func TestDifficulty(t *testing.T) {
	assert.Equal(t, DifficultyEasy, Difficulty(100))
	assert.Equal(t, DifficultyEasy, Difficulty(80))
	assert.Equal(t, DifficultyMedium, Difficulty(79.99))
	assert.Equal(t, DifficultyMedium, Difficulty(60))
	assert.Equal(t, DifficultyHard, Difficulty(59.99))
	assert.Equal(t, DifficultyHard, Difficulty(0))
}

func TestAnalyticsService_QuizAnalytics(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	owner := seedUser(t, db, model.RoleTeacher)
	otherTeacher := seedUser(t, db, model.RoleTeacher)
	admin := seedUser(t, db, model.RoleAdmin)
	student := seedUser(t, db, model.RoleStudent)
	quiz := seedQuiz(t, db, owner, quizOpts{questions: 2, points: 1, published: true})

	grader := newTestSubmissionService(db, time.Now())
	_, err := grader.GradeSubmission(quiz.ID, student, []SubmittedAnswer{answerWith(quiz.Questions[0], 0)}, 40)
	require.NoError(t, err)
	_, err = grader.GradeSubmission(quiz.ID, student, []SubmittedAnswer{answerWith(quiz.Questions[0], 1)}, 0)
	require.NoError(t, err)

	svc := NewAnalyticsService(r.quizzes, r.attempts, r.answers)

	got, err := svc.QuizAnalytics(owner, quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.TotalAttempts)
	assert.Equal(t, 1, got.UniqueStudents)
	assert.Equal(t, 0.5, got.AverageScore)
	assert.Equal(t, 40.0, got.AverageCompletionTime)
	assert.Zero(t, got.PassRate)
	require.Len(t, got.QuestionAnalytics, 1)
	assert.Equal(t, quiz.Questions[0].ID, got.QuestionAnalytics[0].QuestionID)
	assert.Equal(t, 50.0, got.QuestionAnalytics[0].Accuracy)
	assert.Equal(t, DifficultyHard, got.QuestionAnalytics[0].Difficulty)

	byAdmin, err := svc.QuizAnalytics(admin, quiz.ID)
	require.NoError(t, err)
	assert.NotNil(t, byAdmin)

	for _, u := range []*model.User{otherTeacher, student} {
		denied, err := svc.QuizAnalytics(u, quiz.ID)
		assert.NoError(t, err)
		assert.Nil(t, denied)
	}

	missing, err := svc.QuizAnalytics(owner, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAnalyticsService_StudentPerformance(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	owner := seedUser(t, db, model.RoleTeacher)
	student := seedUser(t, db, model.RoleStudent)
	quiz := seedQuiz(t, db, owner, quizOpts{questions: 2, points: 1, published: true})

	grader := newTestSubmissionService(db, time.Now())
	_, err := grader.GradeSubmission(quiz.ID, student, []SubmittedAnswer{
		answerWith(quiz.Questions[0], 0),
		answerWith(quiz.Questions[1], 1),
	}, 30)
	require.NoError(t, err)

	svc := NewAnalyticsService(r.quizzes, r.attempts, r.answers)

	perf, err := svc.StudentPerformance(owner, quiz.ID, student.ID)
	require.NoError(t, err)
	require.NotNil(t, perf)
	assert.Equal(t, student.ID, perf.Attempt.UserID)
	assert.Len(t, perf.Attempt.Answers, 2)
	assert.NotNil(t, perf.TimePerQuestion)
	assert.Empty(t, perf.TimePerQuestion)

	none, err := svc.StudentPerformance(owner, quiz.ID, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, none)

	denied, err := svc.StudentPerformance(student, quiz.ID, student.ID)
	assert.NoError(t, err)
	assert.Nil(t, denied)
}
