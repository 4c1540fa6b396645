package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptService(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	svc := NewAttemptService(r.attempts, r.quizzes)
	owner := seedUser(t, db, model.RoleTeacher)
	otherTeacher := seedUser(t, db, model.RoleTeacher)
	admin := seedUser(t, db, model.RoleAdmin)
	ann := seedUser(t, db, model.RoleStudent)
	bob := seedUser(t, db, model.RoleStudent)
	quiz := seedQuiz(t, db, owner, quizOpts{questions: 2, points: 1, published: true})

	grader := newTestSubmissionService(db, time.Now())
	annAttempt, err := grader.GradeSubmission(quiz.ID, ann, []SubmittedAnswer{
		answerWith(quiz.Questions[0], 0),
		answerWith(quiz.Questions[1], 1),
	}, 30)
	require.NoError(t, err)
	_, err = grader.GradeSubmission(quiz.ID, bob, []SubmittedAnswer{answerWith(quiz.Questions[0], 0)}, 20)
	require.NoError(t, err)

	t.Run("my results", func(t *testing.T) {
		results, err := svc.MyResults(ann)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, quiz.Title, results[0].QuizTitle)
		assert.Equal(t, 1.0, results[0].Score)
		assert.Nil(t, results[0].Answers)
	})

	t.Run("owner sees own attempt with answers", func(t *testing.T) {
		got, err := svc.GetAttempt(ann, annAttempt.ID)
		require.NoError(t, err)
		require.Len(t, got.Answers, 2)
		assert.Equal(t, "right", got.Answers[0].CorrectChoiceText)
	})

	t.Run("other students and teachers are refused", func(t *testing.T) {
		_, err := svc.GetAttempt(bob, annAttempt.ID)
		assert.ErrorIs(t, err, ErrForbidden)
		_, err = svc.GetAttempt(otherTeacher, annAttempt.ID)
		assert.ErrorIs(t, err, ErrForbidden)
		_, err = svc.GetAttempt(admin, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("quiz attempts", func(t *testing.T) {
		all, err := svc.QuizAttempts(owner, quiz.ID)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		none, err := svc.QuizAttempts(otherTeacher, quiz.ID)
		require.NoError(t, err)
		assert.Empty(t, none)

		_, err = svc.QuizAttempts(admin, uuid.New())
		assert.ErrorIs(t, err, ErrQuizNotFound)
	})

	t.Run("review disabled hides answers from students", func(t *testing.T) {
		require.NoError(t, db.Model(&model.Quiz{}).Where("id = ?", quiz.ID).Update("allow_review", false).Error)

		got, err := svc.GetAttempt(ann, annAttempt.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Answers)
		assert.Equal(t, 50.0, got.Percentage)

		asOwner, err := svc.GetAttempt(owner, annAttempt.ID)
		require.NoError(t, err)
		assert.Len(t, asOwner.Answers, 2)
	})
}
