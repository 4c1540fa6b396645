package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/model"
	"github.com/lshigami/quizforge/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Subject{}, &model.Quiz{}, &model.Question{},
		&model.Choice{}, &model.QuizAttempt{}, &model.Answer{},
	))
	return db
}

type repos struct {
	users     repository.UserRepository
	subjects  repository.SubjectRepository
	quizzes   repository.QuizRepository
	questions repository.QuestionRepository
	choices   repository.ChoiceRepository
	attempts  repository.AttemptRepository
	answers   repository.AnswerRepository
}

func newRepos(db *gorm.DB) repos {
	return repos{
		users:     repository.NewUserRepository(db),
		subjects:  repository.NewSubjectRepository(db),
		quizzes:   repository.NewQuizRepository(db),
		questions: repository.NewQuestionRepository(db),
		choices:   repository.NewChoiceRepository(db),
		attempts:  repository.NewAttemptRepository(db),
		answers:   repository.NewAnswerRepository(db),
	}
}

func seedUser(t *testing.T, db *gorm.DB, role string) *model.User {
	t.Helper()
	user := &model.User{
		Email:        uuid.NewString() + "@example.com",
		Username:     role,
		FirstName:    "Test",
		LastName:     role,
		PasswordHash: "unused",
		Role:         role,
		IsApproved:   true,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

type quizOpts struct {
	questions int
	points    int
	published bool
	start     *time.Time
	end       *time.Time
}

// seedQuiz creates a quiz whose questions each have one correct choice
// (Choices[0]) and one wrong choice (Choices[1]).
func seedQuiz(t *testing.T, db *gorm.DB, owner *model.User, opts quizOpts) *model.Quiz {
	t.Helper()
	subject := model.Subject{Name: "Subject " + uuid.NewString()[:8]}
	require.NoError(t, db.Create(&subject).Error)

	quiz := model.Quiz{
		Title:          "Quiz " + uuid.NewString()[:8],
		SubjectID:      subject.ID,
		CreatedByID:    owner.ID,
		TimeLimit:      30,
		IsPublished:    opts.published,
		ScheduledStart: opts.start,
		ScheduledEnd:   opts.end,
		AllowReview:    true,
		ShowScore:      true,
	}
	for i := 0; i < opts.questions; i++ {
		quiz.Questions = append(quiz.Questions, model.Question{
			Text:   fmt.Sprintf("Question %d", i+1),
			Type:   model.QuestionTypeMCQ,
			Points: opts.points,
			Order:  i + 1,
			Choices: []model.Choice{
				{Text: "right", IsCorrect: true, Order: 1},
				{Text: "wrong", IsCorrect: false, Order: 2},
			},
		})
	}
	require.NoError(t, db.Create(&quiz).Error)

	loaded, err := repository.NewQuizRepository(db).FindByIDWithQuestions(quiz.ID)
	require.NoError(t, err)
	return loaded
}

func answerWith(q model.Question, choiceIdx int) SubmittedAnswer {
	id := q.Choices[choiceIdx].ID
	return SubmittedAnswer{QuestionID: q.ID, ChoiceID: &id}
}

func newTestSubmissionService(db *gorm.DB, now time.Time) SubmissionService {
	r := newRepos(db)
	svc := NewSubmissionService(r.quizzes, r.choices, r.attempts, db).(*submissionService)
	svc.now = func() time.Time { return now }
	return svc
}
