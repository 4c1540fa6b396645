package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestDetermineStatus(t *testing.T) {
	tests := []struct {
		percentage float64
		want       string
	}{
		{100, StatusExcellent},
		{90, StatusExcellent},
		{89.999, StatusVeryGood},
		{80, StatusVeryGood},
		{79.999, StatusGood},
		{70, StatusGood},
		{69.999, StatusFair},
		{60, StatusFair},
		{59.999, StatusPoor},
		{0, StatusPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetermineStatus(tt.percentage), "percentage %v", tt.percentage)
	}
}

func TestCalculatePercentage(t *testing.T) {
	assert.Equal(t, 0.0, CalculatePercentage(0, 0))
	assert.Equal(t, 0.0, CalculatePercentage(3, 0))
	assert.Equal(t, 60.0, CalculatePercentage(3, 5))
	assert.InDelta(t, 33.333, CalculatePercentage(1, 3), 0.001)
	assert.Equal(t, 100.0, CalculatePercentage(4, 4))
}

func TestQuizAttempt_DeriveAndPassed(t *testing.T) {
	a := QuizAttempt{CorrectAnswers: 3, TotalQuestions: 5}
	a.Derive()
	assert.Equal(t, 60.0, a.Percentage)
	assert.Equal(t, StatusFair, a.Status)
	assert.True(t, a.Passed())

	a.CorrectAnswers = 2
	a.Derive()
	assert.Equal(t, 40.0, a.Percentage)
	assert.Equal(t, StatusPoor, a.Status)
	assert.False(t, a.Passed())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&User{}, &Subject{}, &Quiz{}, &Question{}, &Choice{}, &QuizAttempt{}, &Answer{}))
	return db
}

func TestQuizAttempt_SaveRederivesStatus(t *testing.T) {
	db := newTestDB(t)

	user := User{Email: "s@example.com", Username: "s", PasswordHash: "x", Role: RoleStudent, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	subject := Subject{Name: DefaultSubjectName}
	require.NoError(t, db.Create(&subject).Error)
	quiz := Quiz{Title: "Q", SubjectID: subject.ID, CreatedByID: user.ID, TimeLimit: 30, IsPublished: true}
	require.NoError(t, db.Create(&quiz).Error)

	attempt := QuizAttempt{UserID: user.ID, QuizID: quiz.ID, TotalQuestions: 10, CorrectAnswers: 9}
	require.NoError(t, db.Create(&attempt).Error)
	assert.NotEqual(t, uuid.Nil, attempt.ID)
	assert.False(t, attempt.CompletedAt.IsZero())

	var stored QuizAttempt
	require.NoError(t, db.First(&stored, "id = ?", attempt.ID).Error)
	assert.Equal(t, 90.0, stored.Percentage)
	assert.Equal(t, StatusExcellent, stored.Status)

	stored.CorrectAnswers = 5
	require.NoError(t, db.Save(&stored).Error)

	var reloaded QuizAttempt
	require.NoError(t, db.First(&reloaded, "id = ?", attempt.ID).Error)
	assert.Equal(t, 50.0, reloaded.Percentage)
	assert.Equal(t, StatusPoor, reloaded.Status)
}
