package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusExcellent = "excellent"
	StatusVeryGood  = "very_good"
	StatusGood      = "good"
	StatusFair      = "fair"
	StatusPoor      = "poor"
)

// PassPercentage is the lowest percentage counted as a pass.
const PassPercentage = 60.0

type QuizAttempt struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	User           User      `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	QuizID         uuid.UUID `json:"quiz_id" gorm:"type:uuid;not null;index"`
	Quiz           Quiz      `json:"quiz,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE;"`
	Score          float64   `json:"score" gorm:"not null;default:0"`
	TotalQuestions int       `json:"total_questions" gorm:"not null;default:0"`
	CorrectAnswers int       `json:"correct_answers" gorm:"not null;default:0"`
	Percentage     float64   `json:"percentage" gorm:"not null;default:0"`
	Status         string    `json:"status" gorm:"size:20;not null;default:'fair'"` // "excellent", "very_good", "good", "fair", "poor"
	TimeTaken      int       `json:"time_taken" gorm:"not null;default:0"`          // seconds
	CompletedAt    time.Time `json:"completed_at" gorm:"autoCreateTime"`
	Answers        []Answer  `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (a *QuizAttempt) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

// BeforeSave keeps percentage and status in step with the raw counters on
// every create and save.
func (a *QuizAttempt) BeforeSave(tx *gorm.DB) error {
	a.Derive()
	return nil
}

// Derive recomputes Percentage and Status from CorrectAnswers/TotalQuestions.
func (a *QuizAttempt) Derive() {
	a.Percentage = CalculatePercentage(a.CorrectAnswers, a.TotalQuestions)
	a.Status = DetermineStatus(a.Percentage)
}

func (a *QuizAttempt) Passed() bool {
	return a.Percentage >= PassPercentage
}

func CalculatePercentage(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// DetermineStatus buckets a percentage; each lower bound is inclusive.
func DetermineStatus(percentage float64) string {
	switch {
	case percentage >= 90:
		return StatusExcellent
	case percentage >= 80:
		return StatusVeryGood
	case percentage >= 70:
		return StatusGood
	case percentage >= 60:
		return StatusFair
	default:
		return StatusPoor
	}
}
