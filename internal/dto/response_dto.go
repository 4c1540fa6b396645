package dto

import (
	"time"

	"github.com/google/uuid"
)

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `json:"role"`
	IsApproved bool      `json:"is_approved"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token string       `json:"token,omitempty"`
	User  UserResponse `json:"user"`
}

type SubjectResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedByID *uuid.UUID `json:"created_by_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ChoiceResponse hides IsCorrect from users who cannot manage the quiz.
type ChoiceResponse struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Order     int       `json:"order"`
	IsCorrect *bool     `json:"is_correct,omitempty"`
}

type QuestionResponse struct {
	ID      uuid.UUID        `json:"id"`
	QuizID  uuid.UUID        `json:"quiz_id"`
	Text    string           `json:"text"`
	Type    string           `json:"type"`
	Points  int              `json:"points"`
	Order   int              `json:"order"`
	Choices []ChoiceResponse `json:"choices"`
}

type QuizResponse struct {
	ID                 uuid.UUID          `json:"id"`
	Title              string             `json:"title"`
	Description        string             `json:"description,omitempty"`
	SubjectID          uuid.UUID          `json:"subject_id"`
	SubjectName        string             `json:"subject_name,omitempty"`
	CreatedByID        uuid.UUID          `json:"created_by_id"`
	CreatedByName      string             `json:"created_by_name,omitempty"`
	TimeLimit          int                `json:"time_limit"`
	IsPublished        bool               `json:"is_published"`
	ScheduledStart     *time.Time         `json:"scheduled_start,omitempty"`
	ScheduledEnd       *time.Time         `json:"scheduled_end,omitempty"`
	AllowReview        bool               `json:"allow_review"`
	ShowScore          bool               `json:"show_score"`
	RandomizeQuestions bool               `json:"randomize_questions"`
	RandomizeChoices   bool               `json:"randomize_choices"`
	QuestionCount      int                `json:"question_count"`
	IsAvailable        bool               `json:"is_available"`
	TimeUntilStart     *int               `json:"time_until_start,omitempty"` // minutes
	TimeUntilEnd       *int               `json:"time_until_end,omitempty"`   // minutes
	AverageScore       float64            `json:"average_score"`
	Questions          []QuestionResponse `json:"questions,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}
