package dto

import (
	"time"

	"github.com/google/uuid"
)

type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role" binding:"omitempty,oneof=student teacher admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	Username  *string `json:"username" binding:"omitempty,min=1"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type SubjectRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type ChoiceRequest struct {
	Text      string `json:"text" binding:"required,max=500"`
	IsCorrect bool   `json:"is_correct"`
	Order     int    `json:"order"`
}

type CreateQuestionRequest struct {
	Text    string          `json:"text" binding:"required"`
	Type    string          `json:"type" binding:"omitempty,oneof=mcq true_false short_answer"`
	Points  *int            `json:"points" binding:"omitempty,min=0"` // defaults to 1
	Order   int             `json:"order"`
	Choices []ChoiceRequest `json:"choices" binding:"omitempty,dive"`
}

// UpdateQuestionRequest applies only the fields present. A non-nil Choices
// replaces every existing choice of the question.
type UpdateQuestionRequest struct {
	Text    *string         `json:"text" binding:"omitempty,min=1"`
	Type    *string         `json:"type" binding:"omitempty,oneof=mcq true_false short_answer"`
	Points  *int            `json:"points" binding:"omitempty,min=0"`
	Order   *int            `json:"order"`
	Choices []ChoiceRequest `json:"choices" binding:"omitempty,dive"`
}

type CreateQuizRequest struct {
	Title              string                  `json:"title" binding:"required,max=200"`
	Description        string                  `json:"description"`
	SubjectID          *uuid.UUID              `json:"subject_id"`
	TimeLimit          *int                    `json:"time_limit" binding:"omitempty,gt=0"` // minutes, defaults to 30
	IsPublished        bool                    `json:"is_published"`
	ScheduledStart     *time.Time              `json:"scheduled_start"`
	ScheduledEnd       *time.Time              `json:"scheduled_end"`
	AllowReview        *bool                   `json:"allow_review"` // defaults to true
	ShowScore          *bool                   `json:"show_score"`   // defaults to true
	RandomizeQuestions bool                    `json:"randomize_questions"`
	RandomizeChoices   bool                    `json:"randomize_choices"`
	Questions          []CreateQuestionRequest `json:"questions" binding:"omitempty,dive"`
}

type UpdateQuizRequest struct {
	Title              *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description        *string    `json:"description"`
	SubjectID          *uuid.UUID `json:"subject_id"`
	TimeLimit          *int       `json:"time_limit" binding:"omitempty,gt=0"`
	IsPublished        *bool      `json:"is_published"`
	ScheduledStart     *time.Time `json:"scheduled_start"`
	ScheduledEnd       *time.Time `json:"scheduled_end"`
	ClearSchedule      bool       `json:"clear_schedule"` // drops both bounds before applying the ones above
	AllowReview        *bool      `json:"allow_review"`
	ShowScore          *bool      `json:"show_score"`
	RandomizeQuestions *bool      `json:"randomize_questions"`
	RandomizeChoices   *bool      `json:"randomize_choices"`
}
