package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SubmitQuizDTO is the body of a quiz submission. Each answer is either an
// object or a string holding the same object as JSON.
type SubmitQuizDTO struct {
	Answers   []json.RawMessage `json:"answers" binding:"required"`
	TimeTaken int               `json:"time_taken" binding:"min=0"` // seconds
}

// RawAnswerDTO is the wire shape of one submitted answer.
type RawAnswerDTO struct {
	QuestionID string  `json:"questionId"`
	ChoiceID   *string `json:"choiceId"`
	AnswerText string  `json:"answer_text"`
}

type AnswerDTO struct {
	ID                 uuid.UUID  `json:"id"`
	QuestionID         uuid.UUID  `json:"question_id"`
	QuestionText       string     `json:"question_text"`
	SelectedChoiceID   *uuid.UUID `json:"selected_choice_id,omitempty"`
	SelectedChoiceText string     `json:"selected_choice_text,omitempty"`
	CorrectChoiceText  string     `json:"correct_choice_text,omitempty"`
	AnswerText         string     `json:"answer_text,omitempty"`
	IsCorrect          bool       `json:"is_correct"`
	PointsEarned       int        `json:"points_earned"`
}

type AttemptDTO struct {
	ID             uuid.UUID   `json:"id"`
	QuizID         uuid.UUID   `json:"quiz_id"`
	QuizTitle      string      `json:"quiz_title,omitempty"`
	UserID         uuid.UUID   `json:"user_id"`
	UserName       string      `json:"user_name,omitempty"`
	Score          float64     `json:"score"`
	TotalQuestions int         `json:"total_questions"`
	CorrectAnswers int         `json:"correct_answers"`
	Percentage     float64     `json:"percentage"`
	Status         string      `json:"status"`
	Passed         bool        `json:"passed"`
	TimeTaken      int         `json:"time_taken"`
	CompletedAt    time.Time   `json:"completed_at"`
	Answers        []AnswerDTO `json:"answers,omitempty"`
}

type QuestionAnalyticsDTO struct {
	QuestionID       uuid.UUID `json:"question_id"`
	QuestionText     string    `json:"question_text"`
	TotalAnswered    int       `json:"total_answered"`
	CorrectCount     int       `json:"correct_count"`
	Accuracy         float64   `json:"accuracy"`
	Difficulty       string    `json:"difficulty"`
	AverageTimeSpent float64   `json:"average_time_spent"` // not captured, always 0
}

type QuizAnalyticsDTO struct {
	QuizID                uuid.UUID              `json:"quiz_id"`
	QuizTitle             string                 `json:"quiz_title"`
	TotalAttempts         int                    `json:"total_attempts"`
	UniqueStudents        int                    `json:"unique_students"`
	AverageScore          float64                `json:"average_score"`
	HighestScore          float64                `json:"highest_score"`
	LowestScore           float64                `json:"lowest_score"`
	AverageCompletionTime float64                `json:"average_completion_time"` // seconds
	PassRate              float64                `json:"pass_rate"`
	QuestionAnalytics     []QuestionAnalyticsDTO `json:"question_analytics"`
}

type StudentPerformanceDTO struct {
	Attempt         AttemptDTO `json:"attempt"`
	TimePerQuestion []int      `json:"time_per_question"`
}
