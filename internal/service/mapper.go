package service

import (
	"github.com/jinzhu/copier"
	"github.com/lshigami/quizforge/internal/dto"
	"github.com/lshigami/quizforge/internal/model"
)

func toUserResponse(user *model.User) dto.UserResponse {
	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return resp
}

func toSubjectResponse(subject *model.Subject) dto.SubjectResponse {
	var resp dto.SubjectResponse
	copier.Copy(&resp, subject)
	return resp
}

// toQuestionResponse exposes the correct flag on choices only when
// revealCorrect is set.
func toQuestionResponse(q *model.Question, revealCorrect bool) dto.QuestionResponse {
	resp := dto.QuestionResponse{
		ID:      q.ID,
		QuizID:  q.QuizID,
		Text:    q.Text,
		Type:    q.Type,
		Points:  q.Points,
		Order:   q.Order,
		Choices: make([]dto.ChoiceResponse, 0, len(q.Choices)),
	}
	for _, c := range q.Choices {
		choice := dto.ChoiceResponse{ID: c.ID, Text: c.Text, Order: c.Order}
		if revealCorrect {
			isCorrect := c.IsCorrect
			choice.IsCorrect = &isCorrect
		}
		resp.Choices = append(resp.Choices, choice)
	}
	return resp
}

// toQuizResponse maps the quiz without availability figures or questions;
// callers fill those in.
func toQuizResponse(quiz *model.Quiz) dto.QuizResponse {
	shallow := *quiz
	shallow.Questions = nil

	var resp dto.QuizResponse
	copier.Copy(&resp, &shallow)
	resp.Questions = nil
	resp.SubjectName = quiz.Subject.Name
	resp.CreatedByName = quiz.CreatedBy.DisplayName()
	resp.QuestionCount = len(quiz.Questions)
	return resp
}

func toAnswerDTO(answer *model.Answer) dto.AnswerDTO {
	resp := dto.AnswerDTO{
		ID:               answer.ID,
		QuestionID:       answer.QuestionID,
		QuestionText:     answer.Question.Text,
		SelectedChoiceID: answer.SelectedChoiceID,
		AnswerText:       answer.AnswerText,
		IsCorrect:        answer.IsCorrect,
		PointsEarned:     answer.PointsEarned,
	}
	if answer.SelectedChoice != nil {
		resp.SelectedChoiceText = answer.SelectedChoice.Text
	}
	if correct := answer.Question.CorrectChoice(); correct != nil {
		resp.CorrectChoiceText = correct.Text
	}
	return resp
}

// toAttemptDTO maps an attempt. Answers are included only when withAnswers is
// set and they were loaded.
func toAttemptDTO(attempt *model.QuizAttempt, withAnswers bool) dto.AttemptDTO {
	shallow := *attempt
	shallow.Answers = nil

	var resp dto.AttemptDTO
	copier.Copy(&resp, &shallow)
	resp.Answers = nil
	resp.QuizTitle = attempt.Quiz.Title
	resp.UserName = attempt.User.DisplayName()
	resp.Passed = attempt.Passed()
	if withAnswers {
		resp.Answers = make([]dto.AnswerDTO, 0, len(attempt.Answers))
		for i := range attempt.Answers {
			resp.Answers = append(resp.Answers, toAnswerDTO(&attempt.Answers[i]))
		}
	}
	return resp
}
