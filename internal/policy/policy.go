// Package policy holds the role and ownership rules for every mutating or
// privileged operation.
package policy

import (
	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/model"
)

type Action string

const (
	CreateQuiz      Action = "create_quiz"
	ManageQuiz      Action = "manage_quiz"
	ViewQuizResults Action = "view_quiz_results"
	SubmitQuiz      Action = "submit_quiz"
	CreateSubject   Action = "create_subject"
	ManageSubject   Action = "manage_subject"
	ManageUsers     Action = "manage_users"
)

// CanPerform reports whether user may perform action. ownerID is the creator
// of the target resource and is only consulted for ownership-scoped actions.
// Inactive users may perform nothing.
func CanPerform(user *model.User, action Action, ownerID *uuid.UUID) bool {
	if user == nil || !user.IsActive {
		return false
	}
	switch action {
	case SubmitQuiz:
		return true
	case CreateQuiz, CreateSubject:
		return user.Role == model.RoleAdmin || user.Role == model.RoleTeacher
	case ManageQuiz, ViewQuizResults:
		if user.IsAdmin() {
			return true
		}
		return ownerID != nil && *ownerID == user.ID
	case ManageSubject, ManageUsers:
		return user.IsAdmin()
	default:
		return false
	}
}
