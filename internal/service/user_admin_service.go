package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/dto"
	"github.com/lshigami/quizforge/internal/model"
	"github.com/lshigami/quizforge/internal/policy"
	"github.com/lshigami/quizforge/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// UserAdminService covers account administration. Every method requires the
// manage_users permission.
type UserAdminService interface {
	ListUsers(actor *model.User) ([]dto.UserResponse, error)
	UpdateRole(actor *model.User, userID uuid.UUID, role string) (*dto.UserResponse, error)
	Approve(actor *model.User, userID uuid.UUID) (*dto.UserResponse, error)
	SetActive(actor *model.User, userID uuid.UUID, active bool) (*dto.UserResponse, error)
	DeleteUser(actor *model.User, userID uuid.UUID) error
}

type userAdminService struct {
	userRepo repository.UserRepository
}

func NewUserAdminService(userRepo repository.UserRepository) UserAdminService {
	return &userAdminService{userRepo: userRepo}
}

func (s *userAdminService) target(actor *model.User, userID uuid.UUID) (*model.User, error) {
	if !policy.CanPerform(actor, policy.ManageUsers, nil) {
		return nil, ErrForbidden
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// isLastAdmin reports whether user is the only remaining admin account.
func (s *userAdminService) isLastAdmin(user *model.User) (bool, error) {
	if !user.IsAdmin() {
		return false, nil
	}
	count, err := s.userRepo.CountByRole(model.RoleAdmin)
	if err != nil {
		return false, err
	}
	return count <= 1, nil
}

func (s *userAdminService) save(user *model.User) (*dto.UserResponse, error) {
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userAdminService) ListUsers(actor *model.User) ([]dto.UserResponse, error) {
	if !policy.CanPerform(actor, policy.ManageUsers, nil) {
		return nil, ErrForbidden
	}
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return resp, nil
}

func (s *userAdminService) UpdateRole(actor *model.User, userID uuid.UUID, role string) (*dto.UserResponse, error) {
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	user, err := s.target(actor, userID)
	if err != nil {
		return nil, err
	}
	if role != model.RoleAdmin {
		last, err := s.isLastAdmin(user)
		if err != nil {
			return nil, err
		}
		if last {
			return nil, fmt.Errorf("%w: cannot demote the last admin", ErrConflict)
		}
	}
	user.Role = role
	if role != model.RoleTeacher {
		user.IsApproved = true
	}
	log.Info().Str("userID", user.ID.String()).Str("role", role).Str("by", actor.ID.String()).Msg("User role updated")
	return s.save(user)
}

func (s *userAdminService) Approve(actor *model.User, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.target(actor, userID)
	if err != nil {
		return nil, err
	}
	user.IsApproved = true
	log.Info().Str("userID", user.ID.String()).Msg("User approved")
	return s.save(user)
}

func (s *userAdminService) SetActive(actor *model.User, userID uuid.UUID, active bool) (*dto.UserResponse, error) {
	user, err := s.target(actor, userID)
	if err != nil {
		return nil, err
	}
	if !active {
		if user.ID == actor.ID {
			return nil, fmt.Errorf("%w: cannot suspend your own account", ErrConflict)
		}
		last, err := s.isLastAdmin(user)
		if err != nil {
			return nil, err
		}
		if last {
			return nil, fmt.Errorf("%w: cannot suspend the last admin", ErrConflict)
		}
	}
	user.IsActive = active
	log.Info().Str("userID", user.ID.String()).Bool("active", active).Msg("User activation changed")
	return s.save(user)
}

func (s *userAdminService) DeleteUser(actor *model.User, userID uuid.UUID) error {
	user, err := s.target(actor, userID)
	if err != nil {
		return err
	}
	last, err := s.isLastAdmin(user)
	if err != nil {
		return err
	}
	if last {
		return fmt.Errorf("%w: cannot delete the last admin", ErrConflict)
	}
	if err := s.userRepo.Delete(user.ID); err != nil {
		return err
	}
	log.Info().Str("userID", user.ID.String()).Str("by", actor.ID.String()).Msg("User deleted")
	return nil
}
