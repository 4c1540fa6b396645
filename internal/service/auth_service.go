package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/auth"
	"github.com/lshigami/quizforge/internal/dto"
	"github.com/lshigami/quizforge/internal/model"
	"github.com/lshigami/quizforge/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type AuthService interface {
	Signup(req dto.SignupRequest) (*dto.AuthResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
	Profile(userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(userID uuid.UUID, req dto.ChangePasswordRequest) error
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Signup registers an account. Teachers wait for admin approval, every other
// role is approved straight away. Self-registering as admin is only possible
// while no admin exists.
func (s *authService) Signup(req dto.SignupRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if role == model.RoleAdmin {
		admins, err := s.userRepo.CountByRole(model.RoleAdmin)
		if err != nil {
			return nil, err
		}
		if admins > 0 {
			return nil, fmt.Errorf("%w: admin accounts are created by an existing admin", ErrForbidden)
		}
	}

	taken, err := s.userRepo.EmailTaken(email, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := model.User{
		Email:        email,
		Username:     strings.TrimSpace(req.Username),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		Role:         role,
		IsApproved:   role != model.RoleTeacher,
		IsActive:     true,
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("email", email).Msg("Signup: failed to create user")
		return nil, err
	}
	log.Info().Str("userID", user.ID.String()).Str("role", role).Msg("Signup: user registered")

	resp := &dto.AuthResponse{User: toUserResponse(&user)}
	// pending teachers get their token from Login once approved
	if user.AwaitingApproval() {
		return resp, nil
	}
	resp.Token, err = s.tokens.Issue(&user)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *authService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrUnauthorized
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is suspended", ErrUnauthorized)
	}
	if user.AwaitingApproval() {
		return nil, fmt.Errorf("%w: teacher account is pending approval", ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *authService) findUser(userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Profile(userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) UpdateProfile(userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		taken, err := s.userRepo.EmailTaken(email, &user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		user.Email = email
	}
	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) ChangePassword(userID uuid.UUID, req dto.ChangePasswordRequest) error {
	user, err := s.findUser(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)) != nil {
		return fmt.Errorf("%w: current password is incorrect", ErrInvalidInput)
	}
	if len(req.NewPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	log.Info().Str("userID", user.ID.String()).Msg("Password changed")
	return nil
}
