package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prishaadesai/jewelry-backend/internal/model"
	"github.com/prishaadesai/jewelry-backend/internal/repository"
	"github.com/prishaadesai/jewelry-backend/pkg/apperror"
	"github.com/prishaadesai/jewelry-backend/pkg/jwt"
	"github.com/prishaadesai/jewelry-backend/pkg/validator"
)

type AuthService interface {
	Register(req *RegisterRequest, creatorID string) (*model.User, error)
	Login(username, password string) (*LoginResponse, error)
	GetProfile(userID uuid.UUID) (*model.UserResponse, error)
}

type RegisterRequest struct {
	Username string     `json:"username" validate:"required,min=3,max=50"`
	Email    string     `json:"email" validate:"required,email"`
	FullName string     `json:"full_name" validate:"required,max=100"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     model.Role `json:"role" validate:"required,oneof=owner caster filer setter polisher"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Register creates a new account. Owner-only: enforced by route middleware.
func (s *authService) Register(req *RegisterRequest, creatorID string) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperror.Validation("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if existing, _ := s.userRepo.FindByUsername(req.Username); existing != nil {
		return nil, apperror.Conflict("username already exists")
	}
	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, apperror.Conflict("email already exists")
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: true,
	}
	user.CreatedBy = creatorID
	user.UpdatedBy = creatorID

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		// The unique indexes catch races the pre-checks missed
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("username or email already exists")
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, apperror.Unauthorized("incorrect username or password")
	}

	if !user.CheckPassword(password) {
		return nil, apperror.Unauthorized("incorrect username or password")
	}

	if !user.IsActive {
		return nil, apperror.Unauthorized("user account is inactive")
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

func (s *authService) GetProfile(userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	response := user.ToResponse()
	return &response, nil
}
