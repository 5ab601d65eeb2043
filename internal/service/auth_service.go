package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"meal-planner-be/internal/apperrors"
	"meal-planner-be/internal/jwt"
	"meal-planner-be/internal/models"
	"meal-planner-be/internal/repository"
)

//go:generate mockgen -destination=../mocks/mock_auth_service.go -package=mocks meal-planner-be/internal/service AuthService

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
	hashCost   int
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		hashCost:   bcrypt.DefaultCost,
	}
}

// Register creates a new user account
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperrors.Validationf("Username and password required")
	}

	// Check if user already exists; the unique index still guards concurrent registrations
	_, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return nil, apperrors.New(apperrors.ErrConflict, "User already exists")
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "Password cannot be used", err)
	}

	user, err := s.userRepo.Create(ctx, username, string(hashedPassword))
	if err != nil {
		return nil, err
	}

	return &models.RegisterResponse{
		Message: "User registered successfully",
		User: models.UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}

// Login verifies the credentials and issues a bearer token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	invalid := apperrors.Validationf("Invalid credentials")

	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalid
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.LoginResponse{Token: token}, nil
}
