package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"meal-planner-be/internal/apperrors"
	"meal-planner-be/internal/entities"
	"meal-planner-be/internal/jwt"
	"meal-planner-be/internal/mocks"
	"meal-planner-be/internal/models"
	"meal-planner-be/internal/service"
)

const testSecret = "test-secret"

func newAuthService(t *testing.T) (service.AuthService, *mocks.MockUserRepository, *jwt.JWTService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	jwtService := jwt.NewJWTService(testSecret, time.Hour)
	return service.NewAuthService(repo, jwtService), repo, jwtService
}

func TestRegister_Success(t *testing.T) {
	svc, repo, _ := newAuthService(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().FindByUsername(gomock.Any(), "alice").Return(nil, apperrors.NotFoundf("User not found"))
	repo.EXPECT().
		Create(gomock.Any(), "alice", gomock.Any()).
		DoAndReturn(func(_ context.Context, username, hash string) (*entities.User, error) {
			if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret1")); err != nil {
				t.Fatalf("stored hash does not match password: %v", err)
			}
			return &entities.User{ID: 7, Username: username, PasswordHash: hash, CreatedAt: created}, nil
		})

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{Username: " alice ", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.User.ID != 7 || resp.User.Username != "alice" {
		t.Errorf("user = %+v", resp.User)
	}
	if resp.Message != "User registered successfully" {
		t.Errorf("Message = %q", resp.Message)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, repo, _ := newAuthService(t)

	repo.EXPECT().FindByUsername(gomock.Any(), "alice").Return(&entities.User{ID: 1, Username: "alice"}, nil)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{Username: "alice", Password: "secret1"})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if apperrors.HTTPStatus(err) != 400 {
		t.Errorf("HTTPStatus = %d, want 400", apperrors.HTTPStatus(err))
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{Username: "   ", Password: "secret1"})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRegister_LookupFailure(t *testing.T) {
	svc, repo, _ := newAuthService(t)

	repo.EXPECT().
		FindByUsername(gomock.Any(), "alice").
		Return(nil, apperrors.Storage("failed to load user", errors.New("timeout")))

	_, err := svc.Register(context.Background(), &models.RegisterRequest{Username: "alice", Password: "secret1"})
	if !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc, repo, jwtService := newAuthService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	repo.EXPECT().
		FindByUsername(gomock.Any(), "alice").
		Return(&entities.User{ID: 9, Username: "alice", PasswordHash: string(hash)}, nil)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := jwtService.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != 9 {
		t.Errorf("UserID = %d, want 9", claims.UserID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo, _ := newAuthService(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	repo.EXPECT().
		FindByUsername(gomock.Any(), "alice").
		Return(&entities.User{ID: 9, Username: "alice", PasswordHash: string(hash)}, nil)

	_, err := svc.Login(context.Background(), &models.LoginRequest{Username: "alice", Password: "nope"})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, repo, _ := newAuthService(t)

	repo.EXPECT().FindByUsername(gomock.Any(), "ghost").Return(nil, apperrors.NotFoundf("User not found"))

	_, err := svc.Login(context.Background(), &models.LoginRequest{Username: "ghost", Password: "whatever"})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if apperrors.PublicMessage(err, "") != "Invalid credentials" {
		t.Errorf("message = %q", apperrors.PublicMessage(err, ""))
	}
}
