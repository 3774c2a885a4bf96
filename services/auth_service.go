package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"coffee-order/models"
	"coffee-order/repositories"
	"coffee-order/utils"

	"github.com/google/uuid"
)

type AuthService struct {
	users  repositories.UserRepository
	tokens *utils.TokenManager
}

func NewAuthService(users repositories.UserRepository, tokens *utils.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// StartSession issues a guest token bound to a fresh session id.
func (s *AuthService) StartSession() (*models.SessionResponse, error) {
	sessionID := uuid.NewString()
	token, err := s.tokens.Generate(utils.Claims{SessionID: sessionID, Role: models.RoleGuest})
	if err != nil {
		return nil, err
	}
	return &models.SessionResponse{Token: token, SessionID: sessionID}, nil
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:    normalizeEmail(req.Email),
		Password: hashedPassword,
		FullName: strings.TrimSpace(req.FullName),
		Phone:    strings.TrimSpace(req.Phone),
		Role:     models.RoleCustomer,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := utils.CheckPassword(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) Profile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *AuthService) issue(user *models.User) (*models.LoginResponse, error) {
	token, err := s.tokens.Generate(utils.Claims{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: *user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
