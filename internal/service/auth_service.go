package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"postauth/internal/models"
	"postauth/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*AccessToken, error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokens    TokenService
	validator *Validator
	log       logrus.FieldLogger
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenService, validator *Validator, log logrus.FieldLogger) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokens:    tokens,
		validator: validator,
		log:       log,
	}
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	existingUser, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	switch {
	case err == nil && existingUser != nil:
		return nil, ErrUserExists
	case err != nil && !errors.Is(err, repository.ErrUserNotFound):
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if err := s.validator.ValidateRegistration(req); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:      req.Username,
		Email:         req.Email,
		SecurityStamp: uuid.New().String(),
	}

	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": user.UserID, "username": user.Username}).Info("user registered")
	return user, nil
}

// Login never tells the caller whether the username or the password was wrong.
func (s *authService) Login(ctx context.Context, username, password string) (*AccessToken, error) {
	user, err := s.userRepo.VerifyPassword(ctx, username, password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			s.log.WithField("username", username).Debug("login rejected")
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("verify password: %w", err)
	}

	roles, err := s.userRepo.GetRoles(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueToken(user, roles)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"username": user.Username, "jti": token.ID}).Info("access token issued")
	return token, nil
}
