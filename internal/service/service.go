package service

import (
	"github.com/sirupsen/logrus"

	"postauth/internal/config"
	"postauth/internal/repository"
)

type Service struct {
	Auth   AuthService
	Post   PostService
	Tokens TokenService
}

func NewService(rep *repository.Repository, cfg *config.Config, log logrus.FieldLogger) (*Service, error) {
	tokens, err := NewTokenService(cfg.JWT)
	if err != nil {
		return nil, err
	}

	validator := NewValidator(cfg.PasswordMinLength)

	return &Service{
		Auth:   NewAuthService(rep.User, tokens, validator, log),
		Post:   NewPostService(rep.Post, rep.User, validator, log),
		Tokens: tokens,
	}, nil
}
