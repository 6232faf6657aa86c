package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"postauth/internal/config"
	"postauth/internal/models"
)

// Claims is the payload of an access token.
type Claims struct {
	Name  string   `json:"name"`
	Roles []string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type AccessToken struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
	ID         string    `json:"-"`
}

type TokenService interface {
	IssueToken(user *models.User, roles []string) (*AccessToken, error)
	ParseToken(tokenString string) (*models.Caller, error)
}

// JWTService signs and verifies HS256 access tokens.
type JWTService struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewTokenService(cfg config.JWT) (*JWTService, error) {
	if cfg.Key == "" {
		return nil, ErrMissingSigningKey
	}
	if cfg.ExpireMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d minutes", ErrInvalidTokenTTL, cfg.ExpireMinutes)
	}

	return &JWTService{
		key:      []byte(cfg.Key),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.ExpireDuration(),
		now:      time.Now,
	}, nil
}

// IssueToken mints a token for an already verified user. Every call gets a
// fresh jti, and exp is exactly iat plus the configured lifetime.
func (s *JWTService) IssueToken(user *models.User, roles []string) (*AccessToken, error) {
	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	claims := Claims{
		Name:  user.Username,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.key)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &AccessToken{Token: tokenString, Expiration: expiresAt, ID: claims.ID}, nil
}

// ParseToken verifies signature, issuer, audience and expiry with no leeway,
// and returns the caller the token speaks for.
func (s *JWTService) ParseToken(tokenString string) (*models.Caller, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid || claims.Name == "" {
		return nil, ErrInvalidToken
	}

	return models.NewCaller(claims.Name, claims.Roles), nil
}
