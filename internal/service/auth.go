package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cms-backend/internal/config"
	"cms-backend/internal/models"
	"cms-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var ( // Define custom errors
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("token malformed")
	ErrInvalidSignature   = errors.New("invalid token signature")
	ErrMissingNameClaim   = errors.New("token has no name claim")
	ErrUserNotFound       = errors.New("user for token not found")
)

type AuthService interface {
	Register(ctx context.Context, name, password string) (*models.User, error)
	Login(ctx context.Context, name, password string) (string, error)
	ResolveToken(ctx context.Context, tokenString string) (*models.User, error)
}

type authService struct {
	users     repository.UserRepository
	logger    *zap.Logger
	jwtSecret []byte
	tokenTTL  time.Duration

	// dummyHash is verified against on the unknown-user login path so that
	// "no such user" and "wrong password" take comparable time.
	dummyHash string
}

func NewAuthService(users repository.UserRepository, cfg *config.Config, logger *zap.Logger) (AuthService, error) {
	dummyHash, err := hashPassword("cms-dummy-credential")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &authService{
		users:     users,
		logger:    logger,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute,
		dummyHash: dummyHash,
	}, nil
}

func (s *authService) Register(ctx context.Context, name, password string) (*models.User, error) {
	passwordHash, err := hashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		PasswordHash: passwordHash,
	}

	err = s.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and returns a signed access token. Unknown
// user and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, name, password string) (string, error) {
	user, err := s.users.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			verifyPassword(password, s.dummyHash)
			return "", ErrInvalidCredentials
		}
		s.logger.Error("Failed to get user by name", zap.Error(err))
		return "", fmt.Errorf("failed to retrieve user: %w", err)
	}

	if !verifyPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	tokenString, err := s.issueToken(user)
	if err != nil {
		s.logger.Error("Failed to generate JWT token", zap.Error(err))
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in successfully.", zap.String("name", user.Name))

	return tokenString, nil
}

func (s *authService) issueToken(user *models.User) (string, error) {
	claims := &models.Claims{
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ResolveToken verifies the token's signature and expiry, then loads the
// user named by its claim. A valid token whose user has vanished fails
// with ErrUserNotFound.
func (s *authService) ResolveToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is what we expect
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.Name == "" {
		return nil, ErrMissingNameClaim
	}

	user, err := s.users.GetUserByName(ctx, claims.Name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Failed to get user for token", zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return user, nil
}
