package services

import (
	"fmt"

	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/InkVite/inkvite-go/internal/infrastructure/security"
	"github.com/InkVite/inkvite-go/pkg/config"
	"github.com/golang-jwt/jwt/v4"
)

// AuthService issues and validates admin session tokens.
type AuthService struct {
	logger *logging.ChanneledLogger
}

// NewAuthService creates a new auth application service.
func NewAuthService(logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{logger: logger}
}

// Login verifies the admin password and issues a signed session token.
func (s *AuthService) Login(password string) (string, error) {
	if config.AdminPassword == "" {
		return "", fmt.Errorf("admin password is not configured")
	}
	if config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret is not configured")
	}

	if !security.VerifyPassword(password, config.AdminPassword) {
		s.logger.Auth().Warn("Admin login rejected")
		return "", fmt.Errorf("invalid credentials")
	}

	token, err := security.GenerateAdminToken(config.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Auth().Info("Admin login succeeded")
	return token, nil
}

// ValidateToken checks a session token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is not configured")
	}

	claims, err := security.ValidateJWT(tokenString, config.JWTSecret)
	if err != nil {
		return nil, err
	}
	if !security.IsAdminClaims(claims) {
		return nil, fmt.Errorf("token does not carry the admin role")
	}
	return claims, nil
}
