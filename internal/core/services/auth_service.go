package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/apperrors"
	portssvc "github.com/SscSPs/quarry_billing_app/internal/core/ports/services"
	"github.com/SscSPs/quarry_billing_app/internal/platform/config"
	"github.com/SscSPs/quarry_billing_app/internal/utils"
)

// authService authenticates the single configured operator account.
type authService struct {
	BaseService
	cfg *config.Config
}

// NewAuthService creates the login service.
func NewAuthService(cfg *config.Config, options ...ServiceOption) portssvc.AuthSvcFacade {
	return &authService{
		BaseService: newBaseService(options...),
		cfg:         cfg,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login checks the operator credentials and issues an access token whose
// subject is the username.
func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1
	passOK := utils.CheckPasswordHash(password, s.cfg.AdminPasswordHash)
	if !userOK || !passOK {
		s.LogWarn(ctx, "Login failed", slog.String("username", username))
		return "", time.Time{}, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}

	token, expiresAt, err := utils.GenerateJWT(username, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("username", username))
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.LogInfo(ctx, "Operator logged in", slog.String("username", username))
	return token, expiresAt, nil
}
