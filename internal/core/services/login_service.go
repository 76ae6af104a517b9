package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
	"github.com/kamal-hamza/storefront-cli/internal/core/ports"
)

// LoginService checks credentials against the mock user list
type LoginService struct {
	users  ports.UserDirectory
	delay  time.Duration
	logger *zap.Logger
}

func NewLoginService(users ports.UserDirectory, delay time.Duration, logger *zap.Logger) *LoginService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginService{
		users:  users,
		delay:  delay,
		logger: logger,
	}
}

// Login answers after the simulated latency. A wrong username or password
// is a normal response, not an error.
func (s *LoginService) Login(ctx context.Context, creds domain.LoginCredentials) (*domain.LoginResponse, error) {
	if err := sleepCtx(ctx, s.delay); err != nil {
		return nil, err
	}

	ok, err := s.users.Match(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to check credentials: %w", err)
	}

	s.logger.Info("login attempt", zap.String("username", creds.Username), zap.Bool("success", ok))

	if !ok {
		return &domain.LoginResponse{Success: false, Message: domain.MessageLoginFailure}, nil
	}
	return &domain.LoginResponse{Success: true, Message: domain.MessageLoginSuccess}, nil
}
