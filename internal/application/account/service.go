// Package account implements the registration and login use cases.
package account

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/mealforge/mealforge/internal/domain/user"
	"github.com/mealforge/mealforge/internal/infrastructure/config"
	"github.com/mealforge/mealforge/internal/infrastructure/security"
	"github.com/mealforge/mealforge/internal/ports/inbound"
	"github.com/mealforge/mealforge/internal/ports/outbound"
	"github.com/mealforge/mealforge/pkg/errors"
)

// Service issues bearer tokens against the credential store. Login
// failures are reported with a single undifferentiated error so the
// response does not reveal whether a username exists.
type Service struct {
	credentials outbound.CredentialRepository
	tokens      *security.TokenService
	bcryptCost  int
	logger      *zap.Logger
}

func NewService(
	credentials outbound.CredentialRepository,
	tokens *security.TokenService,
	cfg *config.Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		credentials: credentials,
		tokens:      tokens,
		bcryptCost:  cfg.Auth.BCryptCost,
		logger:      logger,
	}
}

var _ inbound.AccountService = (*Service)(nil)

// Register creates a credential and returns a token for the new account.
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	cred, err := user.NewCredential(username, password, s.bcryptCost)
	if err != nil {
		if stderrors.Is(err, user.ErrEmptyUsername) || stderrors.Is(err, user.ErrEmptyPassword) {
			return "", errors.NewValidationError("username and password are required")
		}
		s.logger.Error("failed to hash password", zap.Error(err))
		return "", errors.NewInternalError("failed to create account")
	}

	if err := s.credentials.Create(ctx, cred); err != nil {
		if stderrors.Is(err, user.ErrAlreadyExists) {
			return "", errors.NewUsernameAlreadyExistsError(username)
		}
		return "", err
	}

	s.logger.Info("account registered", zap.String("username", username))
	return s.tokens.Issue(username)
}

// Login verifies the password and returns a fresh token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	cred, err := s.credentials.FindByUsername(ctx, username)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			return "", errors.NewInvalidCredentialsError()
		}
		return "", err
	}

	if err := cred.CheckPassword(password); err != nil {
		return "", errors.NewInvalidCredentialsError()
	}

	s.logger.Info("login succeeded", zap.String("username", username))
	return s.tokens.Issue(username)
}
