package service

import (
	"context"

	"github.com/rafaelleal24/inventory/internal/core/domain"
	"github.com/rafaelleal24/inventory/internal/core/dto"
	"github.com/rafaelleal24/inventory/internal/core/logger"
	"github.com/rafaelleal24/inventory/internal/core/port"
	"github.com/rafaelleal24/inventory/internal/core/serviceerrors"
)

const tokenType = "bearer"

type AuthService struct {
	userRepository port.UserPort
	hasher         port.PasswordHasher
	tokens         port.TokenIssuer
}

func NewAuthService(userRepository port.UserPort, hasher port.PasswordHasher, tokens port.TokenIssuer) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		hasher:         hasher,
		tokens:         tokens,
	}
}

func invalidCredentials() error {
	return serviceerrors.NewUnauthorizedError("incorrect username or password")
}

func (s *AuthService) Login(ctx context.Context, request *dto.LoginRequest) (*domain.Session, error) {
	user, err := s.userRepository.GetByUsername(ctx, request.Username)
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			logger.Warn(ctx, "auth: unknown user", map[string]any{"username": request.Username})
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, request.Password); err != nil {
		logger.Warn(ctx, "auth: wrong password", map[string]any{"user_id": user.ID})
		return nil, invalidCredentials()
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		logger.Error(ctx, "auth: issue token failed", err, map[string]any{"user_id": user.ID})
		return nil, err
	}

	logger.Info(ctx, "User logged in", map[string]any{"user_id": user.ID})
	return &domain.Session{AccessToken: token, TokenType: tokenType, User: user}, nil
}

// Authenticate resolves a bearer token to a principal. The user must still
// exist; deleted users lose access even with an unexpired token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, serviceerrors.NewUnauthorizedError("could not validate credentials")
	}

	user, err := s.userRepository.GetByID(ctx, claims.UserID)
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			return nil, serviceerrors.NewUnauthorizedError("could not validate credentials")
		}
		return nil, err
	}

	return &domain.Principal{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// EnsureAdmin creates the admin account or resets its password.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	if err := s.userRepository.Upsert(ctx, domain.NewUser(username, hash, domain.RoleAdmin)); err != nil {
		return err
	}
	logger.Info(ctx, "Admin user ensured", map[string]any{"username": username})
	return nil
}
