package account

import (
	"context"
	"errors"
	"time"

	"github.com/shop/backend/internal/domain/account"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

var errBadCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")

// AuthService issues and rotates access tokens
type AuthService struct {
	userRepo   account.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo account.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Authenticate exchanges email and password for a token pair.
// Unknown emails, wrong passwords and inactive users are all rejected
// with the same UNAUTHORIZED error.
func (s *AuthService) Authenticate(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login for unknown email", zap.String("email", req.Email))
			return nil, errBadCredentials
		}
		return nil, err
	}
	if !user.IsActive || !user.CheckPassword(req.Password) {
		s.logger.Warn("Rejected login", zap.String("user_id", user.ID.String()), zap.Bool("active", user.IsActive))
		return nil, errBadCredentials
	}

	pair, err := s.jwtService.GenerateTokenPair(tokenInput(user))
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, err
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return toTokenResponse(pair), nil
}

// RefreshTokens rotates a refresh token. Staff rights and activity are
// re-read from the user record.
func (s *AuthService) RefreshTokens(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, refreshError(err)
	}
	if s.blacklist != nil {
		revoked, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
		if err != nil {
			s.logger.Warn("Blacklist lookup failed", zap.Error(err))
		} else if revoked {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Refresh token has been revoked")
		}
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "User no longer exists")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("UNAUTHORIZED", "User is not active")
	}

	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, tokenInput(user))
	if err != nil {
		return nil, refreshError(err)
	}
	return toTokenResponse(pair), nil
}

// Logout revokes one access token by its JWT ID
func (s *AuthService) Logout(ctx context.Context, jti string, ttl time.Duration) error {
	if s.blacklist == nil || jti == "" {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, jti, ttl); err != nil {
		s.logger.Error("Failed to revoke token", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}

func refreshError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("UNAUTHORIZED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("UNAUTHORIZED", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}
}

func tokenInput(u *account.User) auth.GenerateTokenInput {
	return auth.GenerateTokenInput{
		UserID:  u.ID,
		Email:   u.Email,
		IsStaff: u.IsStaff,
	}
}

func toTokenResponse(p *auth.TokenPair) *TokenResponse {
	return &TokenResponse{
		AccessToken:           p.AccessToken,
		RefreshToken:          p.RefreshToken,
		AccessTokenExpiresAt:  p.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: p.RefreshTokenExpiresAt,
		TokenType:             p.TokenType,
	}
}
