package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shop/backend/internal/infrastructure/config"
)

// TokenType tells access and refresh tokens apart
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// clockSkew is the leeway granted on exp, nbf and iat checks
const clockSkew = 30 * time.Second

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidTokenType   = errors.New("invalid token type")
	ErrInvalidClaims      = errors.New("invalid token claims")
	ErrTokenNotYetValid   = errors.New("token is not yet valid")
	ErrMissingUserID      = errors.New("missing user_id in claims")
	ErrMaxRefreshExceeded = errors.New("maximum refresh count exceeded")
	ErrTokenBlacklisted   = errors.New("token has been revoked")
)

// Claims are the shop's JWT claims. Refresh tokens carry only the user id
// and the rotation count; profile data is re-read when they are used.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string    `json:"user_id"`
	Email        string    `json:"email,omitempty"`
	IsStaff      bool      `json:"is_staff,omitempty"`
	TokenType    TokenType `json:"token_type"`
	RefreshCount int       `json:"refresh_count,omitempty"`
}

// TokenPair is what the token endpoints return
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// GenerateTokenInput is the user state embedded in a new access token
type GenerateTokenInput struct {
	UserID  uuid.UUID
	Email   string
	IsStaff bool
}

// keyring signs and verifies one kind of token
type keyring struct {
	kind   TokenType
	secret []byte
	ttl    time.Duration
}

// JWTService issues and validates HS256 token pairs
type JWTService struct {
	access          keyring
	refresh         keyring
	issuer          string
	maxRefreshCount int
	parser          *jwt.Parser
	now             func() time.Time
}

// NewJWTService creates a JWTService. Refresh tokens are signed with the
// access secret when no refresh secret is configured.
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.Secret
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(clockSkew),
		jwt.WithIssuedAt(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer), jwt.WithAudience(cfg.Issuer))
	}

	return &JWTService{
		access:          keyring{kind: TokenTypeAccess, secret: []byte(cfg.Secret), ttl: cfg.AccessTokenExpiration},
		refresh:         keyring{kind: TokenTypeRefresh, secret: []byte(refreshSecret), ttl: cfg.RefreshTokenExpiration},
		issuer:          cfg.Issuer,
		maxRefreshCount: cfg.MaxRefreshCount,
		parser:          jwt.NewParser(opts...),
		now:             time.Now,
	}
}

// GenerateTokenPair issues a fresh access and refresh token
func (s *JWTService) GenerateTokenPair(input GenerateTokenInput) (*TokenPair, error) {
	return s.issue(input, 0)
}

func (s *JWTService) issue(input GenerateTokenInput, refreshCount int) (*TokenPair, error) {
	now := s.now()

	access, err := s.sign(s.access, now, &Claims{
		UserID:  input.UserID.String(),
		Email:   input.Email,
		IsStaff: input.IsStaff,
	})
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(s.refresh, now, &Claims{
		UserID:       input.UserID.String(),
		RefreshCount: refreshCount,
	})
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           access,
		RefreshToken:          refresh,
		AccessTokenExpiresAt:  now.Add(s.access.ttl),
		RefreshTokenExpiresAt: now.Add(s.refresh.ttl),
		TokenType:             "Bearer",
	}, nil
}

func (s *JWTService) sign(k keyring, now time.Time, claims *Claims) (string, error) {
	claims.TokenType = k.kind
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.issuer,
		Subject:   claims.UserID,
		ExpiresAt: jwt.NewNumericDate(now.Add(k.ttl)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	if s.issuer != "" {
		claims.Audience = jwt.ClaimStrings{s.issuer}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(k.secret)
}

// ValidateAccessToken validates an access token and returns its claims
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.verify(s.access, tokenString)
}

// ValidateRefreshToken validates a refresh token and returns its claims
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.verify(s.refresh, tokenString)
}

func (s *JWTService) verify(k keyring, tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return k.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenNotYetValid
	case err != nil:
		return nil, ErrInvalidToken
	}

	if claims.TokenType != k.kind {
		return nil, ErrInvalidTokenType
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}
	return claims, nil
}

// RefreshTokenPair rotates a refresh token into a new pair built from the
// user's current state. Each rotation bumps the refresh count, and a chain
// ends after the configured maximum.
func (s *JWTService) RefreshTokenPair(refreshToken string, current GenerateTokenInput) (*TokenPair, error) {
	claims, err := s.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.RefreshCount >= s.maxRefreshCount {
		return nil, ErrMaxRefreshExceeded
	}
	if claims.UserID != current.UserID.String() {
		return nil, ErrInvalidClaims
	}
	return s.issue(current, claims.RefreshCount+1)
}

// GetUserUUID parses the user id claim
func (c *Claims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// GetIssuedAtTime returns iat, or the zero time when absent
func (c *Claims) GetIssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// GetRemainingTTL is how long the token stays valid, never negative. Logout
// blacklists the token id for this long.
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(time.Until(c.ExpiresAt.Time), 0)
}
