package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "user_id"
	JWTEmailKey   = "jwt_email"
	JWTIsStaffKey = "jwt_is_staff"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// TokenBlacklist is optional for checking revoked tokens
	TokenBlacklist auth.TokenBlacklist
	// Optional callback if token is invalid (default: return 401)
	OnError func(c *gin.Context, err error)
	Logger  *zap.Logger
}

// JWTAuthMiddleware rejects requests without a valid access token
func JWTAuthMiddleware(jwtService *auth.JWTService, blacklist auth.TokenBlacklist) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{JWTService: jwtService, TokenBlacklist: blacklist})
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware with custom config
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			handleAuthError(c, cfg, auth.ErrInvalidToken, "Missing or malformed authorization header")
			return
		}

		claims, err := authenticate(c, cfg, tokenString)
		if err != nil {
			handleAuthError(c, cfg, err, "Token validation failed")
			return
		}

		setClaims(c, claims)
		if cfg.Logger != nil {
			cfg.Logger.Debug("JWT authentication successful",
				zap.String("user_id", claims.UserID),
				zap.Bool("is_staff", claims.IsStaff),
			)
		}
		c.Next()
	}
}

// OptionalJWTAuthMiddleware extracts claims when a valid token is present.
// Invalid or revoked tokens are ignored and the request continues anonymously.
func OptionalJWTAuthMiddleware(jwtService *auth.JWTService, blacklist auth.TokenBlacklist) gin.HandlerFunc {
	cfg := JWTMiddlewareConfig{JWTService: jwtService, TokenBlacklist: blacklist}
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		claims, err := authenticate(c, cfg, tokenString)
		if err != nil {
			c.Next()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

func authenticate(c *gin.Context, cfg JWTMiddlewareConfig, tokenString string) (*auth.Claims, error) {
	claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, err
	}
	if _, err := claims.GetUserUUID(); err != nil {
		return nil, auth.ErrInvalidClaims
	}
	if cfg.TokenBlacklist == nil {
		return claims, nil
	}

	ctx := c.Request.Context()
	// blacklist lookup errors fail open
	if claims.ID != "" {
		blacklisted, err := cfg.TokenBlacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			logger.FromContext(ctx).Error("Failed to check token blacklist",
				zap.String("jti", claims.ID), zap.Error(err))
		} else if blacklisted {
			return nil, auth.ErrTokenBlacklisted
		}
	}
	invalidated, err := cfg.TokenBlacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		logger.FromContext(ctx).Error("Failed to check user token invalidation",
			zap.String("user_id", claims.UserID), zap.Error(err))
	} else if invalidated {
		return nil, auth.ErrTokenBlacklisted
	}
	return claims, nil
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTEmailKey, claims.Email)
	c.Set(JWTIsStaffKey, claims.IsStaff)
	annotateSpanUser(c, claims.UserID, claims.IsStaff)

	ctx := c.Request.Context()
	ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
	c.Request = c.Request.WithContext(ctx)
}

// handleAuthError handles authentication errors
func handleAuthError(c *gin.Context, cfg JWTMiddlewareConfig, err error, message string) {
	if cfg.OnError != nil {
		cfg.OnError(c, err)
		return
	}

	if cfg.Logger != nil {
		cfg.Logger.Warn("JWT authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code := dto.ErrCodeUnauthorized
	msg := "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, msg = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		code, msg = dto.ErrCodeTokenInvalid, "Token has been revoked"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidTokenType),
		errors.Is(err, auth.ErrInvalidClaims), errors.Is(err, auth.ErrTokenNotYetValid):
		code, msg = dto.ErrCodeTokenInvalid, "Invalid token"
	}

	abortWithError(c, http.StatusUnauthorized, code, msg)
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetUserUUID returns the authenticated user id, if any
func GetUserUUID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(GetJWTUserID(c))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// IsStaff reports whether the authenticated user is staff
func IsStaff(c *gin.Context) bool {
	return c.GetBool(JWTIsStaffKey)
}
