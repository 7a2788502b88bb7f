package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shop/backend/internal/infrastructure/cache"
	"github.com/shop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// TokenBlacklist revokes JWTs before they expire: single tokens on logout and
// every token of a user when staff deactivates the account
type TokenBlacklist interface {
	// AddToBlacklist revokes one token id for ttl, normally the token's
	// remaining lifetime
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)

	// AddUserTokensToBlacklist revokes every token of the user issued up to now
	AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error
	IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error)
}

const revokedKeyPrefix = "shop:revoked:"

func revokedTokenKey(jti string) string   { return revokedKeyPrefix + "token:" + jti }
func revokedUserKey(userID string) string { return revokedKeyPrefix + "user:" + userID }

// issuedBefore reports whether a token issued at iat falls under a user
// revocation made at cutoff. iat has second precision, so a token issued in
// the same second as the revocation is revoked as well.
func issuedBefore(iat, cutoff time.Time) bool {
	return iat.Unix() <= cutoff.Unix()
}

// RedisTokenBlacklist shares revocations between API instances
type RedisTokenBlacklist struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewRedisTokenBlacklist wraps an existing client
func NewRedisTokenBlacklist(client redis.UniversalClient) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client, now: time.Now}
}

func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, revokedTokenKey(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token %s: %w", jti, err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, revokedTokenKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to look up token %s: %w", jti, err)
	}
	return n > 0, nil
}

// AddUserTokensToBlacklist stores the revocation time in unix seconds. The
// key should outlive the longest refresh token.
func (b *RedisTokenBlacklist) AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error {
	cutoff := strconv.FormatInt(b.now().Unix(), 10)
	if err := b.client.Set(ctx, revokedUserKey(userID), cutoff, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke tokens of user %s: %w", userID, err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	raw, err := b.client.Get(ctx, revokedUserKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up revocation of user %s: %w", userID, err)
	}
	sec, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("corrupt revocation time for user %s: %w", userID, err)
	}
	return issuedBefore(tokenIssuedAt, time.Unix(sec, 0)), nil
}

func (b *RedisTokenBlacklist) Close() error {
	return b.client.Close()
}

type revocation struct {
	at      time.Time
	expires time.Time
}

// InMemoryTokenBlacklist keeps revocations in process. Used when redis is
// disabled or unreachable, and in tests.
type InMemoryTokenBlacklist struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	users  map[string]revocation
	now    func() time.Time
}

func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		tokens: make(map[string]time.Time),
		users:  make(map[string]revocation),
		now:    time.Now,
	}
}

func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[jti] = b.now().Add(ttl)
	return nil
}

func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expires, ok := b.tokens[jti]
	if !ok {
		return false, nil
	}
	if !b.now().Before(expires) {
		delete(b.tokens, jti)
		return false, nil
	}
	return true, nil
}

// AddUserTokensToBlacklist revokes the user's tokens for ttl. A ttl of zero
// or less keeps the revocation until the process exits.
func (b *InMemoryTokenBlacklist) AddUserTokensToBlacklist(_ context.Context, userID string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	r := revocation{at: now}
	if ttl > 0 {
		r.expires = now.Add(ttl)
	}
	b.users[userID] = r
	return nil
}

func (b *InMemoryTokenBlacklist) IsUserTokenInvalidated(_ context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r, ok := b.users[userID]
	if !ok {
		return false, nil
	}
	if !r.expires.IsZero() && !b.now().Before(r.expires) {
		delete(b.users, userID)
		return false, nil
	}
	return issuedBefore(tokenIssuedAt, r.at), nil
}

var (
	_ TokenBlacklist = (*RedisTokenBlacklist)(nil)
	_ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
)

// NewTokenBlacklist returns a redis blacklist when redis is enabled and
// reachable, and the in-memory one otherwise
func NewTokenBlacklist(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) TokenBlacklist {
	if !cfg.Enabled {
		log.Info("using in-memory token blacklist")
		return NewInMemoryTokenBlacklist()
	}
	client, err := cache.Connect(ctx, cfg)
	if err != nil {
		log.Warn("redis unavailable, token revocations stay local to this instance", zap.Error(err))
		return NewInMemoryTokenBlacklist()
	}
	log.Info("using redis token blacklist", zap.String("addr", cfg.Addr()))
	return NewRedisTokenBlacklist(client)
}
