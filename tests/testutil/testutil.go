// Package testutil provides shared test helpers for the shop backend:
// an in-memory sqlite schema, event recorders and polling assertions.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// NewTestUUID returns a UUID derived from seed, stable across runs
func NewTestUUID(seed string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("shop-test:"+seed))
}

// ContextWithTimeout returns a context cancelled when the test ends or
// after timeout, whichever comes first
func ContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// RequireEventually polls condition until it holds and fails the test
// when timeout passes first
func RequireEventually(t *testing.T, condition func() bool, timeout time.Duration, msgAndArgs ...any) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.Fail(t, "Condition not met within "+timeout.String(), msgAndArgs...)
}
