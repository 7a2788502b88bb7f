package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()
	key := "products/1/front.webp"

	upload, expiresAt, err := s.GenerateUploadURL(ctx, key, "image/webp", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(upload, "https://storage.example.com/upload/"+key+"?expires="))
	assert.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, time.Second)

	download, _, err := s.GenerateDownloadURL(ctx, key, time.Hour)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(download, "https://storage.example.com/download/"+key))

	exists, err := s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.DeleteObject(ctx, key))
	exists, err = s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	_, _, err = s.GenerateUploadURL(ctx, key, "image/webp", time.Minute)
	require.NoError(t, err)
	exists, err = s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	_, _, err = s.GenerateUploadURL(ctx, "", "image/webp", time.Minute)
	assert.ErrorIs(t, err, errKeyRequired)
	assert.ErrorIs(t, s.DeleteObject(ctx, ""), errKeyRequired)
}
