package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/segyhp/loan-backoffice/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_Save(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir)
	require.NoError(t, err)

	content := []byte("xlsx bytes")
	first, err := s.Save(context.Background(), "../general.xlsx", content)
	require.NoError(t, err)
	second, err := s.Save(context.Background(), "general.xlsx", content)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, dir, filepath.Dir(first))
	assert.True(t, strings.HasSuffix(first, "_general.xlsx"))

	got, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestLocal_SaveCancelled(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Save(ctx, "general.xlsx", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocal_CleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir)
	require.NoError(t, err)

	old, err := s.Save(context.Background(), "old.xlsx", []byte("a"))
	require.NoError(t, err)
	fresh, err := s.Save(context.Background(), "fresh.xlsx", []byte("b"))
	require.NoError(t, err)

	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	require.NoError(t, s.CleanupOlderThan(24*time.Hour))

	_, err = os.Stat(old)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}

func TestS3_Key(t *testing.T) {
	c, err := NewS3(S3Config{Endpoint: "localhost:9000", Bucket: "reports", Prefix: "snapshots/"})
	require.NoError(t, err)

	assert.Equal(t, "snapshots/general.xlsx", c.Key("tmp/general.xlsx"))
}

func TestNewFromConfig_Local(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")

	store, err := NewFromConfig(config.StorageConfig{Driver: "local", Dir: dir})

	require.NoError(t, err)
	local, ok := store.(*Local)
	require.True(t, ok)
	assert.Equal(t, dir, local.BaseDir)
}
