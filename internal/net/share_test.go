package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StudyInk/internal/storage"
)

func TestBackupPull(t *testing.T) {
	ctx := context.Background()

	source := storage.NewAdapter(storage.NewMemStore())
	require.NoError(t, source.Save(ctx, "john:3", `[{"tool":"pen"}]`, 100))
	require.NoError(t, source.Save(ctx, "mark:1", "[]", 0))

	srv := NewServer(source)
	ts := httptest.NewServer(http.HandlerFunc(srv.handle))
	defer ts.Close()

	dest := storage.NewAdapter(storage.NewMemStore())
	n, err := Pull(ctx, strings.TrimPrefix(ts.URL, "http://"), dest)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, height, ok, err := dest.Load(ctx, "john:3")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"tool":"pen"}]`, data)
	assert.Equal(t, 100.0, height)
}

func TestBackupPullOverwrites(t *testing.T) {
	ctx := context.Background()

	source := storage.NewAdapter(storage.NewMemStore())
	require.NoError(t, source.Save(ctx, "john:3", `[{"tool":"marker"}]`, 0))

	srv := NewServer(source)
	ts := httptest.NewServer(http.HandlerFunc(srv.handle))
	defer ts.Close()

	dest := storage.NewAdapter(storage.NewMemStore())
	require.NoError(t, dest.Save(ctx, "john:3", `[{"tool":"pen"}]`, 0))

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := Pull(ctx2, strings.TrimPrefix(ts.URL, "http://"), dest)
	require.NoError(t, err)

	data, _, ok, err := dest.Load(ctx, "john:3")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"tool":"marker"}]`, data, "last writer wins, no merge")
}
