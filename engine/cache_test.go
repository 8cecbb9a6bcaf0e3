// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwills/lumiere/logger"
)

func TestPositionCacheRoundTrip(t *testing.T) {
	log := logger.Init()
	path := filepath.Join(t.TempDir(), "media-cache.json")

	c := newPositionCache(path, log)
	c.set("file:///tmp/a.mkv", 90*time.Second)
	c.set("file:///tmp/b.mkv", 12500*time.Millisecond)
	require.NoError(t, c.save())

	reloaded := newPositionCache(path, log)
	pos, ok := reloaded.get("file:///tmp/a.mkv")
	require.True(t, ok)
	assert.Equal(t, 90*time.Second, pos)

	pos, ok = reloaded.get("file:///tmp/b.mkv")
	require.True(t, ok)
	assert.Equal(t, 12500*time.Millisecond, pos)

	_, ok = reloaded.get("file:///tmp/unknown.mkv")
	assert.False(t, ok)
}

func TestPositionCacheMissingFile(t *testing.T) {
	log := logger.Init()
	c := newPositionCache(filepath.Join(t.TempDir(), "nope.json"), log)
	_, ok := c.get("file:///tmp/a.mkv")
	assert.False(t, ok)
}

func TestPositionCacheCorruptFile(t *testing.T) {
	log := logger.Init()
	path := filepath.Join(t.TempDir(), "media-cache.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	// a corrupt cache is a recoverable error: start empty
	c := newPositionCache(path, log)
	_, ok := c.get("file:///tmp/a.mkv")
	assert.False(t, ok)
}

func TestPositionCacheEmptyPathDisablesPersistence(t *testing.T) {
	log := logger.Init()
	c := newPositionCache("", log)
	c.set("file:///tmp/a.mkv", time.Minute)
	assert.NoError(t, c.save())
}
