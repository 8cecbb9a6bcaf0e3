// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package engine

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/hwills/lumiere/logger"
)

// positionCache remembers the last known playback position per media URI so
// that reopening a file resumes where it left off. The file format is owned
// by the engine; callers only supply the path. An empty path disables
// persistence.
type positionCache struct {
	path    string
	entries map[string]float64
	logger  logger.LoggerInterface
}

// CachePath returns the default media cache file location under the user's
// cache directory, creating the directory on the way. It returns an empty
// path when no cache directory is available, which disables resume.
func CachePath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(base, "lumiere")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "media-cache.json")
}

func newPositionCache(path string, logger logger.LoggerInterface) *positionCache {
	c := &positionCache{
		path:    path,
		entries: make(map[string]float64),
		logger:  logger,
	}
	if err := c.load(); err != nil {
		logger.PrintError("position cache load", err)
	}
	return c
}

func (c *positionCache) load() error {
	if c.path == "" {
		return nil
	}
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	return json.Unmarshal(data, &c.entries)
}

func (c *positionCache) save() error {
	if c.path == "" {
		return nil
	}
	data, err := json.Marshal(c.entries)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}

func (c *positionCache) get(uri string) (time.Duration, bool) {
	seconds, ok := c.entries[uri]
	if !ok {
		return 0, false
	}
	return time.Duration(seconds * float64(time.Second)), true
}

func (c *positionCache) set(uri string, position time.Duration) {
	c.entries[uri] = position.Seconds()
}
