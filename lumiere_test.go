// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	empty := ""
	require.NoError(t, readConfig(&empty))

	opts := uiOptionsFromConfig()
	assert.Equal(t, 50*time.Millisecond, opts.PollInterval)
	assert.Equal(t, 5*time.Second, opts.SeekForward)
	assert.Equal(t, 2*time.Second, opts.SeekBackward)
}

func TestReadConfigCustomFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "lumiere.toml")
	content := "[player]\npoll-interval-ms = 10\nseek-forward-s = 30\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, readConfig(&path))

	opts := uiOptionsFromConfig()
	assert.Equal(t, 10*time.Millisecond, opts.PollInterval)
	assert.Equal(t, 30*time.Second, opts.SeekForward)
	assert.Equal(t, 2*time.Second, opts.SeekBackward, "unset keys keep defaults")
}

func TestReadConfigRejectsBadPollInterval(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "lumiere.toml")
	require.NoError(t, os.WriteFile(path, []byte("[player]\npoll-interval-ms = 0\n"), 0o644))

	assert.Error(t, readConfig(&path))
}
