// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

func secondsToMinAndSec(seconds int64) (int, int) {
	minutes := int(seconds / 60)
	remainingSeconds := int(seconds % 60)
	return minutes, remainingSeconds
}

// titleForMedia picks the window title: media title, else the filename from
// the URI, else the raw URI.
func titleForMedia(title, uri string) string {
	if title != "" {
		return title
	}
	if name := filenameFromURI(uri); name != "" {
		return name
	}
	return uri
}

func filenameFromURI(uri string) string {
	if path := localPathFromURI(uri); path != "" {
		return filepath.Base(path)
	}
	if u, err := url.Parse(uri); err == nil && u.Path != "" {
		return filepath.Base(u.Path)
	}
	return ""
}

// localPathFromURI maps a file URI or bare path to a filesystem path, or ""
// for remote media.
func localPathFromURI(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		if u, err := url.Parse(uri); err == nil {
			return u.Path
		}
		return ""
	}
	if !strings.Contains(uri, "://") {
		return uri
	}
	return ""
}

// siblingSubtitleURI returns the URI of an .srt file sitting next to the
// media file, or "" when there is none (or the media is not local).
func siblingSubtitleURI(uri string) string {
	path := localPathFromURI(uri)
	if path == "" {
		return ""
	}
	subPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".srt"
	if fi, err := os.Stat(subPath); err != nil || fi.IsDir() {
		return ""
	}
	if strings.HasPrefix(uri, "file://") {
		return "file://" + subPath
	}
	return subPath
}
