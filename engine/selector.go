// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Track menu entries carry opaque selector strings. The schemes are fixed:
//
//	audio track:   "audio-<index>"
//	video track:   "video-<index>"
//	subtitle:      "none" | "sub-<index>" | "ext-<uri>"
//	visualization: "none" | "<effect name>"
//
// Index -1 is the disable sentinel used by the leading menu entry.
// Malformed selectors are reported as errors, never panics; callers log and
// keep their previous state.

const (
	SelectorNone = "none"

	audioSelectorPrefix    = "audio-"
	videoSelectorPrefix    = "video-"
	inbandSelectorPrefix   = "sub-"
	externalSelectorPrefix = "ext-"
)

func AudioSelector(index int) string {
	return fmt.Sprintf("%s%d", audioSelectorPrefix, index)
}

func VideoSelector(index int) string {
	return fmt.Sprintf("%s%d", videoSelectorPrefix, index)
}

func ParseAudioSelector(s string) (int, error) {
	return parseIndexSelector(audioSelectorPrefix, s)
}

func ParseVideoSelector(s string) (int, error) {
	return parseIndexSelector(videoSelectorPrefix, s)
}

func parseIndexSelector(prefix, s string) (int, error) {
	rest, ok := strings.CutPrefix(s, prefix)
	if !ok {
		return 0, fmt.Errorf("track selector %q: missing %q prefix", s, prefix)
	}
	index, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("track selector %q: %v", s, err)
	}
	if index < -1 {
		return 0, fmt.Errorf("track selector %q: index out of range", s)
	}
	return index, nil
}

// Selector returns the menu selector for a subtitle track. The nil receiver
// encodes the disabled state.
func (t *SubtitleTrack) Selector() string {
	if t == nil {
		return SelectorNone
	}
	switch t.Kind {
	case SubtitleExternal:
		return externalSelectorPrefix + t.URI
	default:
		return fmt.Sprintf("%s%d", inbandSelectorPrefix, t.Index)
	}
}

// ParseSubtitleSelector decodes a subtitle menu selector. It returns nil for
// "none" and an error for anything that matches no scheme.
func ParseSubtitleSelector(s string) (*SubtitleTrack, error) {
	if s == SelectorNone {
		return nil, nil
	}
	if uri, ok := strings.CutPrefix(s, externalSelectorPrefix); ok {
		if uri == "" {
			return nil, fmt.Errorf("subtitle selector %q: empty uri", s)
		}
		return &SubtitleTrack{Kind: SubtitleExternal, URI: uri}, nil
	}
	if rest, ok := strings.CutPrefix(s, inbandSelectorPrefix); ok {
		index, err := strconv.Atoi(rest)
		if err != nil {
			return nil, fmt.Errorf("subtitle selector %q: %v", s, err)
		}
		if index < 0 {
			return nil, fmt.Errorf("subtitle selector %q: negative index", s)
		}
		return &SubtitleTrack{Kind: SubtitleInband, Index: index}, nil
	}
	return nil, fmt.Errorf("subtitle selector %q: unknown scheme", s)
}
