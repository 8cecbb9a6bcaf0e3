// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackSelectorRoundTrip(t *testing.T) {
	for index := 0; index < 4; index++ {
		audio := AudioSelector(index)
		got, err := ParseAudioSelector(audio)
		require.NoError(t, err, audio)
		assert.Equal(t, index, got)

		video := VideoSelector(index)
		got, err = ParseVideoSelector(video)
		require.NoError(t, err, video)
		assert.Equal(t, index, got)
	}
}

func TestTrackSelectorDisableSentinel(t *testing.T) {
	got, err := ParseAudioSelector("audio--1")
	require.NoError(t, err)
	assert.Equal(t, -1, got)

	got, err = ParseVideoSelector("video--1")
	require.NoError(t, err)
	assert.Equal(t, -1, got)
}

func TestTrackSelectorMalformed(t *testing.T) {
	for _, s := range []string{"audio-x", "audio-", "video-3", "", "audio--2", "3"} {
		_, err := ParseAudioSelector(s)
		assert.Error(t, err, "selector %q should not decode as audio", s)
	}
}

func TestSubtitleSelectorInband(t *testing.T) {
	track := &SubtitleTrack{Kind: SubtitleInband, Index: 3}
	assert.Equal(t, "sub-3", track.Selector())

	decoded, err := ParseSubtitleSelector("sub-3")
	require.NoError(t, err)
	require.NotNil(t, decoded)
	assert.Equal(t, SubtitleInband, decoded.Kind)
	assert.Equal(t, 3, decoded.Index)
}

func TestSubtitleSelectorExternal(t *testing.T) {
	uri := "file:///tmp/movie.srt"
	track := &SubtitleTrack{Kind: SubtitleExternal, URI: uri}
	assert.Equal(t, "ext-"+uri, track.Selector())

	decoded, err := ParseSubtitleSelector("ext-" + uri)
	require.NoError(t, err)
	require.NotNil(t, decoded)
	assert.Equal(t, SubtitleExternal, decoded.Kind)
	assert.Equal(t, uri, decoded.URI)
}

func TestSubtitleSelectorNone(t *testing.T) {
	var none *SubtitleTrack
	assert.Equal(t, "none", none.Selector())

	decoded, err := ParseSubtitleSelector("none")
	require.NoError(t, err)
	assert.Nil(t, decoded)
}

func TestSubtitleSelectorMalformed(t *testing.T) {
	for _, s := range []string{"sub-x", "sub--1", "ext-", "subtitle-2", ""} {
		_, err := ParseSubtitleSelector(s)
		assert.Error(t, err, "selector %q should not decode", s)
	}
}
