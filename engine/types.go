// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package engine

import "time"

type EventType int

const (
	// media metadata (title, duration, streams) changed, data: nil
	EventMediaInfoUpdated EventType = iota
	// playback position advanced, data: nil (query Position())
	EventPositionUpdated
	// video size became known or changed, data: Dimensions
	EventVideoDimensionsChanged
	// playback state transition, data: PlaybackState
	EventStateChanged
	// volume changed, data: float64 (percent)
	EventVolumeChanged
	// unrecoverable engine error, data: string
	EventError
	// reached the end of the last playlist entry, data: nil
	EventEndOfPlaylist
	// engine is buffering, data: nil
	EventBuffering
)

// Event goes from the playback engine (this package) to a UI frontend.
type Event struct {
	Type EventType
	Data interface{}
}

type Dimensions struct {
	Width  int
	Height int
}

type PlaybackState int

const (
	StateStopped PlaybackState = iota
	StatePlaying
	StatePaused
)

func (s PlaybackState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

type SeekDirection int

const (
	SeekForward SeekDirection = iota
	SeekBackward
)

// MediaInfo is a wholesale snapshot of the loaded media's metadata. A new
// snapshot replaces the previous one entirely, streams are never patched in
// place. Streams are addressed by their position in the slice.
type MediaInfo struct {
	Title    string
	Duration time.Duration

	AudioStreams    []AudioStream
	VideoStreams    []VideoStream
	SubtitleStreams []SubtitleStream
}

type AudioStream struct {
	Channels int
	Language string
}

type VideoStream struct {
	Width  int
	Height int
}

type SubtitleStream struct {
	Title    string
	Language string
}

type SubtitleTrackKind int

const (
	// in-stream subtitle track, addressed by position index
	SubtitleInband SubtitleTrackKind = iota
	// subtitle file outside the media container, addressed by URI
	SubtitleExternal
)

// SubtitleTrack selects a subtitle source. A nil *SubtitleTrack disables
// subtitles.
type SubtitleTrack struct {
	Kind  SubtitleTrackKind
	Index int
	URI   string
}

// Visualization is an audio-only rendering effect offered by the engine.
type Visualization struct {
	Name        string
	Description string
}
