// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"time"

	"github.com/hwills/lumiere/engine"
)

// Controller is the engine surface the UI drives. engine.Player implements
// it; tests substitute a recording fake.
type Controller interface {
	Name() string

	LoadURI(uri string) error
	LoadPlaylist(uris []string) error
	Stop() error
	Seek(direction engine.SeekDirection, offset time.Duration) error
	TogglePause(paused bool) error
	ToggleMute(muted bool) error
	IncreaseVolume() error
	DecreaseVolume() error
	SetAudioTrackIndex(index int) error
	SetVideoTrackIndex(index int) error
	ConfigureSubtitleTrack(track *engine.SubtitleTrack) error
	SetVisualization(name string) error

	Visualizations() []engine.Visualization
	MediaInfo() *engine.MediaInfo
	Position() time.Duration
	CurrentURI() string
	SubtitleURI() string

	DumpPipeline(tag string)
	WriteLastKnownMediaPosition()
	RefreshVideoRenderer()
}

// Shell is the host surface for everything visual. The tview implementation
// lives in gui.go; tests substitute a recording fake. All methods are called
// from the UI goroutine only.
type Shell interface {
	AddAction(action *Action)

	// Wake schedules one dispatch turn on the UI goroutine. It must be safe
	// to call from any goroutine and must never block the caller.
	Wake()

	EnterFullscreen()
	LeaveFullscreen()
	ResizeWindow(width, height int)
	SetWindowTitle(title string)
	SetPositionRangeEnd(seconds float64)
	SetPositionRangeValue(seconds float64)
	SetPlaybackStatus(state engine.PlaybackState)
	SetVolumeDisplay(percent int)

	UpdateSubtitleTrackMenu(section MenuSection)
	UpdateAudioTrackMenu(section MenuSection)
	UpdateVideoTrackMenu(section MenuSection)
	UpdateAudioVisualizationMenu(section MenuSection)
	ClearAudioVisualizationMenu()

	// DialogResult prompts for a URI, prefilled with currentURI, and calls
	// done on the UI goroutine once the user confirms or cancels.
	DialogResult(currentURI string, done func(uri string, ok bool))
	DisplayAboutDialog()

	Start() error
	Stop()
	PostInit(player Controller)
}
