// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"time"

	"github.com/hwills/lumiere/engine"
	"github.com/hwills/lumiere/logger"
)

type call struct {
	name string
	args []interface{}
}

// fakeController records every engine command so tests can assert ordering
// and arguments.
type fakeController struct {
	calls []call

	mediaInfo   *engine.MediaInfo
	currentURI  string
	subtitleURI string
	position    time.Duration

	failTogglePause bool
}

func (c *fakeController) record(name string, args ...interface{}) {
	c.calls = append(c.calls, call{name: name, args: args})
}

func (c *fakeController) callsNamed(name string) []call {
	var out []call
	for _, cl := range c.calls {
		if cl.name == name {
			out = append(out, cl)
		}
	}
	return out
}

func (c *fakeController) Name() string { return "fake" }

func (c *fakeController) LoadURI(uri string) error {
	c.record("LoadURI", uri)
	c.currentURI = uri
	return nil
}

func (c *fakeController) LoadPlaylist(uris []string) error {
	c.record("LoadPlaylist", uris)
	return nil
}

func (c *fakeController) Stop() error {
	c.record("Stop")
	return nil
}

func (c *fakeController) Seek(direction engine.SeekDirection, offset time.Duration) error {
	c.record("Seek", direction, offset)
	return nil
}

func (c *fakeController) TogglePause(paused bool) error {
	if c.failTogglePause {
		return errAlwaysFails
	}
	c.record("TogglePause", paused)
	return nil
}

func (c *fakeController) ToggleMute(muted bool) error {
	c.record("ToggleMute", muted)
	return nil
}

func (c *fakeController) IncreaseVolume() error {
	c.record("IncreaseVolume")
	return nil
}

func (c *fakeController) DecreaseVolume() error {
	c.record("DecreaseVolume")
	return nil
}

func (c *fakeController) SetAudioTrackIndex(index int) error {
	c.record("SetAudioTrackIndex", index)
	return nil
}

func (c *fakeController) SetVideoTrackIndex(index int) error {
	c.record("SetVideoTrackIndex", index)
	return nil
}

func (c *fakeController) ConfigureSubtitleTrack(track *engine.SubtitleTrack) error {
	c.record("ConfigureSubtitleTrack", track)
	if track != nil && track.Kind == engine.SubtitleExternal {
		c.subtitleURI = track.URI
	} else if track == nil {
		c.subtitleURI = ""
	}
	return nil
}

func (c *fakeController) SetVisualization(name string) error {
	c.record("SetVisualization", name)
	return nil
}

func (c *fakeController) Visualizations() []engine.Visualization {
	return []engine.Visualization{
		{Name: "showwaves", Description: "Waveform"},
		{Name: "showspectrum", Description: "Spectrum"},
	}
}

func (c *fakeController) MediaInfo() *engine.MediaInfo { return c.mediaInfo }

func (c *fakeController) Position() time.Duration {
	c.record("Position")
	return c.position
}

func (c *fakeController) CurrentURI() string  { return c.currentURI }
func (c *fakeController) SubtitleURI() string { return c.subtitleURI }

func (c *fakeController) DumpPipeline(tag string) {
	c.record("DumpPipeline", tag)
}

func (c *fakeController) WriteLastKnownMediaPosition() {
	c.record("WriteLastKnownMediaPosition")
}

func (c *fakeController) RefreshVideoRenderer() {
	c.record("RefreshVideoRenderer")
}

// fakeShell records host calls and feeds canned dialog answers.
type fakeShell struct {
	wakes int

	fullscreenEnters int
	fullscreenLeaves int
	resizedTo        []int
	title            string
	positionEnd      float64
	positionValue    float64
	playbackStatus   engine.PlaybackState
	volumeDisplay    int

	audioMenu            MenuSection
	videoMenu            MenuSection
	subtitleMenu         MenuSection
	visualizationMenu    MenuSection
	visualizationCleared int

	dialogURI string
	dialogOK  bool

	aboutShown int
	started    bool
	stopCount  int
	postInits  int
}

func (s *fakeShell) AddAction(*Action) {}

func (s *fakeShell) Wake() { s.wakes++ }

func (s *fakeShell) EnterFullscreen() { s.fullscreenEnters++ }
func (s *fakeShell) LeaveFullscreen() { s.fullscreenLeaves++ }

func (s *fakeShell) ResizeWindow(width, height int) {
	s.resizedTo = []int{width, height}
}

func (s *fakeShell) SetWindowTitle(title string) { s.title = title }

func (s *fakeShell) SetPositionRangeEnd(seconds float64)   { s.positionEnd = seconds }
func (s *fakeShell) SetPositionRangeValue(seconds float64) { s.positionValue = seconds }

func (s *fakeShell) SetPlaybackStatus(state engine.PlaybackState) { s.playbackStatus = state }
func (s *fakeShell) SetVolumeDisplay(percent int)                 { s.volumeDisplay = percent }

func (s *fakeShell) UpdateSubtitleTrackMenu(section MenuSection) { s.subtitleMenu = section }
func (s *fakeShell) UpdateAudioTrackMenu(section MenuSection)    { s.audioMenu = section }
func (s *fakeShell) UpdateVideoTrackMenu(section MenuSection)    { s.videoMenu = section }

func (s *fakeShell) UpdateAudioVisualizationMenu(section MenuSection) {
	s.visualizationMenu = section
}

func (s *fakeShell) ClearAudioVisualizationMenu() {
	s.visualizationMenu = nil
	s.visualizationCleared++
}

func (s *fakeShell) DialogResult(currentURI string, done func(uri string, ok bool)) {
	done(s.dialogURI, s.dialogOK)
}

func (s *fakeShell) DisplayAboutDialog() { s.aboutShown++ }

func (s *fakeShell) Start() error { s.started = true; return nil }
func (s *fakeShell) Stop()        { s.stopCount++ }

func (s *fakeShell) PostInit(Controller) { s.postInits++ }

var errAlwaysFails = &testError{"injected failure"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }

// newTestUi wires a Ui with recording fakes. The logger is drained in the
// background so handlers never block on the log channel.
func newTestUi() (*Ui, *fakeController, *fakeShell) {
	lg := logger.Init()
	go func() {
		for range lg.Prints {
		}
	}()

	ctrl := &fakeController{}
	shell := &fakeShell{}
	ui := &Ui{
		player:  ctrl,
		shell:   shell,
		logger:  lg,
		actions: newActionStore(),
		pending: &dispatchQueue{},

		seekForwardOffset:  5 * time.Second,
		seekBackwardOffset: 2 * time.Second,
	}
	ui.registerActions()
	return ui, ctrl, shell
}
