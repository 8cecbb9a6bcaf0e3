// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	onPlaying func()
	onPaused  func()
	onStopped func()
	onTitle   func(string)
}

func (f *fakeEngine) OnPlaying(cb func())           { f.onPlaying = cb }
func (f *fakeEngine) OnPaused(cb func())            { f.onPaused = cb }
func (f *fakeEngine) OnStopped(cb func())           { f.onStopped = cb }
func (f *fakeEngine) OnTitleChange(cb func(string)) { f.onTitle = cb }
func (f *fakeEngine) IsPaused() (bool, error)       { return false, nil }
func (f *fakeEngine) TogglePause(paused bool) error { return nil }
func (f *fakeEngine) Stop() error                   { return nil }
func (f *fakeEngine) LoadURI(uri string) error      { return nil }
func (f *fakeEngine) SetVolume(percent int64) error { return nil }
func (f *fakeEngine) Position() time.Duration       { return 0 }

type fakeProps struct {
	values map[string]interface{}
}

func (f *fakeProps) SetMust(iface, property string, v interface{}) {
	f.values[iface+"."+property] = v
}

func TestPlaybackStatusFollowsEngineState(t *testing.T) {
	engine := &fakeEngine{}
	props := &fakeProps{values: map[string]interface{}{}}
	mpp := &MprisPlayer{player: engine, props: props}

	mpp.watchPlaybackState()
	require.NotNil(t, engine.onPlaying)
	require.NotNil(t, engine.onPaused)
	require.NotNil(t, engine.onStopped)

	const key = "org.mpris.MediaPlayer2.Player.PlaybackStatus"

	engine.onPlaying()
	assert.Equal(t, "Playing", props.values[key])

	engine.onPaused()
	assert.Equal(t, "Paused", props.values[key])

	engine.onStopped()
	assert.Equal(t, "Stopped", props.values[key])
}
