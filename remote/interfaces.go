// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import "time"

// ControlledPlayer is the engine surface a remote-control integration needs.
// Callbacks fire on the engine's event goroutine; command methods are safe to
// call from the dbus goroutine because libmpv serializes them internally.
type ControlledPlayer interface {
	// Registers a callback which is invoked when the player transitions to the Paused state.
	OnPaused(cb func())

	// Registers a callback which is invoked when the player transitions to the Stopped state.
	OnStopped(cb func())

	// Registers a callback which is invoked when the player transitions to the Playing state.
	OnPlaying(cb func())

	// Registers a callback which is invoked when the media title changes.
	OnTitleChange(cb func(title string))

	IsPaused() (bool, error)
	TogglePause(paused bool) error
	Stop() error
	LoadURI(uri string) error
	SetVolume(percent int64) error
	Position() time.Duration
}
