// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import "time"

const bridgeJoinTimeout = 500 * time.Millisecond

// PostInit runs the host's post-construction hook. Callable only once; later
// calls are logged and ignored.
func (ui *Ui) PostInit() {
	if ui.postInitDone {
		ui.logger.Print("PostInit: already ran")
		return
	}
	ui.postInitDone = true
	ui.shell.PostInit(ui.player)
}

// Quit runs the shutdown sequence exactly once, whether triggered by the
// user, a fatal engine error or the host. It must be safe even when parts of
// the player are not initialized yet.
func (ui *Ui) Quit() {
	if ui.quitting {
		return
	}
	ui.quitting = true

	if ui.player != nil {
		ui.player.WriteLastKnownMediaPosition()
	}
	ui.leaveFullscreen()
	if ui.bridge != nil {
		ui.bridge.Stop(bridgeJoinTimeout)
	}
	ui.shell.Stop()
}

// leaveFullscreen restores the windowed state. It is a no-op when not
// fullscreen: no state change, no host call.
func (ui *Ui) leaveFullscreen() {
	action := ui.actions.get(ActionFullscreen)
	if action == nil || !action.BoolState {
		return
	}
	ui.shell.LeaveFullscreen()
	action.BoolState = false
}
