// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"github.com/hwills/lumiere/engine"
)

// Action names, also used as config and help keys.
const (
	ActionPause          = "pause"
	ActionFullscreen     = "fullscreen"
	ActionRestore        = "restore"
	ActionSeekForward    = "seek-forward"
	ActionSeekBackward   = "seek-backward"
	ActionAudioMute      = "audio-mute"
	ActionVolumeIncrease = "audio-volume-increase"
	ActionVolumeDecrease = "audio-volume-decrease"
	ActionAudioTrack     = "audio-track"
	ActionVideoTrack     = "video-track"
	ActionSubtitle       = "subtitle"
	ActionVisualization  = "audio-visualization"
	ActionDumpPipeline   = "dump-pipeline"
	ActionOpenMedia      = "open-media"
	ActionOpenSubtitle   = "open-subtitle-file"
	ActionAbout          = "about"
	ActionQuitName       = "quit"
)

type ActionKind int

const (
	// stateless, fire-and-forget
	ActionStateless ActionKind = iota
	// boolean toggle
	ActionBoolean
	// choice between opaque selector strings
	ActionChoice
)

// Action is a named, user-toggleable control. Its committed state must match
// the engine's real configuration: transition handlers apply the side effect
// first and commit only when it succeeded (no optimistic commit). Owned by
// the UI goroutine, never touched concurrently.
type Action struct {
	Name        string
	Kind        ActionKind
	Enabled     bool
	BoolState   bool
	ChoiceState string

	// change runs the commit-after-effect transition for stateful actions
	change func(a *Action, proposed string)
	// activate fires stateless actions
	activate func()
}

type actionStore struct {
	actions map[string]*Action
	order   []string
}

func newActionStore() *actionStore {
	return &actionStore{actions: make(map[string]*Action)}
}

func (s *actionStore) add(a *Action) {
	s.actions[a.Name] = a
	s.order = append(s.order, a.Name)
}

func (s *actionStore) get(name string) *Action {
	return s.actions[name]
}

// Propose requests a state change for a named action. For boolean actions the
// value is ignored and the state flips; for choice actions it is a selector
// string decoded per the action's scheme. Malformed proposals are logged and
// dropped, the prior committed state stays.
func (ui *Ui) Propose(name, value string) {
	action := ui.actions.get(name)
	if action == nil {
		ui.logger.Printf("Propose: unknown action %q", name)
		return
	}
	if !action.Enabled {
		ui.logger.Printf("Propose: action %q is disabled", name)
		return
	}
	if action.change == nil {
		ui.logger.Printf("Propose: action %q is stateless", name)
		return
	}
	action.change(action, value)
}

// Activate fires a stateless action.
func (ui *Ui) Activate(name string) {
	action := ui.actions.get(name)
	if action == nil {
		ui.logger.Printf("Activate: unknown action %q", name)
		return
	}
	if action.activate == nil {
		ui.logger.Printf("Activate: action %q is stateful", name)
		return
	}
	action.activate()
}

func (ui *Ui) registerActions() {
	register := func(a *Action) {
		ui.actions.add(a)
		ui.shell.AddAction(a)
	}

	register(&Action{
		Name:    ActionPause,
		Kind:    ActionBoolean,
		Enabled: true,
		change: func(a *Action, _ string) {
			paused := a.BoolState
			if err := ui.player.TogglePause(paused); err != nil {
				ui.logger.PrintError("pause", err)
				return
			}
			a.BoolState = !paused
		},
	})

	register(&Action{
		Name:    ActionAudioMute,
		Kind:    ActionBoolean,
		Enabled: true,
		change: func(a *Action, _ string) {
			muted := a.BoolState
			if err := ui.player.ToggleMute(muted); err != nil {
				ui.logger.PrintError("audio-mute", err)
				return
			}
			a.BoolState = !muted
		},
	})

	register(&Action{
		Name:    ActionFullscreen,
		Kind:    ActionBoolean,
		Enabled: true,
		change: func(a *Action, _ string) {
			if !a.BoolState {
				ui.shell.EnterFullscreen()
			} else {
				ui.shell.LeaveFullscreen()
			}
			a.BoolState = !a.BoolState
		},
	})

	register(&Action{
		Name:        ActionAudioTrack,
		Kind:        ActionChoice,
		Enabled:     true,
		ChoiceState: engine.AudioSelector(0),
		change: func(a *Action, proposed string) {
			index, err := engine.ParseAudioSelector(proposed)
			if err != nil {
				ui.logger.PrintError("audio-track", err)
				return
			}
			if err := ui.player.SetAudioTrackIndex(index); err != nil {
				ui.logger.PrintError("audio-track", err)
				return
			}
			a.ChoiceState = proposed
		},
	})

	register(&Action{
		Name:        ActionVideoTrack,
		Kind:        ActionChoice,
		Enabled:     true,
		ChoiceState: engine.VideoSelector(0),
		change: func(a *Action, proposed string) {
			index, err := engine.ParseVideoSelector(proposed)
			if err != nil {
				ui.logger.PrintError("video-track", err)
				return
			}
			if err := ui.player.SetVideoTrackIndex(index); err != nil {
				ui.logger.PrintError("video-track", err)
				return
			}
			a.ChoiceState = proposed
		},
	})

	register(&Action{
		Name:        ActionSubtitle,
		Kind:        ActionChoice,
		Enabled:     true,
		ChoiceState: engine.SelectorNone,
		change: func(a *Action, proposed string) {
			track, err := engine.ParseSubtitleSelector(proposed)
			if err != nil {
				ui.logger.PrintError("subtitle", err)
				return
			}
			if err := ui.player.ConfigureSubtitleTrack(track); err != nil {
				ui.logger.PrintError("subtitle", err)
				return
			}
			a.ChoiceState = proposed
		},
	})

	register(&Action{
		Name:        ActionVisualization,
		Kind:        ActionChoice,
		ChoiceState: engine.SelectorNone,
		// enabled once audio-only media is loaded
		Enabled: false,
		change: func(a *Action, proposed string) {
			name := proposed
			if name == engine.SelectorNone {
				name = ""
			}
			if err := ui.player.SetVisualization(name); err != nil {
				ui.logger.PrintError("audio-visualization", err)
				return
			}
			a.ChoiceState = proposed
		},
	})

	register(&Action{
		Name:    ActionRestore,
		Kind:    ActionStateless,
		Enabled: true,
		activate: func() {
			ui.leaveFullscreen()
		},
	})

	register(&Action{
		Name:    ActionSeekForward,
		Kind:    ActionStateless,
		Enabled: true,
		activate: func() {
			if err := ui.player.Seek(engine.SeekForward, ui.seekForwardOffset); err != nil {
				ui.logger.PrintError("seek-forward", err)
			}
		},
	})

	register(&Action{
		Name:    ActionSeekBackward,
		Kind:    ActionStateless,
		Enabled: true,
		activate: func() {
			if err := ui.player.Seek(engine.SeekBackward, ui.seekBackwardOffset); err != nil {
				ui.logger.PrintError("seek-backward", err)
			}
		},
	})

	register(&Action{
		Name:    ActionVolumeIncrease,
		Kind:    ActionStateless,
		Enabled: true,
		activate: func() {
			if err := ui.player.IncreaseVolume(); err != nil {
				ui.logger.PrintError("audio-volume-increase", err)
			}
		},
	})

	register(&Action{
		Name:    ActionVolumeDecrease,
		Kind:    ActionStateless,
		Enabled: true,
		activate: func() {
			if err := ui.player.DecreaseVolume(); err != nil {
				ui.logger.PrintError("audio-volume-decrease", err)
			}
		},
	})

	register(&Action{
		Name:    ActionDumpPipeline,
		Kind:    ActionStateless,
		Enabled: true,
		activate: func() {
			ui.player.DumpPipeline("lumiere")
		},
	})

	register(&Action{
		Name:    ActionOpenMedia,
		Kind:    ActionStateless,
		Enabled: true,
		activate: func() {
			ui.shell.DialogResult(ui.player.CurrentURI(), func(uri string, ok bool) {
				if !ok {
					return
				}
				ui.logger.Printf("loading %s", uri)
				if err := ui.player.Stop(); err != nil {
					ui.logger.PrintError("open-media: stop", err)
				}
				if err := ui.player.LoadURI(uri); err != nil {
					ui.logger.PrintError("open-media: load", err)
				}
			})
		},
	})

	register(&Action{
		Name:    ActionOpenSubtitle,
		Kind:    ActionStateless,
		Enabled: true,
		activate: func() {
			ui.shell.DialogResult(ui.player.CurrentURI(), func(uri string, ok bool) {
				if ok {
					track := &engine.SubtitleTrack{Kind: engine.SubtitleExternal, URI: uri}
					if err := ui.player.ConfigureSubtitleTrack(track); err != nil {
						ui.logger.PrintError("open-subtitle-file", err)
					}
				}
				ui.refreshSubtitleTrackMenu()
			})
		},
	})

	register(&Action{
		Name:    ActionAbout,
		Kind:    ActionStateless,
		Enabled: true,
		activate: func() {
			ui.shell.DisplayAboutDialog()
		},
	})

	register(&Action{
		Name:    ActionQuitName,
		Kind:    ActionStateless,
		Enabled: true,
		activate: func() {
			ui.Quit()
		},
	})
}
