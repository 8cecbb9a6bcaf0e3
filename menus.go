// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/hwills/lumiere/engine"
)

// MenuEntry is one selectable menu row. Selector is the opaque identifier
// proposed to the action store when the entry is picked.
type MenuEntry struct {
	Label    string
	Selector string
}

type MenuSection []MenuEntry

var disableEntry = MenuEntry{Label: "Disable", Selector: engine.SelectorNone}

// mediaInfoUpdated rebuilds every track menu from a fresh metadata snapshot.
// Menus are replaced wholesale, never patched, so stale entries cannot
// survive a media change.
func (ui *Ui) mediaInfoUpdated() {
	info := ui.player.MediaInfo()
	if info == nil {
		return
	}

	if uri := ui.player.CurrentURI(); uri != "" {
		ui.shell.SetWindowTitle(titleForMedia(info.Title, uri))
		ui.shell.SetPositionRangeEnd(info.Duration.Seconds())

		// look for a matching subtitle file in the same directory, but only
		// while no subtitle is selected: metadata refreshes arrive repeatedly
		// and must not override a choice or re-add the same file
		if subURI := siblingSubtitleURI(uri); subURI != "" && subURI != ui.player.SubtitleURI() {
			if a := ui.actions.get(ActionSubtitle); a != nil && a.ChoiceState == engine.SelectorNone {
				track := &engine.SubtitleTrack{Kind: engine.SubtitleExternal, URI: subURI}
				if err := ui.player.ConfigureSubtitleTrack(track); err != nil {
					ui.logger.PrintError("mediaInfoUpdated: sibling subtitle", err)
				}
			}
		}
	}

	ui.refreshSubtitleTrackMenu()
	ui.fillAudioTrackMenu(info)
	ui.fillVideoTrackMenu(info)

	if len(info.VideoStreams) == 0 {
		ui.fillAudioVisualizationMenu()
		if a := ui.actions.get(ActionVisualization); a != nil {
			a.Enabled = true
		}
	} else {
		// a player rendering video does not offer audio-only visualizations
		ui.player.RefreshVideoRenderer()
		ui.shell.ClearAudioVisualizationMenu()
		if a := ui.actions.get(ActionVisualization); a != nil {
			a.Enabled = false
		}
	}
}

func (ui *Ui) fillAudioTrackMenu(info *engine.MediaInfo) {
	section := MenuSection{{Label: "Disable", Selector: engine.AudioSelector(-1)}}
	section = append(section, lo.Map(info.AudioStreams, func(stream engine.AudioStream, i int) MenuEntry {
		label := fmt.Sprintf("%d channels", stream.Channels)
		if stream.Language != "" {
			label = fmt.Sprintf("%s - [%s]", label, stream.Language)
		}
		return MenuEntry{Label: label, Selector: engine.AudioSelector(i)}
	})...)
	ui.shell.UpdateAudioTrackMenu(section)
}

func (ui *Ui) fillVideoTrackMenu(info *engine.MediaInfo) {
	section := MenuSection{{Label: "Disable", Selector: engine.VideoSelector(-1)}}
	section = append(section, lo.Map(info.VideoStreams, func(stream engine.VideoStream, i int) MenuEntry {
		return MenuEntry{
			Label:    fmt.Sprintf("%dx%d", stream.Width, stream.Height),
			Selector: engine.VideoSelector(i),
		}
	})...)
	ui.shell.UpdateVideoTrackMenu(section)
}

// refreshSubtitleTrackMenu rebuilds the subtitle menu and re-synchronizes the
// subtitle action with whichever entry matches the currently configured
// track, defaulting to none.
func (ui *Ui) refreshSubtitleTrackMenu() {
	section := MenuSection{disableEntry}

	if info := ui.player.MediaInfo(); info != nil {
		section = append(section, lo.Map(info.SubtitleStreams, func(stream engine.SubtitleStream, i int) MenuEntry {
			track := engine.SubtitleTrack{Kind: engine.SubtitleInband, Index: i}
			label := stream.Title
			if label == "" {
				label = fmt.Sprintf("Track %d", i+1)
			}
			if stream.Language != "" && stream.Language != label {
				label = fmt.Sprintf("%s - [%s]", label, stream.Language)
			}
			return MenuEntry{Label: label, Selector: track.Selector()}
		})...)
	}

	var selected string
	if subURI := ui.player.SubtitleURI(); subURI != "" {
		track := engine.SubtitleTrack{Kind: engine.SubtitleExternal, URI: subURI}
		section = append(section, MenuEntry{
			Label:    filenameFromURI(subURI),
			Selector: track.Selector(),
		})
		selected = track.Selector()
	}

	ui.shell.UpdateSubtitleTrackMenu(section)
	ui.syncSubtitleChoice(selected)
}

// syncSubtitleChoice reconciles the committed subtitle choice with the
// engine's configured external track. It never issues an engine command: the
// configuration is already applied, re-running sub-add would duplicate the
// track and trigger another media info update.
func (ui *Ui) syncSubtitleChoice(externalSelector string) {
	action := ui.actions.get(ActionSubtitle)
	if action == nil {
		return
	}
	if externalSelector != "" {
		action.ChoiceState = externalSelector
		return
	}
	// an external choice with no configured file left is stale; inband
	// choices are owned by the action handler, keep them
	if track, err := engine.ParseSubtitleSelector(action.ChoiceState); err == nil && track != nil && track.Kind == engine.SubtitleExternal {
		action.ChoiceState = engine.SelectorNone
	}
}

// fillAudioVisualizationMenu lists the engine's static effects. Entries are
// independent of the loaded media.
func (ui *Ui) fillAudioVisualizationMenu() {
	section := MenuSection{disableEntry}
	section = append(section, lo.Map(ui.player.Visualizations(), func(vis engine.Visualization, _ int) MenuEntry {
		return MenuEntry{Label: vis.Description, Selector: vis.Name}
	})...)
	ui.shell.UpdateAudioVisualizationMenu(section)
}
